package bms

import (
	"path/filepath"
	"strings"
)

// 参照ファイルの探索に使う拡張子の優先順。BMS では #WAVxx に .wav と
// 書かれていても実体は .ogg ということが多く、プレイヤー側は候補を
// 順に試すのが慣習です。
var (
	audioExts = []string{".wav", ".ogg", ".mp3", ".flac"}
	imageExts = []string{".bmp", ".png", ".jpg", ".gif", ".mpg", ".avi"}
)

// AudioCandidates は音声ファイルの探索候補を優先順で返します。
// 実際の存在確認は呼び出し側が行い、最初に見つかった候補を採用します。
func AudioCandidates(name string) []string {
	return pathCandidates(name, audioExts)
}

// ImageCandidates は画像・動画ファイルの探索候補を優先順で返します。
func ImageCandidates(name string) []string {
	return pathCandidates(name, imageExts)
}

// pathCandidates は拡張子を差し替えた候補列を作ります。
// 元の名前に拡張子があればそれを先頭候補とし、続けて優先順の拡張子で
// 差し替えた名前を並べます。拡張子のない名前は優先順そのままです。
func pathCandidates(name string, exts []string) []string {
	if name == "" {
		return nil
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	candidates := make([]string, 0, len(exts)+1)
	if ext != "" {
		candidates = append(candidates, name)
	}
	for _, e := range exts {
		if strings.EqualFold(e, ext) {
			continue
		}
		candidates = append(candidates, base+e)
	}
	return candidates
}
