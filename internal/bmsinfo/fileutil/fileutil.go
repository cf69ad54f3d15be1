// Package fileutil はファイル操作のユーティリティ関数を提供します
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shiroemons/go-bms/internal/bmsinfo/interfaces"
)

// bmsExtensions はBMS系フォーマットの拡張子です
var bmsExtensions = []string{".bms", ".bme", ".bml", ".pms"}

// IsBmsPath はBMS系フォーマットのファイルパスか判定します
func IsBmsPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range bmsExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FindBmsFiles はディレクトリ直下のBMSファイルをファイル名順で返します
func FindBmsFiles(fs interfaces.FileSystem, dir string) ([]string, error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadDirectory, dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsBmsPath(entry.Name()) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// FindResource は候補ファイル名を順に調べて最初に存在するパスを返します。
// 候補の順序はpkg/bmsのAlternate-Path候補（AudioCandidates/ImageCandidates）を
// そのまま使う想定です。
func FindResource(fs interfaces.FileSystem, dir string, candidates []string) (string, bool) {
	for _, name := range candidates {
		p := filepath.Join(dir, name)
		if fs.FileExists(p) {
			return p, true
		}
	}
	return "", false
}

// SaveToFile は内容をファイルに保存します
func SaveToFile(outputPath string, content string) error {
	// 出力先ディレクトリを作成（存在しない場合）
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateDirectory, err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCreateFile, err)
	}
	defer file.Close()

	if _, err := file.WriteString(content); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteContent, err)
	}

	return nil
}
