package app

import (
	"github.com/tidwall/sjson"

	"github.com/shiroemons/go-bms/pkg/bms"
)

// renderJSON はJSON形式のレポートを生成します。
// 索引テーブルはキーが疎なので、sjsonの動的パスで1件ずつ組み立てます。
func (a *App) renderJSON(reports []fileReport) string {
	out := []byte(`[]`)
	for _, r := range reports {
		out, _ = sjson.SetRawBytes(out, "-1", renderFileJSON(r))
	}
	return string(out) + "\n"
}

// renderFileJSON は1ファイル分のJSONドキュメントを組み立てます
func renderFileJSON(r fileReport) []byte {
	doc := []byte(`{}`)
	doc, _ = sjson.SetBytes(doc, "path", r.path)
	if r.err != nil {
		doc, _ = sjson.SetBytes(doc, "error", r.err.Error())
		return doc
	}

	h := r.header
	doc, _ = sjson.SetBytes(doc, "encoding", r.encoding.String())
	doc, _ = sjson.SetBytes(doc, "title", h.Title())
	doc, _ = sjson.SetBytes(doc, "subtitle", h.Subtitle())
	doc, _ = sjson.SetBytes(doc, "artist", h.Artist())
	doc, _ = sjson.SetBytes(doc, "subartist", h.Subartist())
	doc, _ = sjson.SetBytes(doc, "maker", h.Maker())
	doc, _ = sjson.SetBytes(doc, "genre", h.Genre())
	doc, _ = sjson.SetBytes(doc, "player", int(h.Player()))
	doc, _ = sjson.SetBytes(doc, "bpm", h.BPM())
	doc, _ = sjson.SetBytes(doc, "playlevel", h.PlayLevel())
	doc, _ = sjson.SetBytes(doc, "difficulty", int(h.Difficulty()))
	doc, _ = sjson.SetBytes(doc, "rank", int(h.Rank()))
	doc, _ = sjson.SetBytes(doc, "judgeWindowMs", h.NewJudgeResolver(nil).BaseWindow())
	doc, _ = sjson.SetBytes(doc, "total", h.Total())
	doc, _ = sjson.SetBytes(doc, "volwav", h.Volwav())
	doc, _ = sjson.SetBytes(doc, "lntype", h.LNType())
	if id, ok := h.LNObj(); ok {
		doc, _ = sjson.SetBytes(doc, "lnobj", id.String())
	}
	if pct, ok := h.DefExRank(); ok {
		doc, _ = sjson.SetBytes(doc, "defexrank", pct)
	}
	if h.Stagefile() != "" {
		doc, _ = sjson.SetBytes(doc, "stagefile", h.Stagefile())
	}
	if h.Banner() != "" {
		doc, _ = sjson.SetBytes(doc, "banner", h.Banner())
	}
	if h.BackBmp() != "" {
		doc, _ = sjson.SetBytes(doc, "backbmp", h.BackBmp())
	}

	doc = setTableJSON(doc, "wav", h.Wav())
	doc = setTableJSON(doc, "bmp", h.Bmp())
	doc = setTableJSON(doc, "exbpm", h.ExtendedBPM())
	doc = setTableJSON(doc, "stop", h.Stop())
	doc = setTableJSON(doc, "exrank", h.ExRank())

	for _, m := range r.missing {
		doc, _ = sjson.SetBytes(doc, "missing.-1", string(m.family)+m.id.String()+" "+m.name)
	}
	for _, d := range r.diags {
		doc, _ = sjson.SetBytes(doc, "diagnostics.-1", d.String())
	}

	return doc
}

// setTableJSON は索引テーブルを { "0A": 値, ... } の形で書き込みます
func setTableJSON[V any](doc []byte, key string, table bms.Table[V]) []byte {
	for _, id := range table.IDs() {
		v, _ := table.Lookup(id)
		doc, _ = sjson.SetBytes(doc, key+"."+id.String(), v)
	}
	return doc
}
