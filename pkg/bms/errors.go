package bms

import "errors"

var (
	// ErrEncodingUndetectable は入力の文字コードを判別できなかった場合のエラー。
	// ヘッダ解析で唯一の致命的エラーで、これ以外の問題はすべて Diagnostic として
	// 収集され、解析は継続します。
	ErrEncodingUndetectable = errors.New("文字コードを判別できませんでした")
)
