package app

import "errors"

var (
	// ErrNoInput は解析対象が指定されなかった場合のエラー
	ErrNoInput = errors.New("解析対象のBMSファイルまたはディレクトリを指定してください")

	// ErrNoBmsFiles は指定先にBMSファイルが見つからなかった場合のエラー
	ErrNoBmsFiles = errors.New("BMSファイルが見つかりませんでした")

	// ErrReadFile はファイルの読み込みに失敗した場合のエラー
	ErrReadFile = errors.New("ファイルの読み込みに失敗しました")

	// ErrParseHeader はヘッダの解析に失敗した場合のエラー
	ErrParseHeader = errors.New("ヘッダの解析に失敗しました")

	// ErrSaveFile はファイルの保存に失敗した場合のエラー
	ErrSaveFile = errors.New("ファイルの保存に失敗しました")
)
