// Package mocks はテスト用のモック実装を提供します
package mocks

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shiroemons/go-bms/internal/bmsinfo/interfaces"
)

// MockFileSystem はテスト用のインメモリFileSystem実装
type MockFileSystem struct {
	Files map[string][]byte // パス → 内容
	Dirs  map[string]bool   // ディレクトリとして扱うパス
}

// NewMockFileSystem は新しいMockFileSystemを作成します
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files: make(map[string][]byte),
		Dirs:  make(map[string]bool),
	}
}

// FileExists はファイルが存在するか確認します
func (fs *MockFileSystem) FileExists(filename string) bool {
	_, ok := fs.Files[filename]
	return ok
}

// ReadFile はファイルを読み込みます
func (fs *MockFileSystem) ReadFile(filename string) ([]byte, error) {
	data, ok := fs.Files[filename]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", filename)
	}
	return data, nil
}

// Stat はファイル情報を取得します
func (fs *MockFileSystem) Stat(name string) (interfaces.FileInfo, error) {
	if fs.Dirs[name] {
		return &mockFileInfo{name: filepath.Base(name), isDir: true}, nil
	}
	if _, ok := fs.Files[name]; ok {
		return &mockFileInfo{name: filepath.Base(name)}, nil
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// ReadDir はディレクトリを読み込みます
func (fs *MockFileSystem) ReadDir(dirname string) ([]interfaces.DirEntry, error) {
	if !fs.Dirs[dirname] {
		return nil, fmt.Errorf("directory not found: %s", dirname)
	}

	var names []string
	prefix := dirname + string(filepath.Separator)
	for path := range fs.Files {
		if strings.HasPrefix(path, prefix) && !strings.Contains(path[len(prefix):], string(filepath.Separator)) {
			names = append(names, path[len(prefix):])
		}
	}
	sort.Strings(names)

	entries := make([]interfaces.DirEntry, len(names))
	for i, name := range names {
		entries[i] = &mockDirEntry{name: name}
	}
	return entries, nil
}

// mockFileInfo はテスト用のFileInfo実装
type mockFileInfo struct {
	name  string
	isDir bool
}

// Name はファイル名を返します
func (fi *mockFileInfo) Name() string { return fi.name }

// IsDir はディレクトリかどうかを返します
func (fi *mockFileInfo) IsDir() bool { return fi.isDir }

// mockDirEntry はテスト用のDirEntry実装
type mockDirEntry struct {
	name  string
	isDir bool
}

// Name はエントリ名を返します
func (de *mockDirEntry) Name() string { return de.name }

// IsDir はディレクトリかどうかを返します
func (de *mockDirEntry) IsDir() bool { return de.isDir }
