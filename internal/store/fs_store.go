package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FSStore はローカルファイルシステムへ成果物を書き込みます。
// 通常の書き込みは create-or-truncate で、上書きガード付きの書き込みは
// O_EXCL による排他作成で実現します。
type FSStore struct {
	baseDir string
}

// NewFSStore は baseDir 配下に書き込む FSStore を生成します。
func NewFSStore(baseDir string) *FSStore {
	return &FSStore{baseDir: baseDir}
}

// Write は baseDir/name にバイト列を書き込みます。
// 親ディレクトリが無ければ作成します。
func (s *FSStore) Write(_ context.Context, name string, data []byte, opts WriteOptions) error {
	target := filepath.Join(s.baseDir, name)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if !opts.DisallowOverwrite {
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
		return nil
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%s: %w", target, ErrObjectExists)
		}
		return fmt.Errorf("failed to create %s: %w", target, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return f.Close()
}
