package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Darius-Gillingham/Img-s3/internal/domain"
)

// FileSource はローカルディレクトリ直下の *.json ドキュメントからワードセットを読み込みます。
type FileSource struct {
	dir string
}

// NewFileSource は dir 直下を読む FileSource を生成します。
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Load はディレクトリ内のJSONドキュメントを走査して全ワードセットを集めます。
// ディレクトリ自体が読めない場合のみエラーです。
func (s *FileSource) Load(ctx context.Context) (domain.WordsetCollection, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read wordset directory %s: %w", s.dir, err)
	}

	var collection domain.WordsetCollection
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			slog.WarnContext(ctx, "Failed to read wordset document, skipping", "file", entry.Name(), "error", err)
			continue
		}
		collection = append(collection, parseDocument(ctx, entry.Name(), data)...)
	}

	slog.InfoContext(ctx, "Wordsets loaded from directory", "dir", s.dir, "count", len(collection))
	return collection, nil
}
