package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/Darius-Gillingham/Img-s3/internal/domain"
)

// BucketSource はGCSのプレフィックス配下にあるJSONドキュメントからワードセットを読み込みます。
type BucketSource struct {
	reader    remoteio.InputReader
	prefixURL string // 例: "gs://bucket/wordsets"
}

// NewBucketSource は prefixURL 配下を読む BucketSource を生成します。
func NewBucketSource(reader remoteio.InputReader, prefixURL string) *BucketSource {
	return &BucketSource{
		reader:    reader,
		prefixURL: prefixURL,
	}
}

// Load はプレフィックス配下のオブジェクトを列挙し、JSONドキュメントを
// ダウンロードして全ワードセットを集めます。列挙自体の失敗のみエラーです。
func (s *BucketSource) Load(ctx context.Context) (domain.WordsetCollection, error) {
	var collection domain.WordsetCollection
	err := s.reader.List(ctx, s.prefixURL, func(objectPath string) error {
		if !strings.HasSuffix(objectPath, ".json") {
			return nil
		}
		data, err := s.download(ctx, objectPath)
		if err != nil {
			slog.WarnContext(ctx, "Failed to download wordset document, skipping", "object", objectPath, "error", err)
			return nil
		}
		collection = append(collection, parseDocument(ctx, objectPath, data)...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list wordset objects under %s: %w", s.prefixURL, err)
	}

	slog.InfoContext(ctx, "Wordsets loaded from bucket", "prefix", s.prefixURL, "count", len(collection))
	return collection, nil
}

func (s *BucketSource) download(ctx context.Context, uri string) ([]byte, error) {
	rc, err := s.reader.Open(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
