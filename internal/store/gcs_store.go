package store

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// GCSStore はGCSバケットへ成果物を書き込みます。
// 上書きガードは書き込み前の存在プローブで実現します。GCSの世代条件付き書き込み
// ほど厳密ではありませんが、同一分内の再実行が先行成果物を潰す事故は防げます。
type GCSStore struct {
	reader   remoteio.InputReader
	writer   remoteio.OutputWriter
	bucket   string
	basePath string
}

// NewGCSStore は gs://bucket/basePath 配下に書き込む GCSStore を生成します。
func NewGCSStore(reader remoteio.InputReader, writer remoteio.OutputWriter, bucket, basePath string) *GCSStore {
	return &GCSStore{
		reader:   reader,
		writer:   writer,
		bucket:   bucket,
		basePath: basePath,
	}
}

// objectURL は name から完全なGCSオブジェクトURLを組み立てます。
func (s *GCSStore) objectURL(name string) string {
	return fmt.Sprintf("gs://%s/%s", s.bucket, path.Join(s.basePath, name))
}

// Write は gs://bucket/basePath/name にバイト列を書き込みます。
func (s *GCSStore) Write(ctx context.Context, name string, data []byte, opts WriteOptions) error {
	url := s.objectURL(name)

	if opts.DisallowOverwrite {
		if rc, err := s.reader.Open(ctx, url); err == nil {
			rc.Close()
			return fmt.Errorf("%s: %w", url, ErrObjectExists)
		}
	}

	if err := s.writer.Write(ctx, url, bytes.NewReader(data), opts.ContentType); err != nil {
		return fmt.Errorf("failed to upload %s: %w", url, err)
	}

	slog.InfoContext(ctx, "Object uploaded", "url", url, "bytes", len(data))
	return nil
}
