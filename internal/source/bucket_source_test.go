package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darius-Gillingham/Img-s3/internal/domain"
)

func TestBucketSourceLoad(t *testing.T) {
	ctx := context.Background()
	const prefix = "gs://prompt-archive/wordsets"

	t.Run("プレフィックス配下のドキュメントを集めるのだ", func(t *testing.T) {
		reader := newMockReader()
		reader.add("gs://prompt-archive/wordsets/a.json", []byte(`{"wordsets": [["castle", "dawn"]]}`))
		reader.add("gs://prompt-archive/wordsets/b.json", []byte(`{"wordsets": [["dragon"]]}`))

		collection, err := NewBucketSource(reader, prefix).Load(ctx)

		require.NoError(t, err)
		assert.Equal(t, domain.WordsetCollection{
			{"castle", "dawn"},
			{"dragon"},
		}, collection)
	})

	t.Run("JSON以外のオブジェクトは無視するのだ", func(t *testing.T) {
		reader := newMockReader()
		reader.add("gs://prompt-archive/wordsets/readme.md", []byte("hello"))
		reader.add("gs://prompt-archive/wordsets/a.json", []byte(`{"wordsets": [["castle"]]}`))

		collection, err := NewBucketSource(reader, prefix).Load(ctx)

		require.NoError(t, err)
		assert.Len(t, collection, 1)
	})

	t.Run("壊れたオブジェクトはスキップして残りを返すのだ", func(t *testing.T) {
		reader := newMockReader()
		reader.add("gs://prompt-archive/wordsets/bad.json", []byte(`broken{`))
		reader.add("gs://prompt-archive/wordsets/good.json", []byte(`{"wordsets": [["river"]]}`))

		collection, err := NewBucketSource(reader, prefix).Load(ctx)

		require.NoError(t, err)
		assert.Equal(t, domain.WordsetCollection{{"river"}}, collection)
	})

	t.Run("オブジェクトがゼロ件でも空のコレクションを返すのだ", func(t *testing.T) {
		collection, err := NewBucketSource(newMockReader(), prefix).Load(ctx)

		require.NoError(t, err)
		assert.Empty(t, collection)
	})

	t.Run("ダウンロード失敗はその1件だけスキップするのだ", func(t *testing.T) {
		reader := newMockReader()
		reader.add("gs://prompt-archive/wordsets/a.json", []byte(`{"wordsets": [["castle"]]}`))
		reader.order = append(reader.order, "gs://prompt-archive/wordsets/phantom.json")

		collection, err := NewBucketSource(reader, prefix).Load(ctx)

		require.NoError(t, err)
		assert.Equal(t, domain.WordsetCollection{{"castle"}}, collection)
	})

	t.Run("列挙の失敗はエラーなのだ", func(t *testing.T) {
		reader := newMockReader()
		reader.listErr = errors.New("bucket unreachable")

		_, err := NewBucketSource(reader, prefix).Load(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, reader.listErr)
	})
}
