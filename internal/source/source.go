package source

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Darius-Gillingham/Img-s3/internal/domain"
)

// Source はワードセット取得元の抽象です。
// ディレクトリ / バケット / テーブルの各実装がこのパッケージにあります。
type Source interface {
	// Load は1回の読み込みパスでワードセットコレクションを収集します。
	// 壊れたドキュメントは警告ログと共にスキップし、読めた分だけを返します。
	// 有効なドキュメントがひとつも無い場合は空のコレクションを返し、エラーにはしません。
	Load(ctx context.Context) (domain.WordsetCollection, error)
}

// parseDocument は {"wordsets": [["word", ...], ...]} 形式のドキュメントを解釈します。
// 解釈できない場合は警告を出して nil を返し、呼び出し元はそのまま読み飛ばします。
func parseDocument(ctx context.Context, name string, data []byte) domain.WordsetCollection {
	var doc domain.WordsetDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.WarnContext(ctx, "Skipping unparsable wordset document", "doc", name, "error", err)
		return nil
	}
	return domain.WordsetCollection(doc.Wordsets)
}
