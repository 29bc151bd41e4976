package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/Darius-Gillingham/Img-s3/internal/domain"
)

// TableSource はSQLiteの wordsets テーブルからワードセットを読み込みます。
// words 列はJSON文字列配列で、1行が1つのワードセットです。語数は固定しません。
type TableSource struct {
	db *sql.DB
}

// NewTableSource は path のSQLiteデータベースを開いて TableSource を生成します。
func NewTableSource(path string) (*TableSource, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wordset database %s: %w", path, err)
	}
	return &TableSource{db: db}, nil
}

// Close は基盤のデータベース接続を閉じます。
func (s *TableSource) Close() error {
	return s.db.Close()
}

// Load は wordsets テーブルを走査して全ワードセットを集めます。
// words がJSONとして壊れている行は警告ログと共にスキップします。
func (s *TableSource) Load(ctx context.Context) (domain.WordsetCollection, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, words FROM wordsets ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to scan wordsets table: %w", err)
	}
	defer rows.Close()

	var collection domain.WordsetCollection
	for rows.Next() {
		var id int64
		var words string
		if err := rows.Scan(&id, &words); err != nil {
			slog.WarnContext(ctx, "Failed to scan wordset row, skipping", "error", err)
			continue
		}

		var set domain.Wordset
		if err := json.Unmarshal([]byte(words), &set); err != nil {
			slog.WarnContext(ctx, "Skipping wordset row with invalid words JSON", "id", id, "error", err)
			continue
		}
		collection = append(collection, set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("wordsets table iteration failed: %w", err)
	}

	slog.InfoContext(ctx, "Wordsets loaded from table", "count", len(collection))
	return collection, nil
}
