package store

import (
	"context"
	"errors"
)

// ErrObjectExists は上書き禁止の書き込み先に同名オブジェクトが既に存在することを示します。
var ErrObjectExists = errors.New("object already exists at destination")

// WriteOptions は1回の書き込みの振る舞いを指定します。
type WriteOptions struct {
	// ContentType はオブジェクトのMIMEタイプです。ローカル書き込みでは使用されません。
	ContentType string
	// DisallowOverwrite が true の場合、同名オブジェクトが既にあれば
	// 既存オブジェクトに触れずに ErrObjectExists で失敗します。
	DisallowOverwrite bool
}

// ObjectStore は成果物の書き込み先の抽象です。
// ローカルファイルシステム実装とGCS実装が internal/store にあります。
type ObjectStore interface {
	Write(ctx context.Context, name string, data []byte, opts WriteOptions) error
}
