package selector

import (
	"errors"
	"math/rand"

	"github.com/Darius-Gillingham/Img-s3/internal/domain"
)

// ErrEmptyCollection は空のコレクションに対して抽選を要求されたことを示します。
// 呼び出し側は事前に Size() を確認する契約です。
var ErrEmptyCollection = errors.New("wordset collection is empty")

// Selector はワードセットコレクションからの一様ランダム抽選を提供します。
// 乱数源はコンストラクタで注入するため、テストではシード固定で再現できます。
type Selector struct {
	rng *rand.Rand
}

// New は指定された乱数源を用いる Selector を生成します。
func New(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// PickOne はコレクションから1件を一様ランダムに選びます。
func (s *Selector) PickOne(collection domain.WordsetCollection) (domain.Wordset, error) {
	if len(collection) == 0 {
		return nil, ErrEmptyCollection
	}
	return collection[s.rng.Intn(len(collection))], nil
}

// PickTwoDistinct は相異なる2件を一様ランダムに選びます。
// 2件目は1件目と同じ位置を引いた場合に引き直します (棄却サンプリング)。
// コレクションが1件しか無い場合は、同じ要素を2回返します。これはエラーではなく
// 縮退ケースとして扱います。
func (s *Selector) PickTwoDistinct(collection domain.WordsetCollection) (domain.Wordset, domain.Wordset, error) {
	if len(collection) == 0 {
		return nil, nil, ErrEmptyCollection
	}
	if len(collection) == 1 {
		return collection[0], collection[0], nil
	}

	first := s.rng.Intn(len(collection))
	second := s.rng.Intn(len(collection))
	for second == first {
		second = s.rng.Intn(len(collection))
	}
	return collection[first], collection[second], nil
}
