package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineVocabulary(t *testing.T) {
	t.Run("2つのセットの語を初出順で統合するのだ", func(t *testing.T) {
		first := Wordset{"月", "噴水", "歯車"}
		second := Wordset{"歯車", "硝子", "月", "残響"}

		vocab := CombineVocabulary(first, second)

		assert.Equal(t, []string{"月", "噴水", "歯車", "硝子", "残響"}, vocab)
	})

	t.Run("単一セット内の重複も除去されるのだ", func(t *testing.T) {
		vocab := CombineVocabulary(Wordset{"波", "波", "泡", "波"})
		assert.Equal(t, []string{"波", "泡"}, vocab)
	})

	t.Run("同一セットを2回渡すと1回分と同じになるのだ", func(t *testing.T) {
		set := Wordset{"雷", "砂丘"}
		assert.Equal(t, CombineVocabulary(set), CombineVocabulary(set, set))
	})

	t.Run("空のセットは結果に影響しないのだ", func(t *testing.T) {
		vocab := CombineVocabulary(Wordset{}, Wordset{"灯"}, Wordset{})
		assert.Equal(t, []string{"灯"}, vocab)
	})

	t.Run("大文字小文字は別の語として扱うのだ", func(t *testing.T) {
		vocab := CombineVocabulary(Wordset{"Fox", "fox"})
		assert.Equal(t, []string{"Fox", "fox"}, vocab)
	})
}

func TestWordsetDocument(t *testing.T) {
	t.Run("ワイヤ形式の wordsets 配列を読み取れるのだ", func(t *testing.T) {
		raw := `{"wordsets": [["a", "b"], ["c"]]}`

		var doc WordsetDocument
		require.NoError(t, json.Unmarshal([]byte(raw), &doc))

		require.Len(t, doc.Wordsets, 2)
		assert.Equal(t, Wordset{"a", "b"}, doc.Wordsets[0])
		assert.Equal(t, Wordset{"c"}, doc.Wordsets[1])
	})
}

func TestPromptBatch(t *testing.T) {
	t.Run("prompts キーで直列化されるのだ", func(t *testing.T) {
		data, err := json.Marshal(PromptBatch{Prompts: []string{"p1", "p2"}})
		require.NoError(t, err)
		assert.JSONEq(t, `{"prompts":["p1","p2"]}`, string(data))
	})

	t.Run("Size はプロンプト数を返すのだ", func(t *testing.T) {
		assert.Equal(t, 0, PromptBatch{}.Size())
		assert.Equal(t, 2, PromptBatch{Prompts: []string{"a", "b"}}.Size())
	})
}
