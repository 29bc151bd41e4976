package domain

// Wordset は画像プロンプト錬成の種として使う単語・フレーズの順序付きリストです。
// ロード元の識別子（ファイル名や行キー）は保持しません。下流で意味を持つのは語の並びだけです。
type Wordset []string

// WordsetCollection は1回のロードで集められた Wordset の集合です。
// 並び順はソースのリスティング順であり、意味を持ちません。
type WordsetCollection []Wordset

// Size は保持している Wordset の数を返します。
func (c WordsetCollection) Size() int {
	return len(c)
}

// WordsetDocument はソースドキュメントのワイヤ形式です。
// ファイル版・バケット版の両ソースがこの JSON 形式を共有します。
type WordsetDocument struct {
	Wordsets []Wordset `json:"wordsets"`
}

// CombineVocabulary は選択された Wordset 群の語を統合し、初出順を保ったまま重複を除去します。
// 1つの Wordset だけを渡した場合も、その内部重複が除去されます。
func CombineVocabulary(sets ...Wordset) []string {
	seen := make(map[string]struct{})
	var vocab []string
	for _, set := range sets {
		for _, word := range set {
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			vocab = append(vocab, word)
		}
	}
	return vocab
}

// PromptBatch は1回の錬成で得られた画像生成プロンプトの順序付きリストです。
// 期待枚数は5ですが、契約としては強制しません。
type PromptBatch struct {
	Prompts []string `json:"prompts"`
}

// Size はバッチ内のプロンプト数を返します。
func (b PromptBatch) Size() int {
	return len(b.Prompts)
}
