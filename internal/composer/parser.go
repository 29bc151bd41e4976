package composer

import (
	"encoding/json"
	"regexp"
	"strings"
)

// 1つのプロンプトとして許容する最大語数。超過分は切り捨てます。
const maxPromptWords = 20

// "3. " や "3) " のような行頭の列挙プレフィックスにマッチします。
var enumPrefix = regexp.MustCompile(`^\s*\d+[.)]\s+`)

// parsePrompts は生成APIの生テキストをプロンプト列に正規化します。
// まずJSON文字列配列としての解釈を試み、配列でなければ行単位のパイプラインに落とします。
// JSONとして不正なだけではエラーにしません。
func parsePrompts(raw string) []string {
	cleaned := stripCodeFence(raw)

	var prompts []string
	if err := json.Unmarshal([]byte(cleaned), &prompts); err == nil {
		return prompts
	}

	return parseLines(cleaned)
}

// stripCodeFence は応答全体を囲むMarkdownコードフェンスを除去します。
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseLines は行単位の正規化パイプラインです。
// 列挙プレフィックス除去 → トリム → 両端の引用符除去 → 空白圧縮 → 語数制限 の順で適用し、
// 空行と残留フェンス行は捨てます。生き残った各行が1つのプロンプトになります。
func parseLines(s string) []string {
	var prompts []string
	for _, line := range strings.Split(s, "\n") {
		line = enumPrefix.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, `"`)
		line = strings.TrimSuffix(line, `"`)
		if strings.HasPrefix(line, "```") {
			continue
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		if len(words) > maxPromptWords {
			words = words[:maxPromptWords]
		}
		prompts = append(prompts, strings.Join(words, " "))
	}
	return prompts
}
