package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
)

// respondJSON は JSON レスポンスを一度バッファへ組み立ててから書き込みます。
func respondJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("レスポンスJSONのエンコードに失敗しました", "error", err)
		http.Error(w, "システムエラーが発生しました", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("レスポンスの書き込みに失敗しました", "error", err)
	}
}
