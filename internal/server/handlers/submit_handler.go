package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Darius-Gillingham/Img-s3/internal/config"
	"github.com/Darius-Gillingham/Img-s3/internal/domain"
)

// リクエストボディの上限。ペイロードは kind と batch_size だけの小さなJSONです。
const maxSubmitBodyBytes = 4 << 10

// HandleSubmitRun はジョブ実行リクエストを受け付け、タスクキューへ投入します。
// ボディが空の場合は設定の既定ジョブ種別で実行します。
func (h *Handler) HandleSubmitRun(w http.ResponseWriter, r *http.Request) {
	var payload domain.RunTaskPayload

	body := io.LimitReader(r.Body, maxSubmitBodyBytes)
	if err := json.NewDecoder(body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		slog.Warn("リクエストボディの解析に失敗しました", "error", err)
		http.Error(w, "リクエストの解析に失敗しました", http.StatusBadRequest)
		return
	}

	if payload.Kind == "" {
		payload.Kind = h.cfg.JobKind
	}

	switch payload.Kind {
	case config.JobKindPrompts, config.JobKindImages:
	default:
		slog.WarnContext(r.Context(), "kind に未知のジョブ種別が指定されています", "input", payload.Kind)
		http.Error(w, "不正なジョブ種別です。prompts または images を指定してください。", http.StatusBadRequest)
		return
	}

	if payload.BatchSize < 0 {
		http.Error(w, "batch_size には0以上を指定してください", http.StatusBadRequest)
		return
	}

	if err := h.taskEnqueuer.Enqueue(r.Context(), payload); err != nil {
		slog.Error("タスクのエンキューに失敗しました", "error", err)
		http.Error(w, "タスクのスケジュールに失敗しました。管理者にお問い合わせください。", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]any{
		"status":     "accepted",
		"kind":       payload.Kind,
		"batch_size": payload.BatchSize,
	})
}
