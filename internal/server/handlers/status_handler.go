package handlers

import (
	"net/http"
	"time"
)

// statusResponse は /status が返す稼働情報です。
type statusResponse struct {
	Status        string `json:"status"`
	JobKind       string `json:"job_kind"`
	PromptProfile string `json:"prompt_profile"`
	WordsetSource string `json:"wordset_source"`
	OutputTarget  string `json:"output_target"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// HandleHealthz は死活監視用の応答を返します。
func (h *Handler) HandleHealthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleStatus は既定のジョブ構成と稼働時間を返します。
func (h *Handler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, statusResponse{
		Status:        "ok",
		JobKind:       h.cfg.JobKind,
		PromptProfile: h.cfg.PromptProfile,
		WordsetSource: h.cfg.WordsetSourceURI(),
		OutputTarget:  h.cfg.OutputTargetURI(),
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
	})
}
