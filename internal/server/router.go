package server

import (
	"net/http"

	"github.com/Darius-Gillingham/Img-s3/internal/builder"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter は、ミドルウェアとルーティングを統合した http.Handler を構築します。
func NewRouter(h *builder.AppHandlers) http.Handler {
	r := chi.NewRouter()

	setupCommonMiddleware(r)
	setupRoutes(r, h)

	return r
}

func setupCommonMiddleware(r *chi.Mux) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)
}

func setupRoutes(r chi.Router, h *builder.AppHandlers) {
	// --- 公開ルート (死活監視) ---
	r.Get("/healthz", h.API.HandleHealthz)
	r.Get("/status", h.API.HandleStatus)

	// --- ジョブ投入ルート ---
	r.Post("/runs", h.API.HandleSubmitRun)

	// --- Cloud Tasks 専用ルート (Worker 用) ---
	// 呼び出し元の検証は Cloud Run の invoker IAM に委ねます。
	r.Group(func(r chi.Router) {
		r.Post("/tasks/run", h.Worker.ProcessTask)
	})
}
