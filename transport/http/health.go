package http

import (
	"net/http"
	"time"

	"hotel/transport/http/response"
)

type rootInfo struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Version string `json:"version"`
}

type healthInfo struct {
	Success     bool    `json:"success"`
	Message     string  `json:"message"`
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
	Uptime      float64 `json:"uptime"`
	Environment string  `json:"environment"`
	Database    string  `json:"database"`
}

// root godoc
// @Summary Service banner
// @Tags Health
// @Produce json
// @Success 200 {object} rootInfo
// @Router / [get]
func (h *HTTP) root(w http.ResponseWriter, _ *http.Request) {
	response.WithRaw(w, http.StatusOK, rootInfo{
		Success: true,
		Message: "Hotel Management API",
		Version: h.Config.App.Version,
	})
}

// health godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} healthInfo
// @Failure 503 {object} response.Error
// @Router /health [get]
func (h *HTTP) health(w http.ResponseWriter, _ *http.Request) {
	if h.State() != ServerStateReady {
		response.WithPreparingShutdown(w)

		return
	}

	response.WithRaw(w, http.StatusOK, healthInfo{
		Success:     true,
		Message:     "Hotel Management API is running",
		Status:      "operational",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Uptime:      time.Since(h.startedAt).Seconds(),
		Environment: h.Config.Server.Env,
		Database:    h.Config.DB.Driver,
	})
}
