package handler

import (
	"net/http"
	"sync"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	"hotel/shared/timezone"
)

var (
	once    sync.Once
	handler http.Handler
)

// Handler serves the API from a serverless function. The dependency graph is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.SetLogLevel(cfg.Server.LogLevel)
		timezone.Init(cfg.App.Timezone)

		handler = di.InitializeService().Adaptor()
	})

	handler.ServeHTTP(w, r)
}
