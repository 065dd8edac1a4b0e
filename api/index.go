package handler

import (
	"dashboard/config"
	"dashboard/di"
	"dashboard/shared/logger"
	"net/http"
	"sync"
)

var (
	handler http.Handler
	once    sync.Once
)

// Handler serves the dashboard API on serverless runtimes, building the dependency graph once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		handler = di.InitializeService().Handler()
	})

	handler.ServeHTTP(w, r)
}
