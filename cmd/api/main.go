package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hospitality_proforma/pkg/api/proforma"
	"hospitality_proforma/pkg/core/logger"
	"hospitality_proforma/pkg/core/pipeline"
	"hospitality_proforma/pkg/core/store"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()
	logger.InitFromEnv()
	defer logger.Sync()
	log := logger.Named("api")

	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, err := store.Open(context.Background())
	if err != nil {
		log.Fatalw("[FATAL] failed to open store", "error", err)
	}
	defer repo.Close()

	engine := pipeline.NewEngine(pipeline.WithMemoization())
	router := proforma.NewRouter(proforma.NewHandler(engine, repo))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Infow("API server starting",
		"port", port,
		"routes", []string{
			"GET  /healthz",
			"POST /api/proforma/run",
			"POST /api/proforma/returns",
			"POST /api/proforma/report",
			"GET  /api/proforma/runs",
			"GET  /api/proforma/runs/:id",
		},
	)
	if err := router.Run(":" + port); err != nil {
		log.Fatalw("[FATAL] server failed to start", "error", err)
	}
}
