package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/clinic-scheduler/internal/config"
	"github.com/clinicdesk/clinic-scheduler/internal/logging"
	"github.com/clinicdesk/clinic-scheduler/internal/routes"
	"github.com/clinicdesk/clinic-scheduler/internal/store"
)

func main() {

	cfg := config.Load()
	logging.Init("clinic-scheduler", cfg.Env)

	var st store.Store
	if cfg.StoreURL != "" {
		st = store.NewClient(cfg.StoreURL, cfg.StoreTimeout)
		log.Info().Str("store_url", cfg.StoreURL).Msg("using external data store")
	} else {
		st = store.NewMemory()
		log.Warn().Msg("STORE_URL not set, using in-memory store")
	}

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, st, cfg)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
