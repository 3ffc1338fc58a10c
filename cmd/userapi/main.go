package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/hamed0406/userprobe/internal/config"
	"github.com/hamed0406/userprobe/internal/httpapi"
	"github.com/hamed0406/userprobe/internal/logging"
	"github.com/hamed0406/userprobe/internal/repo"
	"github.com/hamed0406/userprobe/internal/repo/memory"
	"github.com/hamed0406/userprobe/internal/repo/sqlite"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New("userapi", cfg.Log.Dir, cfg.Log.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	var users repo.UserStore = memory.New()
	if cfg.API.StoragePath != "" {
		db, err := sqlite.New(context.Background(), cfg.API.StoragePath, logger)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		users = db
	}
	api := httpapi.NewServer(logger, users)

	logger.Info("api_listen", zap.String("addr", cfg.API.Addr))
	if err := http.ListenAndServe(cfg.API.Addr, api.Router()); err != nil {
		logger.Error("api_stopped", zap.Error(err))
		log.Fatal(err)
	}
}
