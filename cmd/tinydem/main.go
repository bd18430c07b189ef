package main

import (
	"log"

	"github.com/gorilla/mux"

	"github.com/ziggoon/tinyDEM/internal/config"
	"github.com/ziggoon/tinyDEM/internal/db"
	"github.com/ziggoon/tinyDEM/internal/logger"
	"github.com/ziggoon/tinyDEM/internal/routing"
	"github.com/ziggoon/tinyDEM/pkg/middleware"
	"github.com/ziggoon/tinyDEM/pkg/password"
	"github.com/ziggoon/tinyDEM/pkg/render"
	"github.com/ziggoon/tinyDEM/pkg/session"
)

func main() {
	config.Load() // optional .env, validated startup values

	sqlDB := db.Load()
	defer sqlDB.Close()

	logger := logger.Load()

	renderer, err := render.Load(config.TemplatesDir())
	if err != nil {
		log.Fatal("Cannot load templates:", err)
	}

	hasher, err := password.NewHasher(config.BcryptCost())
	if err != nil {
		log.Fatal("Bad hasher config:", err)
	}

	// Sweep sessions that expired while the process was down.
	if err := session.NewSQLRepo(sqlDB).DeleteExpired(); err != nil {
		logger.Warn("expired session sweep", "error", err)
	}

	r := mux.NewRouter()
	r.Use(middleware.Panic(logger))

	routing.InitRoutes(r, sqlDB, renderer, hasher, logger)
	routing.ServeStaticFiles(r, config.StaticDir())
	routing.StartServer(r, config.Addr())
}
