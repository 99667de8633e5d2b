package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mfreitas/contas/internal/auth"
	"github.com/mfreitas/contas/internal/card"
	cardStore "github.com/mfreitas/contas/internal/card/store"
	"github.com/mfreitas/contas/internal/categorize"
	categorizeStore "github.com/mfreitas/contas/internal/categorize/store"
	"github.com/mfreitas/contas/internal/config"
	"github.com/mfreitas/contas/internal/database"
	"github.com/mfreitas/contas/internal/export"
	"github.com/mfreitas/contas/internal/house"
	houseStore "github.com/mfreitas/contas/internal/house/store"
	contasHttp "github.com/mfreitas/contas/internal/http"
	cardHandler "github.com/mfreitas/contas/internal/http/card"
	categorizeHandler "github.com/mfreitas/contas/internal/http/categorize"
	houseHandler "github.com/mfreitas/contas/internal/http/house"
	importHandler "github.com/mfreitas/contas/internal/http/importcsv"
	purchaseHandler "github.com/mfreitas/contas/internal/http/purchase"
	"github.com/mfreitas/contas/internal/http/scope"
	statementHandler "github.com/mfreitas/contas/internal/http/statement"
	"github.com/mfreitas/contas/internal/importer"
	"github.com/mfreitas/contas/internal/purchase"
	purchaseStore "github.com/mfreitas/contas/internal/purchase/store"
	"github.com/mfreitas/contas/internal/statement"
)

func main() {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var (
		houseService      = house.NewService(houseStore.New(db))
		cardService       = card.NewService(cardStore.New(db))
		purchaseService   = purchase.NewService(purchaseStore.New(db), cardService)
		statementService  = statement.NewService(purchaseService, cardService)
		categorizeService = categorize.NewService(categorizeStore.New(db))
		importService     = importer.NewService()
		exportService     = export.NewService(statementService)
	)

	authManager := auth.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	guard := scope.NewGuard(houseService)

	var (
		houseH      = houseHandler.NewHandler(houseService, guard)
		cardH       = cardHandler.NewHandler(cardService, guard)
		purchaseH   = purchaseHandler.NewHandler(purchaseService, guard)
		statementH  = statementHandler.NewHandler(statementService, exportService, guard)
		importH     = importHandler.NewHandler(importService, purchaseService, categorizeService, guard)
		categorizeH = categorizeHandler.NewHandler(categorizeService, guard)
	)

	router := contasHttp.New(authManager, contasHttp.Options{
		Timeout:        cfg.Server.Timeout,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, houseH, cardH, purchaseH, statementH, importH, categorizeH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
