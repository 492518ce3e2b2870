package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"devsim-backend/internal/api"
	"devsim-backend/internal/auth"
	"devsim-backend/internal/conf"
	"devsim-backend/internal/data"
	"devsim-backend/internal/server"
	"devsim-backend/internal/service"

	"github.com/joho/godotenv"
)

var flagconf string

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := conf.Load(flagconf)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// data layer
	httpClient := data.NewHTTPClient()
	repoClient := data.NewRepoClient(cfg.GitHub.APIBaseURL, httpClient)

	// auth layer
	redirectURL := cfg.GitHub.GetRedirectURL(cfg.Server.BaseURL)
	githubClient := auth.NewClient(&cfg.GitHub, redirectURL, httpClient)
	sessions, err := auth.NewCookieStore(cfg.Session.Secret, cfg.Session.TTL())
	if err != nil {
		logger.Error("failed to init session store", "error", err)
		os.Exit(1)
	}
	logger.Info("github oauth enabled", "redirect_url", redirectURL)

	// ai layer (placeholder service, no endpoints yet)
	if cfg.AI.Enabled {
		factory := data.NewClientFactory(cfg.AI)
		aiService, err := service.NewAIService(ctx, factory, cfg.AI)
		if err != nil {
			logger.Error("failed to init ai service", "error", err)
			os.Exit(1)
		}
		logger.Info("ai service ready", "model", aiService.ModelName())
	}

	// api layer
	githubHandler := api.NewGitHubHandler(githubClient, sessions, repoClient, logger)
	router := api.NewRouter(githubHandler, sessions.Middleware())

	logger.Info("server starting", "addr", cfg.Server.Addr)
	if err := server.Run(ctx, cfg.Server.Addr, router); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutting down...")
}
