package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/regen-eco/regen-server/internal/ai"
	"github.com/regen-eco/regen-server/internal/config"
	"github.com/regen-eco/regen-server/internal/database"
	"github.com/regen-eco/regen-server/internal/handler"
	"github.com/regen-eco/regen-server/internal/middleware"
	"github.com/regen-eco/regen-server/internal/repository"
	"github.com/regen-eco/regen-server/internal/router"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("db schema: %v", err)
	}
	cancel()

	// Redis is optional: without it the cache and rate limiter turn into
	// no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable, response cache and rate limiting disabled")
	}
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	rateLimit := middleware.NewRateLimit(config.LoadRateLimitConfig(), rdb)

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	logs := repository.NewWasteLogRepo(db)
	centers := repository.NewCenterRepo(db)
	rewards := repository.NewRewardRepo(db)
	communities := repository.NewCommunityRepo(db)

	h := router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users, tokens),
		Waste:     handler.NewWasteHandler(logs),
		Centers:   handler.NewCenterHandler(centers),
		Rewards:   handler.NewRewardHandler(rewards),
		Community: handler.NewCommunityHandler(users, logs, rewards, communities),
		Dashboard: handler.NewDashboardHandler(users, logs, rewards, centers),
		AI:        handler.NewAIHandler(ai.New(cfg.OpenAIKey)),
		Upload:    handler.NewUploadHandler(cfg),
	}

	e := echo.New()
	router.Register(e, h, cfg.JWTSecret, cfg.UploadDir, cache, rateLimit)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
