package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pokemon-game-system/config"
	"pokemon-game-system/handlers"
	"pokemon-game-system/locks"
	"pokemon-game-system/middleware"
	"pokemon-game-system/models"
	"pokemon-game-system/progression"
	"pokemon-game-system/repository"
	"pokemon-game-system/services"
	"pokemon-game-system/utils"
	"pokemon-game-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.PlayerState{},
		&models.BattleRecord{},
		&models.PurchaseRecord{},
		&models.Pokemon{},
		&models.AchievementType{},
		&models.PlayerAchievement{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	players := repository.NewGormPlayerRepository(db)
	catalog := repository.NewGormCatalogRepository(db)

	achievementService := services.NewAchievementService(repository.NewGormAchievementRepository(db))
	if err := achievementService.Seed(ctx); err != nil {
		log.Fatal("failed to seed achievement types:", err)
	}

	seed := cfg.RandomSeed
	if seed == nil {
		s, err := progression.NewSeed()
		if err != nil {
			log.Fatal("failed to seed random source:", err)
		}
		seed = &s
	} else {
		log.Printf("⚠️  RANDOM_SEED=%d: battle and booster outcomes are deterministic", *seed)
	}
	engine := progression.NewEngine(progression.NewRandomSource(*seed))

	// Per-player locks: Redis lease across replicas, in-process mutex otherwise.
	var locker locks.Locker = locks.NewMemoryLocker()
	var guards []fiber.Handler
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("failed to connect to redis:", err)
		}
		defer rdb.Close()

		locker = locks.NewRedisLocker(rdb)
		guards = append(guards, middleware.NewRateLimiter(rdb).Limit("mutation", cfg.RateLimit, cfg.RateLimitWindow))
		log.Printf("✅ Redis at %s: player locks + rate limit %d/%s", cfg.RedisAddr, cfg.RateLimit, cfg.RateLimitWindow)
	}

	gameService := services.NewGameService(players, catalog, achievementService, engine, locker)
	catalogService := services.NewCatalogService(catalog)

	var archiver *services.BattleArchiver
	if cfg.Archive.Enabled() {
		store, err := utils.NewR2Store(ctx, cfg.Archive)
		if err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
		archiver = services.NewBattleArchiver(players, store)
	}

	var syncCatalog services.CatalogSyncFunc
	if cfg.CatalogSourceURL != "" {
		syncCatalog = workers.NewCatalogSyncWorker(catalog, cfg.CatalogSourceURL, cfg.GameServiceToken).Sync
	}

	sched, err := services.StartScheduler(ctx, archiver, syncCatalog, cfg.CatalogSyncInterval)
	if err != nil {
		log.Fatal("failed to start scheduler:", err)
	}

	app := fiber.New()

	// 🔐❗ GLOBAL: Only Gateway requests allowed
	app.Use(middleware.GatewayAuthMiddleware(cfg.GameServiceToken))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Device-ID",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID, Retry-After",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	handlers.SetupGameRoutes(app, gameService, achievementService, guards...)
	handlers.SetupShopRoutes(app, gameService, guards...)
	handlers.SetupPokemonRoutes(app, catalogService)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", cfg.Port)
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", strings.Join(cfg.AllowedOrigins, ","))

	<-ctx.Done()
	log.Println("Shutting down server...")

	if err := sched.Shutdown(); err != nil {
		log.Printf("Scheduler shutdown error: %v", err)
	}
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
