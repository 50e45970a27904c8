package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"

	"github.com/avielle/event-booking-backend/internal/config"
	"github.com/avielle/event-booking-backend/internal/database"
	"github.com/avielle/event-booking-backend/internal/handler"
	"github.com/avielle/event-booking-backend/internal/middleware"
	"github.com/avielle/event-booking-backend/internal/pricing"
	"github.com/avielle/event-booking-backend/internal/queue"
	"github.com/avielle/event-booking-backend/internal/repository"
	"github.com/avielle/event-booking-backend/internal/router"
	"github.com/avielle/event-booking-backend/internal/storage"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	// Prices serialize as JSON numbers, matching what clients already parse.
	decimal.MarshalJSONWithoutQuotes = true

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	blobs, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	// Redis is optional: a nil client just disables the response cache.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, response cache disabled")
	}
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// The booking queue is also optional. Without it events are still
	// created, just not announced.
	var notifier handler.BookingNotifier
	if cfg.AMQPURL != "" {
		pub, err := queue.NewPublisher(cfg.AMQPURL)
		if err != nil {
			log.Printf("amqp unavailable, booking notifications disabled: %v", err)
		} else {
			defer pub.Close()
			notifier = pub
		}
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	catalog := repository.NewCatalogRepo(db)
	packages := repository.NewPackageRepo(db)
	events := repository.NewEventRepo(db)
	wishlist := repository.NewWishlistRepo(db)
	modifications := repository.NewModificationRepo(db)
	outfitBookings := repository.NewOutfitBookingRepo(db)

	// Make sure the fixed event type list exists before serving traffic.
	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := catalog.SeedEventTypes(seedCtx); err != nil {
		log.Printf("seed event types: %v", err)
	}
	cancel()

	resolver := pricing.NewResolver(catalog)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	catalogHandler := handler.NewCatalogHandler(catalog)
	packageHandler := handler.NewPackageHandler(packages)
	eventHandler := handler.NewEventHandler(events, resolver, notifier)
	wishlistHandler := handler.NewWishlistHandler(wishlist, resolver)
	modificationHandler := handler.NewModificationHandler(modifications)
	outfitHandler := handler.NewOutfitHandler(catalog, outfitBookings, blobs)
	profileHandler := handler.NewProfileHandler(cfg, users, blobs)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, catalogHandler, packageHandler, outfitHandler, cache)
	router.RegisterBooking(e, cfg.JWTSecret, eventHandler, wishlistHandler,
		modificationHandler, outfitHandler, profileHandler)

	// Uploaded images are served straight from disk.
	e.Static("/uploads", cfg.UploadDir)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
