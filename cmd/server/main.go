package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/kalakriti/events-backend/internal/config"
	"github.com/kalakriti/events-backend/internal/database"
	"github.com/kalakriti/events-backend/internal/handler"
	"github.com/kalakriti/events-backend/internal/mailer"
	"github.com/kalakriti/events-backend/internal/middleware"
	"github.com/kalakriti/events-backend/internal/payment"
	"github.com/kalakriti/events-backend/internal/queue"
	"github.com/kalakriti/events-backend/internal/repository"
	"github.com/kalakriti/events-backend/internal/router"
	"github.com/kalakriti/events-backend/internal/service"
	"github.com/kalakriti/events-backend/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	regs := repository.NewRegistrationRepo(db)
	events := repository.NewEventRepo(db)
	results := repository.NewResultRepo(db)
	assets := repository.NewAssetRepo(db)
	contacts := repository.NewContactRepo(db)

	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	mail := mailer.New(cfg)
	uploads, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	registrations := service.NewRegistrationService(db, regs, users, gateway, mail)

	// The consumer tails confirmed registrations off the broker; it
	// reconnects on its own, so a failure here only logs.
	go func() {
		if err := queue.StartRegistrationConsumer(); err != nil {
			log.Printf("registration consumer stopped: %v", err)
		}
	}()

	rdb := config.NewRedisClient()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	if rdb != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	}

	h := router.Handlers{
		Auth:          handler.NewAuthHandler(cfg, users),
		Payments:      handler.NewPaymentHandler(registrations),
		Registrations: handler.NewRegistrationHandler(registrations, regs),
		Users:         handler.NewUserHandler(cfg, users),
		Events:        handler.NewEventHandler(events),
		Results:       handler.NewResultHandler(results),
		Contacts:      handler.NewContactHandler(contacts),
		Assets:        handler.NewAssetHandler(assets, regs, uploads),
	}
	router.RegisterRoutes(e, h, rdb)
	router.RegisterProtected(e, h, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
