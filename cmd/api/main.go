package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	authsvc "github.com/johotel/hotel-api/internal/auth"
	"github.com/johotel/hotel-api/internal/booking"
	"github.com/johotel/hotel-api/internal/directory"
	"github.com/johotel/hotel-api/internal/http/handlers"
	httpmw "github.com/johotel/hotel-api/internal/http/middleware"
	"github.com/johotel/hotel-api/internal/notify"
	"github.com/johotel/hotel-api/internal/platform/mailer"
	"github.com/johotel/hotel-api/internal/repository"
	"github.com/johotel/hotel-api/pkg/auth"
	"github.com/johotel/hotel-api/pkg/config"
	"github.com/johotel/hotel-api/pkg/database"
	"github.com/johotel/hotel-api/pkg/events"
	"github.com/johotel/hotel-api/pkg/logger"
	mw "github.com/johotel/hotel-api/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// Refuse to start with a missing signing secret.
	issuer, err := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Error("Invalid auth configuration", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(cfg.Database); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("Invalid Redis URL", "error", err)
		os.Exit(1)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// Notify worker consumes the events this process publishes.
	worker := notify.NewWorker(eventBus, newMailer(cfg), cfg.Hotel.Name)
	if err := worker.Start(); err != nil {
		logger.Error("Failed to start notify worker", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(pool)
	roomRepo := repository.NewRoomRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)

	// Services
	dirClient := directory.NewClient(cfg.Directory)
	roleResolver := authsvc.NewRoleResolver(cfg.Directory.GroupRoles)
	authService := authsvc.NewService(userRepo, dirClient, roleResolver, issuer, eventBus, cfg)

	pricer := booking.NewPriceCalculator(cfg.Pricing.NightlyRates)
	bookingService := booking.NewService(reservationRepo, roomRepo, userRepo, pricer, eventBus, cfg)

	h := handlers.New(authService, bookingService)

	loginLimiter := httpmw.NewRateLimiter(rdb, httpmw.RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
	})

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("hotel-api"))
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/auth", func(r chi.Router) {
		r.Use(loginLimiter.Middleware())
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(httpmw.RequireJWT(issuer)).Get("/me", h.Me)
	})

	r.Route("/rooms", func(r chi.Router) {
		r.Get("/", h.ListRooms)
		r.Get("/{id}", h.GetRoom)
	})

	r.Route("/reservations", func(r chi.Router) {
		r.Use(httpmw.RequireJWT(issuer))
		r.Post("/", h.CreateReservation)
		r.Get("/my", h.ListMyReservations)
		r.With(httpmw.RequireRole("Admin", "Manager")).Get("/", h.ListAllReservations)
		r.Delete("/{id}", h.CancelReservation)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down hotel API...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Hotel API shutdown error", "error", err)
		}
	}()

	logger.Info("Starting hotel API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Hotel API error", "error", err)
		os.Exit(1)
	}
}

func newMailer(cfg *config.Config) mailer.Service {
	switch {
	case cfg.Email.DevMode:
		return mailer.NewDevMailer()
	case cfg.Email.MailerSendKey != "":
		return mailer.NewMailer(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.SMTPFrom)
	default:
		return mailer.NewSMTPMailer(
			cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPFrom,
			cfg.Email.SMTPUser, cfg.Email.SMTPPass, cfg.Email.SMTPUseTLS,
		)
	}
}
