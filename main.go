package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/km-naimul/b12-a11-localchefbazaar-server-side/config"
	controller "github.com/km-naimul/b12-a11-localchefbazaar-server-side/controllers"
	middleware "github.com/km-naimul/b12-a11-localchefbazaar-server-side/middlewares"
	"github.com/km-naimul/b12-a11-localchefbazaar-server-side/routes"
	"github.com/km-naimul/b12-a11-localchefbazaar-server-side/services"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := config.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("MongoDB connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("MongoDB disconnect failed")
		}
	}()

	if err := config.EnsureIndexes(ctx, client, cfg.DatabaseName); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	meals := config.OpenCollection(client, cfg.DatabaseName, "createMeals")
	reviews := config.OpenCollection(client, cfg.DatabaseName, "reviews")
	favorites := config.OpenCollection(client, cfg.DatabaseName, "favorites")
	orders := config.OpenCollection(client, cfg.DatabaseName, "orders")
	payments := config.OpenCollection(client, cfg.DatabaseName, "payments")
	users := config.OpenCollection(client, cfg.DatabaseName, "users")
	roleRequests := config.OpenCollection(client, cfg.DatabaseName, "roleRequests")

	checkout := services.NewStripeCheckout(cfg.StripeSecretKey, cfg.SiteDomain)

	ac := controller.NewAuthController(cfg.JWTSecret)
	mc := controller.NewMealController(meals)
	rvc := controller.NewReviewController(reviews)
	fc := controller.NewFavoriteController(favorites)
	oc := controller.NewOrderController(orders)
	pc := controller.NewPaymentController(payments, orders, checkout)
	uc := controller.NewUserController(users, meals)
	rrc := controller.NewRoleRequestController(roleRequests, users)

	router := mux.NewRouter()
	routes.PublicRoutes(router, ac, mc, rvc, fc, oc, pc, uc)

	secured := router.PathPrefix("/").Subrouter()
	secured.Use(middleware.Authentication(cfg.JWTSecret))
	routes.ProtectedRoutes(secured, oc, pc, rrc)

	admin := secured.PathPrefix("/").Subrouter()
	admin.Use(middleware.AdminOnly(users))
	routes.AdminRoutes(admin, rrc, uc)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{cfg.SiteDomain}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      cors(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
