package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mkhai207/app-shop-checkout/internal/buynow"
	"github.com/mkhai207/app-shop-checkout/internal/cache"
	"github.com/mkhai207/app-shop-checkout/internal/cart"
	"github.com/mkhai207/app-shop-checkout/internal/checkout"
	"github.com/mkhai207/app-shop-checkout/internal/client"
	"github.com/mkhai207/app-shop-checkout/internal/config"
	"github.com/mkhai207/app-shop-checkout/internal/discount"
	"github.com/mkhai207/app-shop-checkout/internal/events"
	h "github.com/mkhai207/app-shop-checkout/internal/http"
	"github.com/mkhai207/app-shop-checkout/internal/logger"
	"github.com/mkhai207/app-shop-checkout/internal/resolver"
)

func main() {
	cfg := config.Load()

	log, err := logger.New()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()
	h.SetLogger(log)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	backend := client.New(cfg.BackendBaseURL, cfg.RequestTimeout)
	cartClient := client.NewCartClient(backend)
	discountClient := client.NewDiscountClient(backend)
	orderClient := client.NewOrderClient(backend)

	cartCache := cache.NewRedisCache(redisClient)
	provider := cart.NewProvider(cartClient, cartCache, log)
	registry := cart.NewRegistry(cartClient, provider, log)
	selections := buynow.NewRedisStore(redisClient)

	publisher := events.NewPublisher(cfg.KafkaBrokers...)
	defer publisher.Close()

	orchestrator := checkout.NewOrchestrator(
		resolver.New(provider, selections),
		discount.NewEvaluator(discountClient),
		orderClient,
		cartClient,
		provider,
		publisher,
		cfg.Pricing,
		log,
	)

	cartHandler := h.NewCartHandler(registry, provider, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(orchestrator, provider, selections, cfg.RequestTimeout)
	ordersHandler := h.NewOrdersHandler(orderClient, cfg.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.HeaderAuthMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Get("/state", cartHandler.GetState)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{item_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{item_id}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/reset", cartHandler.Reset)
		})
		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.Submit)
			r.Post("/buy-now", checkoutHandler.StashBuyNow)
			r.Post("/discount", checkoutHandler.ApplyDiscount)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.GetOrders)
			r.Post("/{order_id}/retry-payment", ordersHandler.RetryPayment)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("checkout service starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	orchestrator.Drain()
	log.Info("server exited")
}
