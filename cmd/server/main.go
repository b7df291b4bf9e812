package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cart-service/config"
	"cart-service/internal/api"
	"cart-service/internal/broker"
	"cart-service/internal/cartstore"
	"cart-service/internal/catalog"
	"cart-service/internal/coupon"
	"cart-service/internal/pricing"
	"cart-service/internal/redisclient"
	"cart-service/internal/service"
	"cart-service/internal/store"
	"cart-service/internal/util"
	"cart-service/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting cart service")

	tp, err := util.InitTracer("cart-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	cartStore, err := newCartStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize cart store: %v", err)
	}
	defer cartStore.Close()
	log.Printf("Cart store ready: backend=%s", cfg.Cart.StoreBackend)

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	cat := catalog.Default()
	calculator := pricing.NewCalculator(cfg.Business.FreeShippingThreshold, cfg.Business.ShippingFlatRate)
	coupons := coupon.NewDefaultEngine()

	cartService := service.NewCartService(cartStore, cat, calculator, coupons)
	warehouse := service.NewWarehouseClient(cfg.Business.WarehouseSuccessRate)
	orchestrator := service.NewCheckoutOrchestrator(
		cartService,
		warehouse,
		eventPublisher,
		time.Duration(cfg.Business.CheckoutTimeoutSeconds)*time.Second,
	)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	orderConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder, cfg.Kafka.ConsumerGroup)
	warehouseWorker := worker.NewWarehouseWorker(orderConsumer)
	go func() {
		if err := warehouseWorker.Start(workerCtx); err != nil {
			log.Printf("Warehouse worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(cat, cartService, orchestrator)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	warehouseWorker.Stop()

	log.Println("Server exited")
}

// newCartStore selects the cart persistence backend from configuration
func newCartStore(cfg *config.Config) (cartstore.Store, error) {
	switch cfg.Cart.StoreBackend {
	case "memory":
		return cartstore.NewMemoryStore(), nil
	case "postgres":
		return store.NewStore(cfg.Database.URL)
	case "redis":
		return redisclient.NewClient(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Cart.TTLHours)*time.Hour,
		)
	default:
		return nil, fmt.Errorf("unknown cart store backend: %s", cfg.Cart.StoreBackend)
	}
}
