package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"liquorhole/internal/cart"
	"liquorhole/internal/config"
	"liquorhole/internal/db"
	"liquorhole/internal/httpserver"
	"liquorhole/internal/mailer"
	brandrepo "liquorhole/internal/repository/brand"
	categoryrepo "liquorhole/internal/repository/category"
	menuitemrepo "liquorhole/internal/repository/menuitem"
	orderrepo "liquorhole/internal/repository/order"
	productrepo "liquorhole/internal/repository/product"
	adminsvc "liquorhole/internal/service/admin"
	collectionsvc "liquorhole/internal/service/collection"
	ordersvc "liquorhole/internal/service/order"
	suggestsvc "liquorhole/internal/service/suggest"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	redisClient, err := db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatalf("connect to redis: %v", err)
	}
	defer redisClient.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	brandRepo := brandrepo.NewPostgres(dbpool)
	menuItemRepo := menuitemrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	smtp, err := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromEmail)
	if err != nil {
		logger.Fatalf("init mailer: %v", err)
	}

	adminService, err := adminsvc.New(cfg.AdminPassword, cfg.AdminPasswordHash, cfg.AdminJWTSecret)
	if err != nil {
		logger.Fatalf("init admin auth: %v", err)
	}

	collectionService := collectionsvc.New(menuItemRepo, productRepo, logger)
	suggestService := suggestsvc.New(productRepo)
	orderService := ordersvc.New(orderRepo, smtp, cfg.AdminEmail, cfg.WhatsAppNumber, logger)

	carts := cart.NewManager(func(sessionID string) cart.Storage {
		return cart.NewRedisStorage(redisClient, sessionID, cfg.CartTTL)
	}, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Products:    productRepo,
		Categories:  categoryRepo,
		Brands:      brandRepo,
		Collections: collectionService,
		Suggest:     suggestService,
		Orders:      orderService,
		AdminOrders: orderRepo,
		Admin:       adminService,
		Carts:       carts,
	}, httpserver.Options{
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		SecureCookies:    cfg.SecureCookies,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
