package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KARAN3690/FarmersAgent/internal/config"
	httpapi "github.com/KARAN3690/FarmersAgent/internal/http"
	"github.com/KARAN3690/FarmersAgent/internal/payment"
	"github.com/KARAN3690/FarmersAgent/internal/pricing"
	"github.com/KARAN3690/FarmersAgent/internal/repository"
	"github.com/KARAN3690/FarmersAgent/internal/service"

	_ "github.com/KARAN3690/FarmersAgent/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	store := repository.NewMemoryStore()
	if err := repository.SeedCatalog(context.Background(), store); err != nil {
		log.Fatalf("seed catalog: %v", err)
	}
	cartRepo := repository.NewMemoryCart(store)
	rfqRepo := repository.NewMemoryRFQ(store)
	tx := repository.NewMemoryTx(store)

	converter := pricing.NewConverter(cfg.ExchangeRateINRPerUSD)
	gateway := payment.NewSimulated()

	catalogSvc := service.NewCatalogService(store)
	cartSvc := service.NewCartService(store, cartRepo, store, gateway, tx)
	rfqSvc := service.NewRFQService(store, rfqRepo)

	srv := httpapi.NewServer(catalogSvc, cartSvc, rfqSvc, store, converter)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("HTTP server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
