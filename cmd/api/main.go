package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"stablecart-api/internal/client"
	"stablecart-api/internal/config"
	"stablecart-api/internal/logger"
	"stablecart-api/internal/repository"
	"stablecart-api/internal/server"
	"stablecart-api/internal/service"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)

	db := client.InitDBClient(cfg.DatabaseURL, cfg.SQLitePath)

	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	rewardsRepo := repository.NewRewardsRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	userRepo := repository.NewUserRepository(db)

	if cfg.SeedData {
		ctx := context.Background()
		if err := productRepo.Seed(ctx); err != nil {
			log.Fatal().Err(err).Msg("seed products")
		}
		if err := rewardsRepo.SeedDrops(ctx); err != nil {
			log.Fatal().Err(err).Msg("seed drops")
		}
	}

	userService := service.NewUserService(userRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	rewardsService := service.NewRewardsService(rewardsRepo, log)
	walletService := service.NewWalletService(walletRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, walletRepo, cartService, rewardsService, log)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(
		cfg.Auth.JWTSecret,
		log,
		userService,
		productService,
		cartService,
		orderService,
		rewardsService,
		walletService,
	)

	log.Info().Str("addr", serverAddr).Msg("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info().Msg("signal received, starting graceful shutdown")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("HTTP server shutdown error")
	}
}
