package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/swenautos/escrow-service/internal/app/background"
	"github.com/swenautos/escrow-service/internal/config"
	delivery "github.com/swenautos/escrow-service/internal/delivery/http"
	"github.com/swenautos/escrow-service/internal/infrastructure/kafka"
	"github.com/swenautos/escrow-service/internal/infrastructure/metrics"
	"github.com/swenautos/escrow-service/internal/infrastructure/migrate"
	"github.com/swenautos/escrow-service/internal/infrastructure/postgres"
	"github.com/swenautos/escrow-service/internal/usecase/dispute"
	"github.com/swenautos/escrow-service/internal/usecase/listing"
	"github.com/swenautos/escrow-service/internal/usecase/order"
	"github.com/swenautos/escrow-service/internal/usecase/rating"
	"github.com/swenautos/escrow-service/internal/usecase/vault"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.Migrations.Path != "" {
		if err := migrate.RunMigrations(db, cfg.Migrations.Path); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := kafka.NewKafkaPublisher(brokers)
	defer pub.Close()

	escrowMetrics := metrics.NewEscrowMetrics()
	store := postgres.NewStore(db)

	// Usecases
	listingUc := listing.NewDefaultListingUsecase(store, pub, escrowMetrics, cfg.Escrow.MaxPageLimit)
	orderUc, err := order.NewDefaultOrderUsecase(store, pub, escrowMetrics, cfg.Escrow.AutoReleaseWindow, cfg.Escrow.MaxPageLimit)
	if err != nil {
		log.Fatalf("failed to init order usecase: %v", err)
	}
	disputeUc := dispute.NewDefaultDisputeUsecase(store, pub, escrowMetrics, cfg.Escrow.OwnerAddress)
	ratingUc := rating.NewDefaultRatingUsecase(store, pub, escrowMetrics, cfg.Escrow.OwnerAddress, cfg.Escrow.MaxPageLimit)
	vaultUc := vault.NewDefaultVaultUsecase(store, cfg.Escrow.OwnerAddress)

	// Seed the persisted arbitrator on first boot
	if err := disputeUc.EnsureArbitrator(cfg.Escrow.ArbitratorAddress); err != nil {
		log.Fatalf("failed to seed arbitrator: %v", err)
	}

	router := delivery.NewRouter(delivery.Handlers{
		Listings: delivery.NewListingHandler(listingUc),
		Orders:   delivery.NewOrderHandler(orderUc),
		Disputes: delivery.NewDisputeHandler(disputeUc),
		Ratings:  delivery.NewRatingHandler(ratingUc),
		Vault:    delivery.NewVaultHandler(vaultUc),
		Admin:    delivery.NewAdminHandler(disputeUc),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Deadline keeper
	keeper := background.NewAutoReleaseKeeper(orderUc, 30*time.Second)
	go keeper.Start(ctx)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("Escrow service listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err.Error())
	}
}
