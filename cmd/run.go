package cmd

import (
	"context"
	"fmt"
	"time"

	"guildledger/application"
	"guildledger/config"
	"guildledger/database"
	"guildledger/domain/interfaces"
	"guildledger/domain/services"
	"guildledger/infrastructure"
	"guildledger/repository"

	log "github.com/sirupsen/logrus"
)

// Services bundles the wired domain services of the engine.
type Services struct {
	Guilds     *services.GuildService
	Characters *services.CharacterService
	Missions   *services.MissionService
	Shop       *services.ShopService
	Ledger     *services.LedgerService
	Activity   *services.ActivityService
}

// NewServices wires all domain services over one unit-of-work factory
func NewServices(uowFactory application.UnitOfWorkFactory) *Services {
	ledger := services.NewLedgerService(uowFactory)
	return &Services{
		Guilds:     services.NewGuildService(uowFactory),
		Characters: services.NewCharacterService(uowFactory),
		Missions:   services.NewMissionService(uowFactory),
		Shop:       services.NewShopService(uowFactory, ledger),
		Ledger:     ledger,
		Activity:   services.NewActivityService(uowFactory),
	}
}

// Run initializes the engine and blocks until the context is cancelled.
func Run(ctx context.Context) error {
	cfg := config.Get()

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	log.Info("Starting guild ledger engine...")

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established")

	natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := natsClient.Connect(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}

	eventPublisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper())
	if err := eventPublisher.EnsureDomainEventStream(); err != nil {
		natsClient.Close()
		db.Close()
		return fmt.Errorf("failed to ensure event stream: %w", err)
	}

	uowFactory := repository.NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		return infrastructure.NewNATSTransactionalPublisher(eventPublisher)
	})
	engine := NewServices(uowFactory)

	log.WithFields(log.Fields{
		"environment": cfg.Environment,
	}).Info("Engine is running")

	if err := serve(ctx, engine); err != nil {
		log.WithError(err).Error("Engine stopped with error")
	}

	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := natsClient.Close(); err != nil {
		log.WithError(err).Error("Error closing NATS connection")
	}
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}

// serve holds the engine alive until shutdown. Embedders that need a
// transport wrap NewServices directly instead of going through Run.
func serve(ctx context.Context, engine *Services) error {
	<-ctx.Done()
	return nil
}
