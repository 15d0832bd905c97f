package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"guildledger/cmd"
	"guildledger/config"
	"guildledger/database"
	"guildledger/domain/interfaces"
	"guildledger/infrastructure"
	"guildledger/repository"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			if err := handleMigrationCommand(); err != nil {
				log.Fatal("Migration error: ", err)
			}
			return
		case "create-guild":
			if err := handleCreateGuild(); err != nil {
				log.Fatal("Guild creation error: ", err)
			}
			return
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Application error: ", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: guildledger migrate [up|down|status] [args...]")
	}

	switch command := os.Args[2]; command {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}

// handleCreateGuild is the admin path for bootstrapping a guild without a
// running engine. Events are dropped; there is nothing listening yet.
func handleCreateGuild() error {
	if len(os.Args) < 4 {
		return fmt.Errorf("usage: guildledger create-guild <name> <leader-principal-id>")
	}
	name := os.Args[2]
	leaderID := os.Args[3]

	ctx := context.Background()
	cfg := config.Get()

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	uowFactory := repository.NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		return infrastructure.NewNoopEventPublisher()
	})
	engine := cmd.NewServices(uowFactory)

	guild, err := engine.Guilds.CreateGuild(ctx, name, leaderID)
	if err != nil {
		return err
	}

	log.Printf("Created guild %d (%s) with invite code %s", guild.ID, guild.Name, guild.Code)
	return nil
}
