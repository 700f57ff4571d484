// Command migrate applies the embedded schema migrations, for environments
// where the API process must not own schema changes.
package main

import (
	"context"
	"flag"
	"log"

	_ "github.com/lib/pq"

	"github.com/srgjo27/event_ticketing/internal/config"
	"github.com/srgjo27/event_ticketing/internal/platform/database"
)

func main() {
	up := flag.Bool("up", false, "apply all pending migrations")
	status := flag.Bool("status", false, "list pending migrations")
	flag.Parse()

	if !*up && !*status {
		flag.Usage()
		return
	}

	cfg := config.Load()

	db, err := database.NewPostgresDB(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
	})
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	if *status {
		pending, err := database.Pending(ctx, db)
		if err != nil {
			log.Fatalf("Failed to read migration status: %v", err)
		}

		if len(pending) == 0 {
			log.Println("No pending migrations")
			return
		}

		for _, name := range pending {
			log.Printf("pending: %s", name)
		}
		return
	}

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations applied")
}
