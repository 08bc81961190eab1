// Command seedusers upserts sample users into the configured store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"user-admin-dashboard/config"
	"user-admin-dashboard/internal/infrastructure/db"
)

func main() {
	file := flag.String("file", "", "JSON file with an array of users (defaults to the built-in set)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	_ = godotenv.Load(".env")
	cfg := config.Load()

	users := builtinUsers(time.Now())
	if *file != "" {
		if users, err = loadFile(*file, time.Now()); err != nil {
			logger.Fatal("failed to read seed file", zap.String("file", *file), zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := db.Open(ctx, logger, cfg)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer store.Close(context.Background())

	res := seed(ctx, store.Users, users, os.Stdout)
	fmt.Fprintf(os.Stdout, "\nseeded %d users, %d failed\n", res.ok, res.failed)
	if res.failed > 0 {
		os.Exit(1)
	}
}
