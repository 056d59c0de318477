package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go-caixa-pos/internal/config"
	"go-caixa-pos/internal/infra"
	"go-caixa-pos/internal/model"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// seed-catalog writes the default products and categories into the
// configured store. Existing catalogs are left alone unless -force is set.
func main() {
	force := flag.Bool("force", false, "overwrite existing products and categories")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, closeStore, err := infra.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer closeStore()

	if err := seed(ctx, store, *force); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().
		Str("driver", cfg.StoreDriver).
		Int("products", len(model.DefaultProducts)).
		Int("categories", len(model.DefaultCategories)).
		Bool("force", *force).
		Msg("catalog seeded")
}
