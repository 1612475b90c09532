// The seedgifts command is a one-shot loader for the gifts collection.
// It reads a JSON file holding a "docs" array of gift documents, wipes
// the collection and inserts the documents, then exits.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/giftlink/giftlink-backend/internal/config"
	"github.com/giftlink/giftlink-backend/internal/db/mongodb"
	"github.com/giftlink/giftlink-backend/internal/logger"
	"github.com/giftlink/giftlink-backend/internal/models"
)

type seedFile struct {
	Docs []models.Gift `json:"docs"`
}

func run() error {
	fileName := flag.String("file", "gifts.json", "JSON file with the gift documents to load")

	cfg, err := config.New()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		return err
	}

	if cfg.DatabaseDSN == "" {
		return errors.New("seeding requires a DATABASE_DSN")
	}

	data, err := os.ReadFile(*fileName)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *fileName, err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parsing %s: %w", *fileName, err)
	}

	if seed.Docs == nil {
		return fmt.Errorf("%s holds no docs array", *fileName)
	}

	ctx := context.Background()

	db, err := mongodb.New(ctx, cfg.DatabaseDSN, cfg.DatabaseName, cfg.StoreTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Log.Errorln("Error closing the document store:", err)
		}
	}()

	if err := db.ReplaceGifts(ctx, seed.Docs); err != nil {
		return err
	}

	logger.Log.Infoln("Seed completed", "gifts", len(seed.Docs))

	return nil
}

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}
