package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/petruschka/site-api/internal/config"
	"github.com/petruschka/site-api/internal/loaders"
	"github.com/petruschka/site-api/internal/queries"
	"github.com/petruschka/site-api/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Imports a mongoexport dump of staticDb.press (an extended JSON array) into
// the collection behind press_view.
func main() {
	jsonFile := flag.String("file", "staticDb.press.json", "Path to the extended JSON export")
	batchSize := flag.Int("batch", 25, "Records per batch")
	dryRun := flag.Bool("dry-run", false, "Parse and validate without writing")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := config.LoadEnvFile(); err != nil {
		logger.Fatal("Failed to load .env", zap.Error(err))
	}

	logger.Info("Loading JSON file", zap.String("file", *jsonFile))
	records, err := loadPressFile(*jsonFile)
	if err != nil {
		logger.Fatal("Failed to load JSON file", zap.Error(err))
	}
	logger.Info("Loaded records from JSON", zap.Int("count", len(records)))

	if *dryRun {
		for _, r := range records {
			logger.Info("Parsed press entry",
				zap.String("id", types.IDString(r.ID)),
				zap.String("nr", r.Nr),
				zap.String("source", r.Source))
		}
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := loaders.NewMongoClient(ctx, cfg.MongoURI, cfg.QueryTimeout)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer db.Close(context.Background())

	store := queries.NewStaticQueries(db, cfg.StaticDB, cfg.SponsorsDB)

	if *batchSize <= 0 {
		*batchSize = 25
	}
	totalProcessed, totalFailed := 0, 0
	for i := 0; i < len(records); i += *batchSize {
		end := i + *batchSize
		if end > len(records) {
			end = len(records)
		}
		logger.Info("Processing batch", zap.Int("batchStart", i), zap.Int("batchEnd", end))

		for _, record := range records[i:end] {
			if err := store.UpsertPress(ctx, record); err != nil {
				logger.Error("Failed to import press entry",
					zap.String("id", types.IDString(record.ID)),
					zap.Error(err))
				totalFailed++
				continue
			}
			totalProcessed++
		}
	}

	logger.Info("Completed press import",
		zap.Int("totalRecords", len(records)),
		zap.Int("successful", totalProcessed),
		zap.Int("failed", totalFailed))
}

// loadPressFile reads an extended JSON array. Each element is decoded with the
// BSON codec so {"$oid"} and {"$date"} become native BSON values.
func loadPressFile(filePath string) ([]types.PressDoc, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, fmt.Errorf("failed to decode JSON array: %w", err)
	}

	records := make([]types.PressDoc, 0, len(elements))
	for i, el := range elements {
		var doc types.PressDoc
		if err := bson.UnmarshalExtJSON(el, false, &doc); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if doc.ID == nil {
			return nil, fmt.Errorf("record %d has no _id", i)
		}
		records = append(records, doc)
	}
	return records, nil
}
