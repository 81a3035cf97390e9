package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hakarun/kifuku/internal/config"
	"github.com/hakarun/kifuku/internal/rules"
	"github.com/hakarun/kifuku/internal/segment"
	"github.com/hakarun/kifuku/internal/storage"

	"github.com/spf13/viper"
)

// initStorage initializes the dictionary store with proper path expansion.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/kifuku/kifuku.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initSuffixEngine loads the embedded rule table. A broken table is a
// build defect, so any error here is fatal for the command.
func initSuffixEngine() (*rules.SuffixEngine, error) {
	table, err := rules.LoadSuffixTable()
	if err != nil {
		return nil, fmt.Errorf("failed to load suffix rule table: %w", err)
	}
	return rules.NewSuffixEngine(table), nil
}

// initPipeline wires the full analysis pipeline. Lexicalized overrides are
// loaded from storage when a database exists; their absence is not an
// error.
func initPipeline(ctx context.Context, store *storage.SQLiteStorage) (*segment.Pipeline, error) {
	engine, err := initSuffixEngine()
	if err != nil {
		return nil, err
	}

	mecab := config.LoadMeCabConfig()
	segmenter := segment.NewMeCabSegmenter(mecab.DicDir)
	segmenter.Binary = mecab.Binary

	pipeline := segment.NewPipeline(segmenter, engine, nil)
	if store != nil {
		loaded, err := store.GetOverrides(ctx)
		if err != nil {
			slog.Warn("Failed to load compound overrides", "error", err)
		} else if len(loaded) > 0 {
			pipeline = segment.NewPipeline(segmenter, engine, loaded)
		}
	}

	return pipeline, nil
}
