package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/florinledger/florin/internal/config"
	"github.com/florinledger/florin/internal/service"
	"github.com/florinledger/florin/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/florin/florin.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// currentUser resolves the ledger account all commands operate on.
func currentUser() string {
	if user := viper.GetString("user.id"); user != "" {
		return user
	}
	return "default"
}
