package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"

	"hospitality_proforma/pkg/core/logger"
)

// DefaultCacheDir holds file-backed runs when no database is configured
var DefaultCacheDir = filepath.Join(".cache", "proforma")

// Connect opens a connection pool for the given PostgreSQL URL
func Connect(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to open database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return pool, nil
}

// Open picks the backend from the environment: PostgreSQL when DATABASE_URL
// is set, otherwise JSON files under PROFORMA_CACHE_DIR.
func Open(ctx context.Context) (Repository, error) {
	log := logger.Named("store")

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pool, err := Connect(ctx, dbURL)
		if err != nil {
			return nil, err
		}
		repo := NewPGRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		log.Infow("[STORE] using PostgreSQL")
		return repo, nil
	}

	dir := os.Getenv("PROFORMA_CACHE_DIR")
	if dir == "" {
		dir = DefaultCacheDir
	}
	repo, err := NewFileRepository(dir)
	if err != nil {
		return nil, err
	}
	log.Infow("[STORE] using file cache", "dir", dir)
	return repo, nil
}
