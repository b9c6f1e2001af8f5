package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const maintenanceDatabase = "postgres"

// EnsureDatabaseExists connects to the maintenance database of the server
// named in dsn and creates the target database when it is missing.
func EnsureDatabaseExists(ctx context.Context, dsn string, log *logrus.Logger) error {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("failed to parse connection string: %w", err)
	}

	database := config.ConnConfig.Database
	if database == "" || database == maintenanceDatabase {
		return nil
	}
	config.ConnConfig.Database = maintenanceDatabase
	config.MaxConns = 1

	log.Infof("Checking if database '%s' exists...", database)

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)"
	if err := pool.QueryRow(ctx, query, database).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}

	if exists {
		log.Infof("Database '%s' already exists", database)
		return nil
	}

	log.Infof("Database '%s' does not exist. Creating it...", database)

	// CREATE DATABASE cannot run inside a transaction
	createQuery := fmt.Sprintf("CREATE DATABASE %s", pgx.Identifier{database}.Sanitize())
	if _, err := pool.Exec(ctx, createQuery); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	log.Infof("Database '%s' created successfully", database)
	return nil
}
