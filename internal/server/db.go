package server

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// ConnectDB opens the PostgreSQL connection, waiting for the database to
// come up when it starts alongside the server.
func ConnectDB(databaseURL string) (*sql.DB, error) {
	databaseURL = normalizeDatabaseURL(databaseURL)

	config, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	maxRetries := 30
	retryDelay := 2 * time.Second

	var db *sql.DB
	for i := 0; i < maxRetries; i++ {
		db = stdlib.OpenDB(*config)
		if err := db.Ping(); err != nil {
			db.Close()
			if i < maxRetries-1 {
				log.Printf("Database not ready, retrying in %v... (attempt %d/%d)", retryDelay, i+1, maxRetries)
				time.Sleep(retryDelay)
				continue
			}
			return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
		}
		log.Println("Database connection established")
		break
	}
	return db, nil
}

// normalizeDatabaseURL rewrites postgresql:// to postgres:// and ensures an
// sslmode parameter, for compatibility with managed-hosting URLs.
func normalizeDatabaseURL(databaseURL string) string {
	if strings.HasPrefix(databaseURL, "postgresql:") {
		databaseURL = "postgres" + databaseURL[len("postgresql"):]
	}
	if !strings.Contains(databaseURL, "sslmode=") {
		separator := "?"
		if strings.Contains(databaseURL, "?") {
			separator = "&"
		}
		databaseURL = databaseURL + separator + "sslmode=disable"
	}
	return databaseURL
}

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(50),
		role VARCHAR(20) NOT NULL DEFAULT 'standard',
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS incomes (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		date DATE NOT NULL,
		mineral_type VARCHAR(20) NOT NULL,
		quantity DECIMAL(14,2) NOT NULL,
		unit VARCHAR(20) NOT NULL,
		price_per_unit DECIMAL(14,2) NOT NULL,
		total_amount DECIMAL(14,2) NOT NULL,
		customer_name VARCHAR(255) NOT NULL,
		customer_contact VARCHAR(255),
		payment_status VARCHAR(10) NOT NULL,
		amount_paid DECIMAL(14,2) NOT NULL,
		amount_due DECIMAL(14,2) NOT NULL,
		notes TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS expenses (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		date DATE NOT NULL,
		category VARCHAR(20) NOT NULL,
		description VARCHAR(255) NOT NULL,
		amount DECIMAL(14,2) NOT NULL,
		supplier_name VARCHAR(255) NOT NULL,
		supplier_contact VARCHAR(255),
		payment_status VARCHAR(10) NOT NULL,
		amount_paid DECIMAL(14,2) NOT NULL,
		amount_due DECIMAL(14,2) NOT NULL,
		notes TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS inventory_items (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		name VARCHAR(255) NOT NULL,
		type VARCHAR(10) NOT NULL,
		quantity DECIMAL(14,2) NOT NULL,
		unit VARCHAR(20) NOT NULL,
		min_stock_level DECIMAL(14,2) NOT NULL,
		current_value DECIMAL(14,2) NOT NULL,
		last_updated TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_incomes_user_date ON incomes(user_id, date);
	CREATE INDEX IF NOT EXISTS idx_expenses_user_date ON expenses(user_id, date);
	CREATE INDEX IF NOT EXISTS idx_inventory_user ON inventory_items(user_id);
`

// Migrate creates the schema. Safe to run repeatedly.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
