package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"gitlab.connectwisedev.com/product-management/models"
	"gitlab.connectwisedev.com/product-management/pkg/config"
)

// PostgresGateway stores products in a PostgreSQL table. It exists as an
// alternative to DynamoDB for deployments that already run Postgres;
// selected via STORAGE_BACKEND=postgres.
type PostgresGateway struct {
	db *sql.DB
}

// NewPostgresGateway opens a connection pool and verifies connectivity.
func NewPostgresGateway(cfg config.Config) (*PostgresGateway, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL!")
	return &PostgresGateway{db: db}, nil
}

// Close closes the database connection
func (g *PostgresGateway) Close() {
	if g.db != nil {
		g.db.Close()
		log.Println("PostgreSQL connection closed.")
	}
}

func (g *PostgresGateway) Put(ctx context.Context, p models.Product) error {
	_, err := g.db.ExecContext(ctx,
		`INSERT INTO products (id, name, description, date) VALUES ($1, $2, $3, $4)`,
		p.ID, p.Name, p.Description, p.Date)
	if err != nil {
		return fmt.Errorf("failed to insert product %s: %w", p.ID, err)
	}
	return nil
}

func (g *PostgresGateway) Get(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	row := g.db.QueryRowContext(ctx,
		`SELECT id, name, description, date FROM products WHERE id = $1`, id)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, fmt.Errorf("failed to query product %s: %w", id, err)
	}
	return p, nil
}

func (g *PostgresGateway) Scan(ctx context.Context) ([]models.Product, error) {
	rows, err := g.db.QueryContext(ctx,
		`SELECT id, name, description, date FROM products ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Date); err != nil {
			log.Printf("Error scanning product row: %v", err)
			continue
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}
	return products, nil
}

func (g *PostgresGateway) Update(ctx context.Context, p models.Product) error {
	res, err := g.db.ExecContext(ctx,
		`UPDATE products SET name = $2, description = $3, date = $4 WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Date)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", p.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected for product %s: %w", p.ID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *PostgresGateway) Delete(ctx context.Context, id string) error {
	if _, err := g.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}
