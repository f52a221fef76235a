// internal/db/products_db.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"inventory-dashboard/internal/models"
)

// GetAllProducts returns every product in insertion order. The dashboard only
// reads them; product management owns writes.
func GetAllProducts(ctx context.Context) ([]models.Product, error) {
	if DB == nil {
		return nil, errNotInitialized
	}
	query := `SELECT id, name, description, price, quantity, created_at FROM products ORDER BY id ASC`
	rows, err := DB.QueryContext(ctx, query)
	if err != nil {
		slog.Error("Failed to query products", "error", err)
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// productRows is the part of *sql.Rows that scanProducts reads.
type productRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanProducts(rows productRows) ([]models.Product, error) {
	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		var description, price sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &description, &price, &p.Quantity, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if description.Valid {
			p.Description = description.String
		}
		if price.Valid {
			p.Price = price.String
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// InsertProduct writes one product row. Only test fixtures call it; the
// dashboard never writes products.
func InsertProduct(ctx context.Context, p *models.Product) (int64, error) {
	if DB == nil {
		return 0, errNotInitialized
	}
	res, err := DB.ExecContext(ctx,
		`INSERT INTO products (name, description, price, quantity, created_at) VALUES (?, ?, ?, ?, NOW())`,
		p.Name, p.Description, p.Price, p.Quantity)
	if err != nil {
		return 0, fmt.Errorf("insert product %q: %w", p.Name, err)
	}
	return res.LastInsertId()
}
