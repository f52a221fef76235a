// internal/db/featured_db.go
package db

import (
	"context"
	"fmt"
	"log/slog"

	"inventory-dashboard/internal/carousel"
)

// LoadCarouselItems reads the featured items in display order.
func LoadCarouselItems(ctx context.Context) ([]carousel.Item, error) {
	if DB == nil {
		return nil, errNotInitialized
	}
	rows, err := DB.QueryContext(ctx, `SELECT image_ref, alt_text, title FROM featured_items ORDER BY sort_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query featured items: %w", err)
	}
	defer rows.Close()

	var items []carousel.Item
	for rows.Next() {
		var it carousel.Item
		if err := rows.Scan(&it.ImageRef, &it.AltText, &it.Title); err != nil {
			return nil, fmt.Errorf("scan featured item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate featured items: %w", err)
	}
	return items, nil
}

// SeedFeaturedItems fills an empty featured_items table with items.
// A table that already has rows is left alone.
func SeedFeaturedItems(ctx context.Context, items []carousel.Item) error {
	if DB == nil {
		return errNotInitialized
	}
	var count int
	if err := DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM featured_items`).Scan(&count); err != nil {
		return fmt.Errorf("count featured items: %w", err)
	}
	if count > 0 {
		slog.Debug("Featured items already present, skipping seed", "count", count)
		return nil
	}

	tx, err := DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin featured items seed: %w", err)
	}
	defer tx.Rollback()

	for i, it := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO featured_items (image_ref, alt_text, title, sort_order) VALUES (?, ?, ?, ?)`,
			it.ImageRef, it.AltText, it.Title, i)
		if err != nil {
			return fmt.Errorf("insert featured item %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit featured items seed: %w", err)
	}
	slog.Info("Featured items seeded", "count", len(items))
	return nil
}
