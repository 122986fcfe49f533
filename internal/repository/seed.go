package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Seed loads the demo catalog. It is idempotent: existing rows are kept.
func Seed(ctx context.Context, db *DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	steps := []struct {
		name string
		run  func(context.Context, *sql.Tx) error
	}{
		{"products", seedProductRows},
		{"parts", seedPartRows},
		{"compatibility", seedCompatibilityRows},
		{"installation guides", seedInstallationRows},
		{"troubleshooting guides", seedTroubleshootingRows},
	}
	for _, step := range steps {
		if err := step.run(ctx, tx); err != nil {
			return fmt.Errorf("failed to seed %s: %w", step.name, err)
		}
	}

	return tx.Commit()
}

func seedProductRows(ctx context.Context, tx *sql.Tx) error {
	for _, p := range seedProducts {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO products (model_number, name, type, brand, description)
			VALUES (?, ?, ?, ?, ?)
		`, p.modelNumber, p.name, p.productType, p.brand, p.description); err != nil {
			return err
		}
	}
	return nil
}

func seedPartRows(ctx context.Context, tx *sql.Tx) error {
	for _, p := range seedParts {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO parts (part_number, name, description, category, price, in_stock, image_url)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, p.partNumber, p.name, p.description, p.category, p.price, p.inStock, p.imageURL); err != nil {
			return err
		}
	}
	return nil
}

func seedCompatibilityRows(ctx context.Context, tx *sql.Tx) error {
	for _, group := range seedCompatibility {
		for _, partNumber := range group.parts {
			for _, modelNumber := range group.models {
				if _, err := tx.ExecContext(ctx, `
					INSERT OR IGNORE INTO compatibility (part_id, product_id)
					SELECT p.id, pr.id FROM parts p, products pr
					WHERE p.part_number = ? AND pr.model_number = ?
				`, partNumber, modelNumber); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func seedInstallationRows(ctx context.Context, tx *sql.Tx) error {
	for _, g := range seedInstallationGuides {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO installation_guides (part_id, instructions, difficulty, estimated_time, tools_required, video_url)
			SELECT id, ?, ?, ?, ?, ? FROM parts WHERE part_number = ?
		`, g.instructions, g.difficulty, g.estimatedTime, g.toolsRequired, g.videoURL, g.partNumber); err != nil {
			return err
		}
	}
	return nil
}

func seedTroubleshootingRows(ctx context.Context, tx *sql.Tx) error {
	for _, g := range seedTroubleshootingGuides {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO troubleshooting_guides (product_type, issue, solution, related_parts)
			VALUES (?, ?, ?, ?)
		`, g.productType, g.issue, g.solution, g.relatedParts); err != nil {
			return err
		}
	}
	return nil
}
