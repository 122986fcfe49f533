package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/liliang-cn/partchat/internal/domain"
)

const partColumns = `p.id, p.part_number, p.name, p.description, p.category, p.price, p.in_stock, p.image_url`

const productColumns = `pr.id, pr.model_number, pr.name, pr.type, pr.brand, pr.description`

// CatalogRepository answers read queries over parts, products and guides.
// Substring lookups are ordered by row id, i.e. insertion order.
type CatalogRepository struct {
	db *DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPart(row rowScanner) (domain.Part, error) {
	var p domain.Part
	var description, imageURL sql.NullString
	if err := row.Scan(&p.ID, &p.PartNumber, &p.Name, &description, &p.Category,
		&p.Price, &p.InStock, &imageURL); err != nil {
		return p, err
	}
	p.Description = description.String
	p.ImageURL = imageURL.String
	return p, nil
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	var description sql.NullString
	if err := row.Scan(&p.ID, &p.ModelNumber, &p.Name, &p.Type, &p.Brand, &description); err != nil {
		return p, err
	}
	p.Description = description.String
	return p, nil
}

func (r *CatalogRepository) queryParts(ctx context.Context, query string, args ...any) ([]domain.Part, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []domain.Part
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

func (r *CatalogRepository) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *CatalogRepository) queryCompatibility(ctx context.Context, where string, arg any) ([]domain.Compatibility, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.part_number, pr.model_number, pr.name, pr.brand, pr.type
		FROM compatibility c
		JOIN parts p ON c.part_id = p.id
		JOIN products pr ON c.product_id = pr.id
		WHERE `+where+`
		ORDER BY pr.id
	`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Compatibility
	for rows.Next() {
		var c domain.Compatibility
		if err := rows.Scan(&c.PartNumber, &c.ModelNumber, &c.ProductName, &c.Brand, &c.Type); err != nil {
			return nil, err
		}
		entries = append(entries, c)
	}
	return entries, rows.Err()
}

func (r *CatalogRepository) queryInstallationGuide(ctx context.Context, where string, arg any) (*domain.InstallationGuide, error) {
	g := &domain.InstallationGuide{}
	var difficulty, estimated, tools, video sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT ig.id, ig.part_id, ig.instructions, ig.difficulty, ig.estimated_time, ig.tools_required, ig.video_url
		FROM installation_guides ig
		JOIN parts p ON ig.part_id = p.id
		WHERE `+where, arg).Scan(&g.ID, &g.PartID, &g.Instructions, &difficulty, &estimated, &tools, &video)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	g.Difficulty = difficulty.String
	g.EstimatedTime = estimated.String
	g.ToolsRequired = tools.String
	g.VideoURL = video.String
	return g, nil
}

func (r *CatalogRepository) queryTroubleshooting(ctx context.Context, query string, args ...any) ([]domain.TroubleshootingGuide, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guides []domain.TroubleshootingGuide
	for rows.Next() {
		var g domain.TroubleshootingGuide
		var related sql.NullString
		if err := rows.Scan(&g.ID, &g.ProductType, &g.Issue, &g.Solution, &related); err != nil {
			return nil, err
		}
		g.RelatedParts = related.String
		guides = append(guides, g)
	}
	return guides, rows.Err()
}

// FindPartsByNumber returns parts whose part number contains q
func (r *CatalogRepository) FindPartsByNumber(ctx context.Context, q string) ([]domain.Part, error) {
	return r.queryParts(ctx, `
		SELECT `+partColumns+` FROM parts p
		WHERE p.part_number LIKE ? ESCAPE '\'
		ORDER BY p.id
	`, likePattern(q))
}

// FindProductsByModel returns products whose model number contains q
func (r *CatalogRepository) FindProductsByModel(ctx context.Context, q string) ([]domain.Product, error) {
	return r.queryProducts(ctx, `
		SELECT `+productColumns+` FROM products pr
		WHERE pr.model_number LIKE ? ESCAPE '\'
		ORDER BY pr.id
	`, likePattern(q))
}

// CompatibilityForPart returns the models a part fits
func (r *CatalogRepository) CompatibilityForPart(ctx context.Context, partID int64) ([]domain.Compatibility, error) {
	return r.queryCompatibility(ctx, "c.part_id = ?", partID)
}

// CompatiblePartsForProduct returns the parts that fit a product
func (r *CatalogRepository) CompatiblePartsForProduct(ctx context.Context, productID int64) ([]domain.Part, error) {
	return r.queryParts(ctx, `
		SELECT `+partColumns+` FROM parts p
		JOIN compatibility c ON p.id = c.part_id
		WHERE c.product_id = ?
		ORDER BY p.id
	`, productID)
}

// InstallationGuideForPart returns the guide owned by a part, or nil
func (r *CatalogRepository) InstallationGuideForPart(ctx context.Context, partID int64) (*domain.InstallationGuide, error) {
	return r.queryInstallationGuide(ctx, "ig.part_id = ?", partID)
}

// FindTroubleshooting returns guides for a product type whose issue or
// solution text contains issue
func (r *CatalogRepository) FindTroubleshooting(ctx context.Context, productType, issue string) ([]domain.TroubleshootingGuide, error) {
	pattern := likePattern(issue)
	return r.queryTroubleshooting(ctx, `
		SELECT id, product_type, issue, solution, related_parts
		FROM troubleshooting_guides
		WHERE product_type LIKE ? ESCAPE '\'
		  AND (issue LIKE ? ESCAPE '\' OR solution LIKE ? ESCAPE '\')
		ORDER BY id
	`, likePattern(productType), pattern, pattern)
}

// PartsForProductType returns distinct parts fitting any product of the given type
func (r *CatalogRepository) PartsForProductType(ctx context.Context, productType string, limit int) ([]domain.Part, error) {
	return r.queryParts(ctx, `
		SELECT DISTINCT `+partColumns+` FROM parts p
		JOIN compatibility c ON p.id = c.part_id
		JOIN products pr ON c.product_id = pr.id
		WHERE pr.type LIKE ? ESCAPE '\'
		ORDER BY p.id
		LIMIT ?
	`, likePattern(productType), limit)
}

// ListParts lists parts ordered by name
func (r *CatalogRepository) ListParts(ctx context.Context, filter domain.PartFilter) ([]domain.Part, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + partColumns + ` FROM parts p WHERE 1=1`)
	var args []any

	if filter.Category != "" {
		sb.WriteString(` AND p.category = ?`)
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		sb.WriteString(` AND (p.name LIKE ? ESCAPE '\' OR p.part_number LIKE ? ESCAPE '\' OR p.description LIKE ? ESCAPE '\')`)
		pattern := likePattern(filter.Search)
		args = append(args, pattern, pattern, pattern)
	}
	sb.WriteString(` ORDER BY p.name`)

	return r.queryParts(ctx, sb.String(), args...)
}

// GetPart retrieves a part by its exact part number
func (r *CatalogRepository) GetPart(ctx context.Context, partNumber string) (*domain.Part, error) {
	p, err := scanPart(r.db.QueryRowContext(ctx,
		`SELECT `+partColumns+` FROM parts p WHERE p.part_number = ?`, partNumber))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CompatibilityForPartNumber returns the models a part fits, by exact part number
func (r *CatalogRepository) CompatibilityForPartNumber(ctx context.Context, partNumber string) ([]domain.Compatibility, error) {
	return r.queryCompatibility(ctx, "p.part_number = ?", partNumber)
}

// InstallationGuideForPartNumber returns the guide for an exact part number, or nil
func (r *CatalogRepository) InstallationGuideForPartNumber(ctx context.Context, partNumber string) (*domain.InstallationGuide, error) {
	return r.queryInstallationGuide(ctx, "p.part_number = ?", partNumber)
}

// IsCompatible reports whether a part fits a model, by exact keys
func (r *CatalogRepository) IsCompatible(ctx context.Context, partNumber, modelNumber string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM compatibility c
		JOIN parts p ON c.part_id = p.id
		JOIN products pr ON c.product_id = pr.id
		WHERE p.part_number = ? AND pr.model_number = ?
	`, partNumber, modelNumber).Scan(&count)
	return count > 0, err
}

// ListProducts lists products ordered by brand and name
func (r *CatalogRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + productColumns + ` FROM products pr WHERE 1=1`)
	var args []any

	if filter.Type != "" {
		sb.WriteString(` AND pr.type = ? COLLATE NOCASE`)
		args = append(args, filter.Type)
	}
	if filter.Brand != "" {
		sb.WriteString(` AND pr.brand = ? COLLATE NOCASE`)
		args = append(args, filter.Brand)
	}
	sb.WriteString(` ORDER BY pr.brand, pr.name`)

	return r.queryProducts(ctx, sb.String(), args...)
}

// GetProduct retrieves a product by its exact model number
func (r *CatalogRepository) GetProduct(ctx context.Context, modelNumber string) (*domain.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products pr WHERE pr.model_number = ?`, modelNumber))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PartsForModel returns parts fitting a model, ordered by category and name
func (r *CatalogRepository) PartsForModel(ctx context.Context, modelNumber string) ([]domain.Part, error) {
	return r.queryParts(ctx, `
		SELECT `+partColumns+` FROM parts p
		JOIN compatibility c ON p.id = c.part_id
		JOIN products pr ON c.product_id = pr.id
		WHERE pr.model_number = ?
		ORDER BY p.category, p.name
	`, modelNumber)
}

// TroubleshootingForType lists guides for a product type, optionally narrowed
// to those whose issue or solution mentions issue
func (r *CatalogRepository) TroubleshootingForType(ctx context.Context, productType, issue string) ([]domain.TroubleshootingGuide, error) {
	query := `SELECT id, product_type, issue, solution, related_parts
		FROM troubleshooting_guides WHERE product_type = ? COLLATE NOCASE`
	args := []any{productType}

	if issue != "" {
		query += ` AND (issue LIKE ? ESCAPE '\' OR solution LIKE ? ESCAPE '\')`
		pattern := likePattern(issue)
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY id`

	return r.queryTroubleshooting(ctx, query, args...)
}

// Counts returns the number of parts and products in the catalog
func (r *CatalogRepository) Counts(ctx context.Context) (parts, products int, err error) {
	err = r.db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM parts), (SELECT COUNT(*) FROM products)
	`).Scan(&parts, &products)
	return parts, products, err
}
