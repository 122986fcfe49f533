package service

import (
	"context"
	"time"

	"github.com/liliang-cn/partchat/internal/domain"
	"go.uber.org/zap"
)

// ProductSearchLimit caps the parts returned for a product-type search.
const ProductSearchLimit = 10

// maxRelatedParts caps how many troubleshooting related parts are resolved.
const maxRelatedParts = 5

// CatalogStore is the read-only catalog view the assembler needs.
type CatalogStore interface {
	FindPartsByNumber(ctx context.Context, q string) ([]domain.Part, error)
	FindProductsByModel(ctx context.Context, q string) ([]domain.Product, error)
	CompatibilityForPart(ctx context.Context, partID int64) ([]domain.Compatibility, error)
	CompatiblePartsForProduct(ctx context.Context, productID int64) ([]domain.Part, error)
	InstallationGuideForPart(ctx context.Context, partID int64) (*domain.InstallationGuide, error)
	FindTroubleshooting(ctx context.Context, productType, issue string) ([]domain.TroubleshootingGuide, error)
	PartsForProductType(ctx context.Context, productType string, limit int) ([]domain.Part, error)
	GetPart(ctx context.Context, partNumber string) (*domain.Part, error)
}

// ContextAssembler gathers the catalog records that ground one reply.
type ContextAssembler struct {
	store   CatalogStore
	timeout time.Duration
	logger  *zap.Logger
}

// NewContextAssembler creates an assembler. Each lookup is bounded by
// timeout; zero means no extra deadline.
func NewContextAssembler(store CatalogStore, timeout time.Duration, logger *zap.Logger) *ContextAssembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContextAssembler{store: store, timeout: timeout, logger: logger}
}

// Assemble builds the context for an intent. Failed lookups are logged and
// leave their field empty; nothing is invented.
func (a *ContextAssembler) Assemble(ctx context.Context, in domain.Intent) *domain.Context {
	out := &domain.Context{}
	if in.Type == domain.IntentOutOfScope {
		return out
	}

	if pn := in.Entities.PartNumber; pn != "" {
		a.lookup(ctx, "parts", func(ctx context.Context) (err error) {
			out.Parts, err = a.store.FindPartsByNumber(ctx, pn)
			return err
		})
		if len(out.Parts) > 0 {
			first := out.Parts[0]
			a.lookup(ctx, "compatibility", func(ctx context.Context) (err error) {
				out.Compatibility, err = a.store.CompatibilityForPart(ctx, first.ID)
				return err
			})
			a.lookup(ctx, "installation_guide", func(ctx context.Context) (err error) {
				out.InstallationGuide, err = a.store.InstallationGuideForPart(ctx, first.ID)
				return err
			})
		}
	}

	if mn := in.Entities.ModelNumber; mn != "" {
		a.lookup(ctx, "products", func(ctx context.Context) (err error) {
			out.Products, err = a.store.FindProductsByModel(ctx, mn)
			return err
		})
		if len(out.Products) > 0 {
			first := out.Products[0]
			a.lookup(ctx, "compatible_parts", func(ctx context.Context) (err error) {
				out.CompatibleParts, err = a.store.CompatiblePartsForProduct(ctx, first.ID)
				return err
			})
		}
	}

	if in.Type == domain.IntentTroubleshooting && in.Entities.Issue != "" {
		productType := in.Entities.ProductType
		if productType == "" {
			productType = "refrigerator"
		}
		a.lookup(ctx, "troubleshooting", func(ctx context.Context) (err error) {
			out.Troubleshooting, err = a.store.FindTroubleshooting(ctx, productType, in.Entities.Issue)
			return err
		})
		if len(out.Troubleshooting) > 0 && len(out.Parts) == 0 {
			out.Parts = a.relatedParts(ctx, out.Troubleshooting[0].RelatedPartNumbers())
		}
	}

	if in.Type == domain.IntentProductSearch && in.Entities.ProductType != "" {
		a.lookup(ctx, "product_search", func(ctx context.Context) (err error) {
			out.Parts, err = a.store.PartsForProductType(ctx, in.Entities.ProductType, ProductSearchLimit)
			return err
		})
	}

	return out
}

// relatedParts resolves part references against the catalog, dropping any
// that do not exist.
func (a *ContextAssembler) relatedParts(ctx context.Context, refs []string) []domain.Part {
	var parts []domain.Part
	for _, ref := range refs {
		if len(parts) == maxRelatedParts {
			break
		}
		var part *domain.Part
		a.lookup(ctx, "related_part", func(ctx context.Context) (err error) {
			part, err = a.store.GetPart(ctx, ref)
			return err
		})
		if part != nil {
			parts = append(parts, *part)
		}
	}
	return parts
}

func (a *ContextAssembler) lookup(ctx context.Context, field string, fn func(context.Context) error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	if err := fn(ctx); err != nil {
		a.logger.Warn("context lookup failed", zap.String("field", field), zap.Error(err))
	}
}
