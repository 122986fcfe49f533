package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/liliang-cn/partchat/internal/domain"
	"github.com/liliang-cn/partchat/internal/repository"
)

// CatalogService serves the parts and products browsing endpoints
type CatalogService struct {
	catalog *repository.CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalog *repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// Parts

func (s *CatalogService) ListParts(ctx context.Context, filter domain.PartFilter) ([]domain.Part, error) {
	return s.catalog.ListParts(ctx, filter)
}

func (s *CatalogService) GetPart(ctx context.Context, partNumber string) (*domain.Part, error) {
	part, err := s.catalog.GetPart(ctx, partNumber)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	return part, nil
}

func (s *CatalogService) PartCompatibility(ctx context.Context, partNumber string) ([]domain.Compatibility, error) {
	return s.catalog.CompatibilityForPartNumber(ctx, partNumber)
}

func (s *CatalogService) InstallationGuide(ctx context.Context, partNumber string) (*domain.InstallationGuide, error) {
	guide, err := s.catalog.InstallationGuideForPartNumber(ctx, partNumber)
	if err != nil {
		return nil, err
	}
	if guide == nil {
		return nil, domain.ErrNotFound
	}
	return guide, nil
}

// CheckCompatibility answers whether partNumber fits modelNumber exactly.
func (s *CatalogService) CheckCompatibility(ctx context.Context, partNumber, modelNumber string) (*domain.CompatibilityCheck, error) {
	partNumber = strings.TrimSpace(partNumber)
	modelNumber = strings.TrimSpace(modelNumber)
	if partNumber == "" || modelNumber == "" {
		return nil, fmt.Errorf("%w: part number and model number are required", domain.ErrInvalidRequest)
	}

	ok, err := s.catalog.IsCompatible(ctx, partNumber, modelNumber)
	if err != nil {
		return nil, err
	}
	return &domain.CompatibilityCheck{
		Compatible:  ok,
		PartNumber:  partNumber,
		ModelNumber: modelNumber,
	}, nil
}

// Products

func (s *CatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.catalog.ListProducts(ctx, filter)
}

func (s *CatalogService) GetProduct(ctx context.Context, modelNumber string) (*domain.Product, error) {
	product, err := s.catalog.GetProduct(ctx, modelNumber)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func (s *CatalogService) PartsForModel(ctx context.Context, modelNumber string) ([]domain.Part, error) {
	return s.catalog.PartsForModel(ctx, modelNumber)
}

func (s *CatalogService) Troubleshooting(ctx context.Context, productType, issue string) ([]domain.TroubleshootingGuide, error) {
	return s.catalog.TroubleshootingForType(ctx, productType, issue)
}
