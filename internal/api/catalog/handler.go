package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/partchat/internal/domain"
	"github.com/liliang-cn/partchat/internal/service"
)

// Handler serves the read-only catalog endpoints
type Handler struct {
	catalogService *service.CatalogService
}

// NewHandler creates a new catalog handler
func NewHandler(catalogService *service.CatalogService) *Handler {
	return &Handler{catalogService: catalogService}
}

// RegisterPartRoutes registers the /parts routes
func (h *Handler) RegisterPartRoutes(r *gin.RouterGroup) {
	r.GET("", h.ListParts)
	r.POST("/check-compatibility", h.CheckCompatibility)
	r.GET("/:partNumber", h.GetPart)
	r.GET("/:partNumber/compatibility", h.PartCompatibility)
	r.GET("/:partNumber/installation", h.InstallationGuide)
}

// RegisterProductRoutes registers the /products routes
func (h *Handler) RegisterProductRoutes(r *gin.RouterGroup) {
	r.GET("", h.ListProducts)
	r.GET("/troubleshooting/:type", h.Troubleshooting)
	r.GET("/:modelNumber", h.GetProduct)
	r.GET("/:modelNumber/parts", h.ProductParts)
}

// list renders a slice as a JSON array, never null.
func list[T any](c *gin.Context, items []T, err error) {
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}

// one renders a single record, mapping domain.ErrNotFound to 404 with notFound.
func one(c *gin.Context, item any, err error, notFound string) {
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": notFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

// Part handlers

func (h *Handler) ListParts(c *gin.Context) {
	parts, err := h.catalogService.ListParts(c.Request.Context(), domain.PartFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	list(c, parts, err)
}

func (h *Handler) GetPart(c *gin.Context) {
	part, err := h.catalogService.GetPart(c.Request.Context(), c.Param("partNumber"))
	one(c, part, err, "Part not found")
}

func (h *Handler) PartCompatibility(c *gin.Context) {
	compat, err := h.catalogService.PartCompatibility(c.Request.Context(), c.Param("partNumber"))
	list(c, compat, err)
}

func (h *Handler) InstallationGuide(c *gin.Context) {
	guide, err := h.catalogService.InstallationGuide(c.Request.Context(), c.Param("partNumber"))
	one(c, guide, err, "Installation guide not found")
}

type checkCompatibilityRequest struct {
	PartNumber  string `json:"partNumber"`
	ModelNumber string `json:"modelNumber"`
}

func (h *Handler) CheckCompatibility(c *gin.Context) {
	var req checkCompatibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	check, err := h.catalogService.CheckCompatibility(c.Request.Context(), req.PartNumber, req.ModelNumber)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Part number and model number are required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, check)
}

// Product handlers

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts(c.Request.Context(), domain.ProductFilter{
		Type:  c.Query("type"),
		Brand: c.Query("brand"),
	})
	list(c, products, err)
}

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Request.Context(), c.Param("modelNumber"))
	one(c, product, err, "Product not found")
}

func (h *Handler) ProductParts(c *gin.Context) {
	parts, err := h.catalogService.PartsForModel(c.Request.Context(), c.Param("modelNumber"))
	list(c, parts, err)
}

func (h *Handler) Troubleshooting(c *gin.Context) {
	guides, err := h.catalogService.Troubleshooting(c.Request.Context(), c.Param("type"), c.Query("issue"))
	list(c, guides, err)
}
