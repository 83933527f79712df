package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shelfscan/backend/internal/domain"
	"github.com/shelfscan/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	dealService *usecase.DealService
}

// NewHandler creates a new HTTP handler
func NewHandler(dealService *usecase.DealService) *Handler {
	return &Handler{dealService: dealService}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shelfscan-backend",
		"version": "1.0.0",
	})
}

// dealSearchRequest is the POST body for deal searches
type dealSearchRequest struct {
	ProductID    string   `json:"product_id"`
	ProductTitle string   `json:"product_title" binding:"required"`
	ProductURL   string   `json:"product_url"`
	NumericGrade *float64 `json:"numeric_grade"`
	Grade        string   `json:"grade"`
	Ingredients  string   `json:"ingredients"`
}

// dealPayload is the wire shape of one purchase option
type dealPayload struct {
	Retailer     string       `json:"retailer"`
	Title        string       `json:"title"`
	DisplayName  string       `json:"display_name"`
	ProductName  string       `json:"product_name,omitempty"`
	DealURL      string       `json:"deal_url"`
	Price        *float64     `json:"price"`
	Currency     string       `json:"currency,omitempty"`
	PricePerUnit *float64     `json:"price_per_unit,omitempty"`
	Size         *sizePayload `json:"size,omitempty"`
	Availability string       `json:"availability,omitempty"`
}

type sizePayload struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// SearchDeals handles deal search requests
func (h *Handler) SearchDeals(c *gin.Context) {
	if h.dealService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Deal service not configured",
		})
		return
	}

	var req dealSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "product_title is required",
		})
		return
	}

	result, err := h.dealService.FindDeals(c.Request.Context(), &usecase.DealRequest{
		ProductID:    req.ProductID,
		ProductTitle: req.ProductTitle,
		ProductURL:   req.ProductURL,
		NumericGrade: req.NumericGrade,
		Grade:        req.Grade,
		Ingredients:  req.Ingredients,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Internal details stay in the logs, not the response
		log.Printf("[HTTP] deal search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	deals := make([]dealPayload, 0, len(result.Deals))
	for _, d := range result.Deals {
		deals = append(deals, toDealPayload(d))
	}

	response := gin.H{
		"success": true,
		"deals":   deals,
		"cached":  result.Cached,
	}
	if result.Message != "" {
		response["message"] = result.Message
	}
	c.JSON(http.StatusOK, response)
}

func toDealPayload(d domain.Candidate) dealPayload {
	p := dealPayload{
		Retailer:     d.Retailer,
		Title:        d.RawTitle,
		DisplayName:  d.DisplayName,
		ProductName:  d.ProductName,
		DealURL:      d.URL,
		Price:        d.Price,
		Currency:     d.Currency,
		PricePerUnit: d.PricePerUnit,
		Availability: d.Availability,
	}
	if d.Size != nil {
		unit := "g"
		if d.Size.Channel == domain.UnitVolume {
			unit = "ml"
		}
		p.Size = &sizePayload{Value: d.Size.Value, Unit: unit}
	}
	return p
}

// identityPayload is the wire shape of a product identity
type identityPayload struct {
	Brand       string   `json:"brand"`
	Name        string   `json:"name"`
	SizeValue   *float64 `json:"size_value"`
	SizeChannel string   `json:"size_channel"` // "volume" or "weight"
	Form        string   `json:"form"`
	ScentShade  string   `json:"scent_shade"`
	GTIN        string   `json:"gtin"`
}

func (p identityPayload) toDomain() domain.ProductIdentity {
	identity := domain.ProductIdentity{
		Brand:      p.Brand,
		Name:       p.Name,
		Form:       p.Form,
		ScentShade: p.ScentShade,
		GTIN:       p.GTIN,
	}
	if p.SizeValue != nil {
		channel := domain.UnitWeight
		if p.SizeChannel == "volume" {
			channel = domain.UnitVolume
		}
		identity.Size = &domain.Size{Value: *p.SizeValue, Channel: channel}
	}
	return identity
}

// validateAlternativeRequest is the POST body for alternative validation
type validateAlternativeRequest struct {
	Page struct {
		Title       string   `json:"title" binding:"required"`
		Heading     string   `json:"heading"`
		Breadcrumbs []string `json:"breadcrumbs"`
		Host        string   `json:"host"`
	} `json:"page" binding:"required"`
	Extracted identityPayload `json:"extracted"`
	Wanted    identityPayload `json:"wanted" binding:"required"`
}

// ValidateAlternative scores a candidate alternative against the wanted
// product and reports whether it passes the identity gate
func (h *Handler) ValidateAlternative(c *gin.Context) {
	if h.dealService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Deal service not configured",
		})
		return
	}

	var req validateAlternativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "page.title and wanted identity are required",
		})
		return
	}

	result := h.dealService.ValidateAlternative(
		domain.PageSignals{
			Title:       req.Page.Title,
			Heading:     req.Page.Heading,
			Breadcrumbs: req.Page.Breadcrumbs,
			Host:        req.Page.Host,
		},
		req.Extracted.toDomain(),
		req.Wanted.toDomain(),
	)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"score":     result.Score,
		"passed":    result.Passed,
		"reason":    result.Reason,
		"breakdown": result.Breakdown,
	})
}
