package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/KARAN3690/FarmersAgent/internal/domain"
	"github.com/KARAN3690/FarmersAgent/internal/listing"
	"github.com/KARAN3690/FarmersAgent/internal/pricing"
	"github.com/KARAN3690/FarmersAgent/internal/repository"
	"github.com/KARAN3690/FarmersAgent/internal/service"
)

type Server struct {
	engine    *gin.Engine
	catalog   *service.CatalogService
	cart      *service.CartService
	rfq       *service.RFQService
	settings  repository.SettingsRepository
	converter pricing.Converter
}

func NewServer(catalog *service.CatalogService, cart *service.CartService, rfq *service.RFQService, settings repository.SettingsRepository, converter pricing.Converter) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), cors.Default())
	s := &Server{engine: r, catalog: catalog, cart: cart, rfq: rfq, settings: settings, converter: converter}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")
	{
		products := v1.Group("/products")
		products.GET("", s.listProducts)
		products.POST("", s.saveProduct)
		products.GET(":id", s.getProduct)

		farmers := v1.Group("/farmers")
		farmers.GET("", s.listFarmers)
		farmers.GET(":id", s.getFarmer)

		cart := v1.Group("/cart")
		cart.GET("", s.getCart)
		cart.POST("/items", s.addToCart)
		cart.PUT("/items/:id", s.setCartQuantity)
		cart.DELETE("/items/:id", s.removeFromCart)
		cart.POST("/checkout", s.checkout)

		rfq := v1.Group("/rfq")
		rfq.GET("", s.listRFQs)
		rfq.POST("", s.submitRFQ)

		v1.GET("/currency", s.getCurrency)
		v1.PUT("/currency", s.setCurrency)
	}
}

// productView товар с ценами в валюте отображения
type productView struct {
	domain.Product
	DisplayPrice string `json:"display_price"`
	BulkPrice    string `json:"bulk_price,omitempty"` // лучшая оптовая цена для бейджа
}

func (s *Server) viewOf(p domain.Product, cur domain.Currency) productView {
	v := productView{Product: p, DisplayPrice: s.converter.Format(p.Price, cur)}
	if len(p.Tiers) > 0 {
		v.BulkPrice = s.converter.Format(p.Tiers[len(p.Tiers)-1].UnitPrice, cur)
	}
	return v
}

func (s *Server) displayCurrency(c *gin.Context) domain.Currency {
	cur, err := s.settings.Currency(c)
	if err != nil {
		return domain.CurrencyINR
	}
	return cur
}

// Catalog handlers

// @Summary List products
// @Tags products
// @Produce json
// @Param q query string false "Name contains"
// @Param category query string false "Category or All"
// @Param sort query string false "relevance | price_asc | price_desc | rating_desc"
// @Success 200 {array} productView
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	products, err := s.catalog.ListProducts(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	category := domain.Category(c.DefaultQuery("category", string(domain.CategoryAll)))
	key := listing.SortKey(c.DefaultQuery("sort", string(listing.SortRelevance)))
	derived := listing.Derive(products, c.Query("q"), category, key)

	cur := s.displayCurrency(c)
	out := make([]productView, 0, len(derived))
	for _, p := range derived {
		out = append(out, s.viewOf(p, cur))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Get product, optionally with a quantity quote
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Param qty query int false "Quantity for a tier quote"
// @Success 200 {object} productView
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	p, err := s.catalog.GetProduct(c, c.Param("id"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	cur := s.displayCurrency(c)
	if v := c.Query("qty"); v != "" {
		qty, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid qty"})
			return
		}
		unit, err := s.catalog.Quote(c, p.ID, qty)
		if err != nil {
			c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"product":            s.viewOf(*p, cur),
			"quantity":           qty,
			"unit_price":         unit,
			"unit_price_display": s.converter.Format(unit, cur),
		})
		return
	}
	c.JSON(http.StatusOK, s.viewOf(*p, cur))
}

// @Summary Save a new product listing
// @Tags products
// @Accept json
// @Produce json
// @Param input body service.ProductInput true "Product form"
// @Success 201 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products [post]
func (s *Server) saveProduct(c *gin.Context) {
	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.catalog.SaveProduct(c, req)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary List farmers
// @Tags farmers
// @Produce json
// @Success 200 {array} domain.Farmer
// @Router /farmers [get]
func (s *Server) listFarmers(c *gin.Context) {
	farmers, err := s.catalog.ListFarmers(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, farmers)
}

// @Summary Get farmer by id
// @Tags farmers
// @Produce json
// @Param id path string true "Farmer ID"
// @Success 200 {object} domain.Farmer
// @Failure 404 {object} map[string]string
// @Router /farmers/{id} [get]
func (s *Server) getFarmer(c *gin.Context) {
	f, err := s.catalog.GetFarmer(c, c.Param("id"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, f)
}

// Cart handlers

type cartViewResp struct {
	Lines        []domain.CartLine `json:"lines"`
	Total        int64             `json:"total"`
	TotalDisplay string            `json:"total_display"`
	Visible      bool              `json:"visible"`
}

// @Summary Current cart contents
// @Tags cart
// @Produce json
// @Success 200 {object} cartViewResp
// @Router /cart [get]
func (s *Server) getCart(c *gin.Context) {
	view, err := s.cart.View(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	cur := s.displayCurrency(c)
	c.JSON(http.StatusOK, cartViewResp{
		Lines:        view.Lines,
		Total:        view.Total,
		TotalDisplay: s.converter.Format(view.Total, cur),
		Visible:      view.Visible,
	})
}

type addToCartReq struct {
	ProductID string `json:"product_id"`
}

// @Summary Add product to cart
// @Tags cart
// @Accept json
// @Produce json
// @Param input body addToCartReq true "Product reference"
// @Success 201 {object} domain.CartLine
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items [post]
func (s *Server) addToCart(c *gin.Context) {
	var req addToCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	line, err := s.cart.Add(c, req.ProductID)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, line)
}

type setQuantityReq struct {
	Quantity int64 `json:"quantity"`
}

// @Summary Set cart line quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param input body setQuantityReq true "Quantity"
// @Success 200 {object} domain.CartLine
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items/{id} [put]
func (s *Server) setCartQuantity(c *gin.Context) {
	var req setQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	line, err := s.cart.SetQuantity(c, c.Param("id"), req.Quantity)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, line)
}

// @Summary Remove cart line
// @Tags cart
// @Param id path string true "Product ID"
// @Success 204
// @Router /cart/items/{id} [delete]
func (s *Server) removeFromCart(c *gin.Context) {
	if err := s.cart.Remove(c, c.Param("id")); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Checkout the cart
// @Tags cart
// @Produce json
// @Success 200 {object} service.CheckoutResult
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /cart/checkout [post]
func (s *Server) checkout(c *gin.Context) {
	res, err := s.cart.Checkout(c)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":         res.Total,
		"total_display": s.converter.Format(res.Total, res.Currency),
		"currency":      res.Currency,
		"reference":     res.Reference,
	})
}

// RFQ handlers

// @Summary List bulk quote requests, newest first
// @Tags rfq
// @Produce json
// @Success 200 {array} domain.RFQRequest
// @Router /rfq [get]
func (s *Server) listRFQs(c *gin.Context) {
	list, err := s.rfq.List(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Submit a bulk quote request
// @Tags rfq
// @Accept json
// @Produce json
// @Param input body service.SubmitRFQInput true "Request"
// @Success 201 {object} domain.RFQRequest
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rfq [post]
func (s *Server) submitRFQ(c *gin.Context) {
	var req service.SubmitRFQInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	r, err := s.rfq.Submit(c, req)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, r)
}

// Currency handlers

// @Summary Current display currency
// @Tags currency
// @Produce json
// @Success 200 {object} map[string]string
// @Router /currency [get]
func (s *Server) getCurrency(c *gin.Context) {
	cur, err := s.settings.Currency(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"currency": cur})
}

type setCurrencyReq struct {
	Currency domain.Currency `json:"currency"`
}

// @Summary Switch display currency
// @Tags currency
// @Accept json
// @Produce json
// @Param input body setCurrencyReq true "Currency"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /currency [put]
func (s *Server) setCurrency(c *gin.Context) {
	var req setCurrencyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Currency != domain.CurrencyINR && req.Currency != domain.CurrencyUSD {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported currency"})
		return
	}
	if err := s.settings.SetCurrency(c, req.Currency); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"currency": req.Currency})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrMissingField),
		errors.Is(err, pricing.ErrInvalidSchedule):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrPaymentFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
