package handler

import (
	"net/http"

	"pharmaops/internal/middleware"
	"pharmaops/internal/model"
	"pharmaops/internal/service"
	"pharmaops/pkg/pagination"
	"pharmaops/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService service.ProductService
	ruleService    service.RuleService
}

func NewProductHandler(productService service.ProductService, ruleService service.RuleService) *ProductHandler {
	return &ProductHandler{productService: productService, ruleService: ruleService}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/api/products")
	{
		products.GET("", h.GetProducts)
		products.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateProduct)
		products.GET("/:id/rules", h.GetRules)
	}
	rules := router.Group("/api/rules")
	rules.Use(middleware.RequireRole(model.RoleAdmin))
	{
		rules.POST("", h.DefineRule)
		rules.PUT("/:id", h.UpdateRule)
	}
}

// GetProducts lists the product catalog
// @Summary      Get products
// @Description  Retrieves a paginated list of products
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Param        search  query     string  false  "Search by sku or name"
// @Success      200     {object}  response.Response{data=[]model.Product}
// @Failure      500     {object}  response.Response
// @Router       /api/products [get]
func (h *ProductHandler) GetProducts(c *gin.Context) {
	page := pagination.Parse(c)
	products, total, err := h.productService.ListProducts(c.Request.Context(), page, c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, products, page.Meta(total)))
}

// CreateProduct adds a product to the catalog
// @Summary      Create product
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateProductRequest  true  "Create Product Payload"
// @Success      201      {object}  response.Response{data=model.Product}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	a, ok := actor(c)
	if !ok {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), a, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, product))
}

// GetRules lists the compliance rules of a product in creation order
// @Summary      Get product rules
// @Tags         rules
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Response{data=[]model.ComplianceRule}
// @Router       /api/products/{id}/rules [get]
func (h *ProductHandler) GetRules(c *gin.Context) {
	productID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	rules, err := h.ruleService.RulesForProduct(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rules))
}

// DefineRule adds a required document type to a product
// @Summary      Define compliance rule
// @Tags         rules
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.DefineRuleRequest  true  "Rule Payload"
// @Success      201      {object}  response.Response{data=model.ComplianceRule}
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/rules [post]
func (h *ProductHandler) DefineRule(c *gin.Context) {
	var req service.DefineRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	a, ok := actor(c)
	if !ok {
		return
	}

	rule, err := h.ruleService.DefineRule(c.Request.Context(), a, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rule))
}

// UpdateRule changes a rule for orders accepted from now on
// @Summary      Update compliance rule
// @Tags         rules
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Rule ID"
// @Param        payload  body      service.UpdateRuleRequest  true  "Rule Payload"
// @Success      200      {object}  response.Response{data=model.ComplianceRule}
// @Router       /api/rules/{id} [put]
func (h *ProductHandler) UpdateRule(c *gin.Context) {
	ruleID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req service.UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	a, ok := actor(c)
	if !ok {
		return
	}

	rule, err := h.ruleService.UpdateRule(c.Request.Context(), a, ruleID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rule))
}
