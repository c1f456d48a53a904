package handler

import (
	"net/http"

	"pharmaops/internal/repository"
	"pharmaops/internal/service"
	"pharmaops/pkg/pagination"
	"pharmaops/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderService    service.OrderService
	documentService service.DocumentService
}

func NewOrderHandler(orderService service.OrderService, documentService service.DocumentService) *OrderHandler {
	return &OrderHandler{orderService: orderService, documentService: documentService}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/api/orders")
	{
		orders.GET("", h.GetOrders)
		orders.POST("", h.CreateOrder)
		orders.GET("/:id", h.GetOrder)
		orders.POST("/:id/accept", h.AcceptOrder)
		orders.GET("/:id/documents", h.GetDocuments)
		orders.POST("/:id/documents", h.UploadDocument)
		orders.POST("/:id/shipment", h.CreateShipment)
		orders.POST("/:id/deliver", h.ConfirmDelivery)
		orders.GET("/:id/trace", h.GetTrace)
	}
}

// GetOrders lists orders; vendors only see their own
// @Summary      Get orders
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        status     query     string  false  "Order status"
// @Param        vendor_id  query     string  false  "Vendor ID"
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Number of items per page (default 20)"
// @Success      200        {object}  response.Response{data=[]model.Order}
// @Router       /api/orders [get]
func (h *OrderHandler) GetOrders(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	filter := repository.OrderFilter{Status: c.Query("status")}
	if v := c.Query("vendor_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid vendor_id: "+v))
			return
		}
		filter.VendorID = &id
	}

	page := pagination.Parse(c)
	orders, total, err := h.orderService.ListOrders(c.Request.Context(), a, filter, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, orders, page.Meta(total)))
}

// CreateOrder places an order with an accepted vendor
// @Summary      Create order
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateOrderRequest  true  "Order Payload"
// @Success      201      {object}  response.Response{data=model.Order}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	a, ok := actor(c)
	if !ok {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), a, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, order))
}

// GetOrder returns an order with its requirement checklist
// @Summary      Get order
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=model.Order}
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	a, ok := actor(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), a, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// AcceptOrder accepts an order and generates its document requirements
// @Summary      Accept order
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=model.Order}
// @Failure      409  {object}  response.Response
// @Router       /api/orders/{id}/accept [post]
func (h *OrderHandler) AcceptOrder(c *gin.Context) {
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	a, ok := actor(c)
	if !ok {
		return
	}

	order, err := h.orderService.AcceptOrder(c.Request.Context(), a, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// GetDocuments lists every upload of an order, oldest first
// @Summary      Get order documents
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=[]model.Document}
// @Router       /api/orders/{id}/documents [get]
func (h *OrderHandler) GetDocuments(c *gin.Context) {
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	a, ok := actor(c)
	if !ok {
		return
	}

	docs, err := h.documentService.ListOrderDocuments(c.Request.Context(), a, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, docs))
}

// UploadDocument attaches a document to one requirement of an order
// @Summary      Upload document
// @Tags         documents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Order ID"
// @Param        payload  body      service.UploadDocumentRequest  true  "Document metadata"
// @Success      201      {object}  response.Response{data=model.Document}
// @Failure      409      {object}  response.Response
// @Router       /api/orders/{id}/documents [post]
func (h *OrderHandler) UploadDocument(c *gin.Context) {
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req service.UploadDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	a, ok := actor(c)
	if !ok {
		return
	}

	doc, err := h.documentService.UploadDocument(c.Request.Context(), a, orderID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, doc))
}

// CreateShipment ships a READY_TO_SHIP order
// @Summary      Create shipment
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Order ID"
// @Param        payload  body      service.CreateShipmentRequest  true  "Shipment Payload"
// @Success      201      {object}  response.Response{data=model.Shipment}
// @Failure      409      {object}  response.Response
// @Router       /api/orders/{id}/shipment [post]
func (h *OrderHandler) CreateShipment(c *gin.Context) {
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req service.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	a, ok := actor(c)
	if !ok {
		return
	}

	shipment, err := h.orderService.CreateShipment(c.Request.Context(), a, orderID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, shipment))
}

// ConfirmDelivery marks a shipped order as delivered
// @Summary      Confirm delivery
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=model.Order}
// @Failure      409  {object}  response.Response
// @Router       /api/orders/{id}/deliver [post]
func (h *OrderHandler) ConfirmDelivery(c *gin.Context) {
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	a, ok := actor(c)
	if !ok {
		return
	}

	order, err := h.orderService.ConfirmDelivery(c.Request.Context(), a, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// GetTrace returns the audit history of an order and everything hanging off it
// @Summary      Get order trace
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=[]model.AuditLog}
// @Router       /api/orders/{id}/trace [get]
func (h *OrderHandler) GetTrace(c *gin.Context) {
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	a, ok := actor(c)
	if !ok {
		return
	}

	entries, err := h.orderService.OrderTrace(c.Request.Context(), a, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}
