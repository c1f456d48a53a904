package handler

import (
	"net/http"

	"pharmaops/internal/middleware"
	"pharmaops/internal/model"
	"pharmaops/internal/service"
	"pharmaops/pkg/pagination"
	"pharmaops/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DocumentHandler struct {
	documentService service.DocumentService
}

func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) RegisterRoutes(router *gin.RouterGroup) {
	docs := router.Group("/api/documents")
	{
		docs.GET("/pending", middleware.RequireRole(model.RoleQA, model.RoleAdmin), h.GetPending)
		docs.POST("/:id/review", h.ReviewDocument)
	}
	master := router.Group("/api/master-documents")
	{
		master.GET("", h.GetMasterDocuments)
		master.POST("", h.UploadMasterDocument)
	}
}

// GetPending returns the QA review queue, oldest upload first
// @Summary      Get pending documents
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=[]model.Document}
// @Router       /api/documents/pending [get]
func (h *DocumentHandler) GetPending(c *gin.Context) {
	page := pagination.Parse(c)
	docs, total, err := h.documentService.ListPendingDocuments(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, docs, page.Meta(total)))
}

// ReviewDocument approves or rejects an uploaded document
// @Summary      Review document
// @Tags         documents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Document ID"
// @Param        payload  body      service.ReviewDocumentRequest  true  "APPROVE or REJECT"
// @Success      200      {object}  response.Response{data=model.Document}
// @Failure      409      {object}  response.Response
// @Router       /api/documents/{id}/review [post]
func (h *DocumentHandler) ReviewDocument(c *gin.Context) {
	docID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req service.ReviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	a, ok := actor(c)
	if !ok {
		return
	}

	doc, err := h.documentService.ReviewDocument(c.Request.Context(), a, docID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, doc))
}

// GetMasterDocuments lists standing documents, optionally for one product
// @Summary      Get master documents
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        product_id  query     string  false  "Product ID"
// @Success      200         {object}  response.Response{data=[]model.MasterDocument}
// @Router       /api/master-documents [get]
func (h *DocumentHandler) GetMasterDocuments(c *gin.Context) {
	var productID *uuid.UUID
	if v := c.Query("product_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid product_id: "+v))
			return
		}
		productID = &id
	}

	docs, err := h.documentService.ListMasterDocuments(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, docs))
}

// UploadMasterDocument stores a standing SOP for a product
// @Summary      Upload master document
// @Tags         documents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.UploadMasterRequest  true  "Master document metadata"
// @Success      201      {object}  response.Response{data=model.MasterDocument}
// @Router       /api/master-documents [post]
func (h *DocumentHandler) UploadMasterDocument(c *gin.Context) {
	var req service.UploadMasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	a, ok := actor(c)
	if !ok {
		return
	}

	doc, err := h.documentService.UploadMasterDocument(c.Request.Context(), a, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, doc))
}
