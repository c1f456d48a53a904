package handler

import (
	"net/http"

	"pharmaops/internal/middleware"
	"pharmaops/internal/model"
	"pharmaops/internal/service"
	"pharmaops/pkg/response"

	"github.com/gin-gonic/gin"
)

type VendorHandler struct {
	vendorService service.VendorService
}

func NewVendorHandler(vendorService service.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// InviteResponse returns the one-time invite code next to the vendor.
type InviteResponse struct {
	Vendor     *model.Vendor `json:"vendor"`
	InviteCode string        `json:"invite_code"`
}

func (h *VendorHandler) RegisterRoutes(router *gin.RouterGroup) {
	vendors := router.Group("/api/vendors")
	{
		vendors.GET("", middleware.RequireRole(model.RoleAdmin), h.GetVendors)
		vendors.POST("", middleware.RequireRole(model.RoleAdmin), h.InviteVendor)
		vendors.POST("/:id/accept", middleware.RequireRole(model.RoleVendor), h.AcceptInvitation)
	}
}

// GetVendors lists vendors with their open order load
// @Summary      Get vendors
// @Tags         vendors
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "INVITED or ACCEPTED"
// @Success      200     {object}  response.Response{data=[]service.VendorSummary}
// @Router       /api/vendors [get]
func (h *VendorHandler) GetVendors(c *gin.Context) {
	vendors, err := h.vendorService.ListVendors(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, vendors))
}

// InviteVendor registers a vendor and returns its invite code
// @Summary      Invite vendor
// @Tags         vendors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.InviteVendorRequest  true  "Invite Payload"
// @Success      201      {object}  response.Response{data=InviteResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/vendors [post]
func (h *VendorHandler) InviteVendor(c *gin.Context) {
	var req service.InviteVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	a, ok := actor(c)
	if !ok {
		return
	}

	vendor, code, err := h.vendorService.InviteVendor(c.Request.Context(), a, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, InviteResponse{Vendor: vendor, InviteCode: code}))
}

// AcceptInvitation activates a vendor with its invite code
// @Summary      Accept invitation
// @Tags         vendors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                           true  "Vendor ID"
// @Param        payload  body      service.AcceptInvitationRequest  true  "Invite Code"
// @Success      200      {object}  response.Response{data=model.Vendor}
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/vendors/{id}/accept [post]
func (h *VendorHandler) AcceptInvitation(c *gin.Context) {
	vendorID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req service.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	a, ok := actor(c)
	if !ok {
		return
	}

	vendor, err := h.vendorService.AcceptInvitation(c.Request.Context(), a, vendorID, req.InviteCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, vendor))
}
