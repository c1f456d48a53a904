package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"pharmaops/internal/middleware"
	"pharmaops/internal/model"
	"pharmaops/internal/repository"
	"pharmaops/internal/service"
	"pharmaops/pkg/pagination"
	"pharmaops/pkg/response"

	"github.com/gin-gonic/gin"
)

var reportContentTypes = map[string]string{
	service.FormatCSV:  "text/csv",
	service.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/audit-logs")
	{
		group.GET("", middleware.RequireRole(model.RoleAuditor, model.RoleAdmin), h.GetAuditLogs)
		group.GET("/verify", middleware.RequireRole(model.RoleAuditor), h.VerifyChain)
		group.GET("/export", middleware.RequireRole(model.RoleAuditor), h.ExportReport)
	}
}

// GetAuditLogs queries the audit trail ordered by time
// @Summary      Get audit logs
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        role         query     string  false  "Actor role"
// @Param        q            query     string  false  "Search action, actor or entity"
// @Param        entity_type  query     string  false  "Entity type"
// @Param        entity_id    query     string  false  "Entity ID"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Number of items per page (default 20)"
// @Success      200          {object}  response.Response{data=[]model.AuditLog}
// @Router       /api/audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	filter := repository.AuditFilter{
		Role:       c.Query("role"),
		Text:       c.Query("q"),
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
	}

	page := pagination.Parse(c)
	logs, total, err := h.auditService.Query(c.Request.Context(), a, filter, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, logs, page.Meta(total)))
}

// VerifyChain recomputes every hash from genesis
// @Summary      Verify audit chain
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=audit.VerifyReport}
// @Failure      500  {object}  response.Response{data=audit.VerifyReport}  "Chain broken"
// @Router       /api/audit-logs/verify [get]
func (h *AuditHandler) VerifyChain(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	report, err := h.auditService.VerifyOrError(c.Request.Context(), a)
	if err != nil {
		respondErrorData(c, err, report)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// ExportReport downloads the full audit trail
// @Summary      Export audit report
// @Tags         audit
// @Security     BearerAuth
// @Produce      octet-stream
// @Param        format  query  string  false  "csv (default) or xlsx"
// @Success      200
// @Router       /api/audit-logs/export [get]
func (h *AuditHandler) ExportReport(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	format := c.DefaultQuery("format", service.FormatCSV)

	// Buffer so a failure midway still produces a JSON error.
	var buf bytes.Buffer
	if err := h.auditService.ExportReport(c.Request.Context(), a, format, &buf); err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("audit-trail-%s.%s", time.Now().UTC().Format("20060102-150405"), format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, reportContentTypes[format], buf.Bytes())
}
