package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appaudit "github.com/invoicemonk/backend/internal/application/audit"
	"github.com/invoicemonk/backend/internal/domain/audit"
	"github.com/invoicemonk/backend/internal/interfaces/http/dto"
)

// AuditHandler serves the audit trail and export manifest endpoints
type AuditHandler struct {
	BaseHandler
	auditService *appaudit.Service
}

func NewAuditHandler(auditService *appaudit.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

type listAuditRequest struct {
	dto.ListRequest
	Action  string `form:"action"`
	ActorID string `form:"actor_id"`
	From    string `form:"from"`
	To      string `form:"to"`
}

func (r *listAuditRequest) toFilter() (audit.EntryFilter, error) {
	r.Normalize()
	filter := audit.EntryFilter{
		Page:     r.Page,
		PageSize: r.PageSize,
	}
	if r.Action != "" {
		action := audit.Action(r.Action)
		if !action.IsValid() {
			return filter, fmt.Errorf("unknown action %q", r.Action)
		}
		filter.Action = &action
	}
	if r.ActorID != "" {
		id, err := uuid.Parse(r.ActorID)
		if err != nil {
			return filter, fmt.Errorf("invalid actor_id")
		}
		filter.ActorID = &id
	}
	if r.From != "" {
		t, err := time.Parse("2006-01-02", r.From)
		if err != nil {
			return filter, fmt.Errorf("invalid from date, expected YYYY-MM-DD")
		}
		filter.FromDate = &t
	}
	if r.To != "" {
		t, err := time.Parse("2006-01-02", r.To)
		if err != nil {
			return filter, fmt.Errorf("invalid to date, expected YYYY-MM-DD")
		}
		filter.ToDate = &t
	}
	return filter, nil
}

// List handles GET /businesses/:businessId/audit-log
func (h *AuditHandler) List(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	var req listAuditRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	filter, err := req.toFilter()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.auditService.List(c.Request.Context(), bizID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Entries, result.Total, result.Page, result.PageSize)
}

// VerifyChain handles GET /businesses/:businessId/audit-log/verify
func (h *AuditHandler) VerifyChain(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	status, err := h.auditService.VerifyChain(c.Request.Context(), bizID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, status)
}

// ListManifests handles GET /businesses/:businessId/exports
func (h *AuditHandler) ListManifests(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	manifests, err := h.auditService.ListManifests(c.Request.Context(), bizID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, manifests)
}
