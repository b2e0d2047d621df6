package admin

import (
	"errors"

	"github.com/moojpayam/api/internal/http/handlers/shared"
	"github.com/moojpayam/api/internal/http/response"
	"github.com/moojpayam/api/internal/i18n"
	"github.com/moojpayam/api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type pricingPlanRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	SmsCount    int              `json:"sms_count"`
	Price       decimal.Decimal  `json:"price"`
	OldPrice    *decimal.Decimal `json:"old_price"`
	Features    []string         `json:"features"`
	IsPopular   bool             `json:"is_popular"`
	IsActive    bool             `json:"is_active"`
	SortOrder   int              `json:"sort_order"`
}

func (r pricingPlanRequest) toInput() service.PricingPlanInput {
	return service.PricingPlanInput{
		Name:        r.Name,
		Description: r.Description,
		SmsCount:    r.SmsCount,
		Price:       r.Price,
		OldPrice:    r.OldPrice,
		Features:    r.Features,
		IsPopular:   r.IsPopular,
		IsActive:    r.IsActive,
		SortOrder:   r.SortOrder,
	}
}

// ListPricingPlans returns every plan for the dashboard.
func (h *Handler) ListPricingPlans(c *gin.Context) {
	plans, err := h.PricingService.ListAll()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.Success(c, plans)
}

// CreatePricingPlan inserts a plan.
func (h *Handler) CreatePricingPlan(c *gin.Context) {
	var req pricingPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	plan, err := h.PricingService.Create(req.toInput())
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.save_failed", err)
	default:
		h.recordContentAudit(c, "pricing_plan_created", gin.H{"id": plan.ID, "name": plan.Name})
		response.Success(c, plan)
	}
}

// UpdatePricingPlan replaces a plan.
func (h *Handler) UpdatePricingPlan(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	var req pricingPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	plan, err := h.PricingService.Update(id, req.toInput())
	switch {
	case errors.Is(err, service.ErrNotFound):
		shared.RespondError(c, response.CodeNotFound, "error.pricing_not_found", nil)
	case errors.Is(err, service.ErrInvalidInput):
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.save_failed", err)
	default:
		h.recordContentAudit(c, "pricing_plan_updated", gin.H{"id": plan.ID})
		response.Success(c, plan)
	}
}

// DeletePricingPlan removes a plan.
func (h *Handler) DeletePricingPlan(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	err := h.PricingService.Delete(id)
	switch {
	case errors.Is(err, service.ErrNotFound):
		shared.RespondError(c, response.CodeNotFound, "error.pricing_not_found", nil)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.save_failed", err)
	default:
		h.recordContentAudit(c, "pricing_plan_deleted", gin.H{"id": id})
		response.SuccessWithMsg(c, i18n.T("message.deleted"), nil)
	}
}
