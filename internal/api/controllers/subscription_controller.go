package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkoutdash/internal/models/request_models"
	"checkoutdash/internal/services"
	"checkoutdash/pkg/utils"
)

type SubscriptionController struct {
	subscriptions services.SubscriptionServiceInterface
	lifecycle     services.LifecycleServiceInterface
	maxPageSize   int
}

func NewSubscriptionController(
	subscriptions services.SubscriptionServiceInterface,
	lifecycle services.LifecycleServiceInterface,
	maxPageSize int,
) *SubscriptionController {
	return &SubscriptionController{
		subscriptions: subscriptions,
		lifecycle:     lifecycle,
		maxPageSize:   maxPageSize,
	}
}

// List godoc
// @Summary List subscriptions
// @Description Filtered, paginated subscriptions with a derived status
// @Tags Subscriptions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param productName query string false "Product name substring"
// @Param planName query string false "Plan name substring"
// @Param startDate query string false "Start date prefix (YYYY-MM-DD)"
// @Param renewalDate query string false "End date prefix (YYYY-MM-DD)"
// @Success 200 {object} utils.PagedResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /subscriptions [get]
func (s *SubscriptionController) List(c *gin.Context) {
	page, err := pageParams(c, s.maxPageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	var filter request_models.SubscriptionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := s.subscriptions.List(c.Request.Context(), filter, page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondPaged(c, utils.PagedResponse{
		Source:     result.Source,
		Data:       result.Rows,
		Pagination: utils.NewPagination(page.Page, page.Limit, result.Total),
	})
}

// Get godoc
// @Summary Get a subscription
// @Tags Subscriptions
// @Produce json
// @Param id path int true "Subscription id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/{id} [get]
func (s *SubscriptionController) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	row, err := s.subscriptions.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, row, "")
}

// Plans godoc
// @Summary List plans
// @Tags Subscriptions
// @Produce json
// @Param productName query string false "Exact product name"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /subscriptions/plans/list [get]
func (s *SubscriptionController) Plans(c *gin.Context) {
	plans, err := s.subscriptions.Plans(c.Request.Context(), c.Query("productName"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plans, "")
}

func (s *SubscriptionController) Products(c *gin.Context) {
	respondList(c, s.subscriptions.Products)
}

// Cancel godoc
// @Summary Cancel a subscription
// @Description Records an audit comment and, when enabled, notifies the billing API
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param request body request_models.CancelSubscriptionRequest true "Cancel payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/cancel [post]
func (s *SubscriptionController) Cancel(c *gin.Context) {
	var req request_models.CancelSubscriptionRequest
	if err := bindJSON(c, &req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	res, err := s.lifecycle.Cancel(c.Request.Context(), actingAdmin(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, res, res.Message)
}

// RenewalCharge godoc
// @Summary Charge a renewal
// @Description Records an audit comment, then charges through the billing API
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param request body request_models.RenewalChargeRequest true "Renewal payload"
// @Success 200 {object} utils.APIResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/renewal-charge [post]
func (s *SubscriptionController) RenewalCharge(c *gin.Context) {
	var req request_models.RenewalChargeRequest
	if err := bindJSON(c, &req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	res, err := s.lifecycle.RenewalCharge(c.Request.Context(), actingAdmin(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, res, res.Message)
}

// UpdateEndDate godoc
// @Summary Move a subscription end date
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param request body request_models.UpdateEndDateRequest true "Update payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/update-end-date [post]
func (s *SubscriptionController) UpdateEndDate(c *gin.Context) {
	var req request_models.UpdateEndDateRequest
	if err := bindJSON(c, &req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	res, err := s.lifecycle.UpdateEndDate(c.Request.Context(), actingAdmin(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, res, res.Message)
}
