package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkoutdash/internal/models/request_models"
	"checkoutdash/internal/services"
	"checkoutdash/pkg/utils"
)

type PaymentLogController struct {
	paymentLogs services.PaymentLogServiceInterface
	exports     services.ExportServiceInterface
	options     services.FilterOptionServiceInterface
	maxPageSize int
}

func NewPaymentLogController(
	paymentLogs services.PaymentLogServiceInterface,
	exports services.ExportServiceInterface,
	options services.FilterOptionServiceInterface,
	maxPageSize int,
) *PaymentLogController {
	return &PaymentLogController{
		paymentLogs: paymentLogs,
		exports:     exports,
		options:     options,
		maxPageSize: maxPageSize,
	}
}

// List godoc
// @Summary List payment logs
// @Description Filtered, paginated payment logs with a summary over the whole filtered set
// @Tags PaymentLogs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param searchByAppId query string false "App or order id substring"
// @Param searchByAppIdOrTransaction query string false "App or transaction id substring"
// @Param searchDate query string false "Calendar day (YYYY-MM-DD)"
// @Param subscriptionType query string false "trial, new, renewal or upgrade"
// @Success 200 {object} utils.PagedResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /payment-logs [get]
func (p *PaymentLogController) List(c *gin.Context) {
	page, err := pageParams(c, p.maxPageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	var filter request_models.PaymentLogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := p.paymentLogs.List(c.Request.Context(), filter, page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondPaged(c, utils.PagedResponse{
		Source:     result.Source,
		Data:       result.Rows,
		Summary:    result.Summary,
		Pagination: utils.NewPagination(page.Page, page.Limit, result.Total),
	})
}

// Get godoc
// @Summary Get a payment log
// @Tags PaymentLogs
// @Produce json
// @Param id path int true "Payment log id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /payment-logs/{id} [get]
func (p *PaymentLogController) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	row, err := p.paymentLogs.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, row, "")
}

// Export godoc
// @Summary Export payment logs as CSV
// @Tags PaymentLogs
// @Produce text/csv
// @Success 200 {file} file
// @Security BearerAuth
// @Router /payment-logs/export [get]
func (p *PaymentLogController) Export(c *gin.Context) {
	var filter request_models.PaymentLogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	att, err := p.exports.ExportCSV(c.Request.Context(), filter)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	sendAttachment(c, att)
}

// Invoice godoc
// @Summary Download an invoice
// @Tags PaymentLogs
// @Produce plain
// @Param id path int true "Payment log id"
// @Param format query string false "text or pdf" default(text)
// @Success 200 {file} file
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /payment-logs/invoice/{id} [get]
func (p *PaymentLogController) Invoice(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	att, err := p.exports.Invoice(c.Request.Context(), id, c.Query("format"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	sendAttachment(c, att)
}

func sendAttachment(c *gin.Context, att *services.Attachment) {
	c.Header("Content-Disposition", `attachment; filename="`+att.Filename+`"`)
	c.Data(http.StatusOK, att.ContentType, att.Body)
}

// FilterOptions godoc
// @Summary All payment-log filter options
// @Tags PaymentLogs
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payment-logs/filters/all [get]
func (p *PaymentLogController) FilterOptions(c *gin.Context) {
	opts, err := p.options.All(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, opts, "")
}

func (p *PaymentLogController) Products(c *gin.Context) {
	respondList(c, p.options.Products)
}

func (p *PaymentLogController) Addons(c *gin.Context) {
	respondList(c, p.options.Addons)
}

func (p *PaymentLogController) SubscriptionTypes(c *gin.Context) {
	respondList(c, p.options.SubscriptionTypes)
}

func (p *PaymentLogController) PaymentModes(c *gin.Context) {
	respondList(c, p.options.PaymentModes)
}

func (p *PaymentLogController) PaymentSources(c *gin.Context) {
	respondList(c, p.options.PaymentSources)
}

func (p *PaymentLogController) SubscriptionPeriods(c *gin.Context) {
	respondList(c, p.options.SubscriptionPeriods)
}

func (p *PaymentLogController) Languages(c *gin.Context) {
	respondList(c, p.options.Languages)
}

func (p *PaymentLogController) ClaimedUsers(c *gin.Context) {
	respondList(c, p.options.ClaimedUsers)
}
