package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"checkoutdash/pkg/logger"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Error   string       `json:"error,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	TraceID string       `json:"trace_id,omitempty"`
}

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// NewPagination derives the page count from the total; an empty result has
// zero pages.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 && total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}

type PagedResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	TraceID    string      `json:"trace_id,omitempty"`
	Source     string      `json:"source"`
	Data       interface{} `json:"data"`
	Summary    interface{} `json:"summary,omitempty"`
	Pagination Pagination  `json:"pagination"`
}

const ReportSourceHeader = "X-Report-Source"

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondPaged(c *gin.Context, resp PagedResponse) {
	resp.Success = true
	resp.TraceID = c.GetString("trace_id")
	if resp.Source != "" {
		c.Header(ReportSourceHeader, resp.Source)
	}
	c.JSON(http.StatusOK, resp)
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{
		Success: false,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	traceID := c.GetString("trace_id")
	log := logger.FromContext(c.Request.Context()).With(
		zap.String("route", c.FullPath()),
		zap.Error(err),
	)

	var fieldErr *FieldError
	switch {
	case errors.As(err, &fieldErr):
		log.Info("request validation failed")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request",
			Error:   fieldErr.Error(),
			Errors:  []FieldError{*fieldErr},
			TraceID: traceID,
		})
	case errors.Is(err, ErrInvalidInput):
		log.Info("request validation failed")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request",
			Error:   err.Error(),
			TraceID: traceID,
		})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: capitalize(err.Error()),
			Error:   ErrNotFound.Error(),
			TraceID: traceID,
		})
	case errors.Is(err, ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Invalid credentials",
			TraceID: traceID,
		})
	case errors.Is(err, ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Unauthorized",
			TraceID: traceID,
		})
	case errors.Is(err, ErrExternalServiceFailure):
		log.Error("billing service call failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Billing service request failed; the audit comment was recorded",
			Error:   ErrExternalServiceFailure.Error(),
			TraceID: traceID,
		})
	case errors.Is(err, ErrDataStoreUnavailable):
		log.Error("data store error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
			Error:   ErrDataStoreUnavailable.Error(),
			TraceID: traceID,
		})
	default:
		log.Error("unhandled service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
			Error:   "internal error",
			TraceID: traceID,
		})
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
