package controllers

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"checkoutdash/internal/models/request_models"
	"checkoutdash/pkg/middleware"
	"checkoutdash/pkg/utils"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// pageParams reads ?page and ?limit. Both must be positive integers and the
// limit may not exceed maxLimit.
func pageParams(c *gin.Context, maxLimit int) (request_models.PageRequest, error) {
	page, err := positiveQuery(c, "page", defaultPage)
	if err != nil {
		return request_models.PageRequest{}, err
	}
	limit, err := positiveQuery(c, "limit", defaultLimit)
	if err != nil {
		return request_models.PageRequest{}, err
	}
	if maxLimit > 0 && limit > maxLimit {
		return request_models.PageRequest{}, utils.NewFieldError("limit", "must not exceed "+strconv.Itoa(maxLimit))
	}
	req := request_models.PageRequest{Page: page, Limit: limit}
	if err := req.Validate(); err != nil {
		return request_models.PageRequest{}, err
	}
	return req, nil
}

func positiveQuery(c *gin.Context, key string, fallback int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, utils.NewFieldError(key, "must be a positive integer")
	}
	return v, nil
}

func idParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, utils.NewFieldError("id", "must be a positive integer")
	}
	return uint(id), nil
}

// actingAdmin is the authenticated username, or "" to let the service apply
// its default.
func actingAdmin(c *gin.Context) string {
	return c.GetString(middleware.UsernameKey)
}

// bindJSON decodes the body into req. A failed binding tag becomes a
// FieldError named after the JSON key; malformed bodies wrap ErrInvalidInput.
func bindJSON(c *gin.Context, req any) error {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg := "is invalid"
		if fe.Tag() == "required" {
			msg = "is required"
		}
		return utils.NewFieldError(jsonName(req, fe.StructField()), msg)
	}
	return fmt.Errorf("%w: malformed request body", utils.ErrInvalidInput)
}

func jsonName(req any, field string) string {
	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if sf, ok := t.FieldByName(field); ok {
		if name, _, _ := strings.Cut(sf.Tag.Get("json"), ","); name != "" && name != "-" {
			return name
		}
	}
	return field
}
