package controllers

import (
	"context"

	"github.com/gin-gonic/gin"

	"checkoutdash/pkg/utils"
)

func respondList[T any](c *gin.Context, load func(context.Context) ([]T, error)) {
	items, err := load(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	utils.RespondSuccess(c, items, "")
}
