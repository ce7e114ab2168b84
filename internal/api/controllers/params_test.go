package controllers

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkoutdash/internal/models/request_models"
	"checkoutdash/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func contextFor(target string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestPageParams(t *testing.T) {
	page, err := pageParams(contextFor("/x"), 100)
	require.NoError(t, err)
	assert.Equal(t, request_models.PageRequest{Page: 1, Limit: 10}, page)
	assert.Equal(t, 0, page.Offset())

	page, err = pageParams(contextFor("/x?page=3&limit=25"), 100)
	require.NoError(t, err)
	assert.Equal(t, 50, page.Offset())

	page, err = pageParams(contextFor("/x?limit=100"), 100)
	require.NoError(t, err)
	assert.Equal(t, 100, page.Limit)

	huge := "/x?limit=10&page=" + strconv.Itoa(math.MaxInt/10+2)
	for _, target := range []string{"/x?page=0", "/x?page=-2", "/x?limit=abc", "/x?limit=101", huge} {
		_, err := pageParams(contextFor(target), 100)
		var fieldErr *utils.FieldError
		assert.ErrorAs(t, err, &fieldErr, target)
	}
}

func TestIDParam(t *testing.T) {
	c := contextFor("/x")
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, err := idParam(c)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	c.Params = gin.Params{{Key: "id", Value: "0"}}
	_, err = idParam(c)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestPageRequestValidate(t *testing.T) {
	assert.NoError(t, request_models.PageRequest{Page: 1, Limit: 10}.Validate())
	assert.NoError(t, request_models.PageRequest{Page: math.MaxInt/10 + 1, Limit: 10}.Validate())

	err := request_models.PageRequest{Page: math.MaxInt/10 + 2, Limit: 10}.Validate()
	var fieldErr *utils.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "page", fieldErr.Field)

	assert.ErrorIs(t, request_models.PageRequest{Page: 1, Limit: 0}.Validate(), utils.ErrInvalidInput)
}

func jsonContext(body string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindJSON(t *testing.T) {
	var req request_models.CancelSubscriptionRequest
	require.NoError(t, bindJSON(jsonContext(`{"subscriptionId":1,"productId":"app-1","userId":"10"}`), &req))
	assert.Equal(t, uint(1), req.SubscriptionID)

	var fieldErr *utils.FieldError
	err := bindJSON(jsonContext(`{"subscriptionId":1,"productId":"app-1"}`), &request_models.CancelSubscriptionRequest{})
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "userId", fieldErr.Field)
	assert.Equal(t, "is required", fieldErr.Message)

	err = bindJSON(jsonContext(`{"subscriptionId":1}`), &request_models.UpdateEndDateRequest{})
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "newEndDate", fieldErr.Field)

	err = bindJSON(jsonContext(`{"subscriptionId":`), &request_models.UpdateEndDateRequest{})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
	assert.False(t, errors.As(err, &fieldErr))
}
