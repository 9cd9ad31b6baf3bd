package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandlerRendersEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/boom", func(c *gin.Context) {
		c.Error(ierr.NewError("campaign not found").
			WithHint("Campaign not found").
			WithReportableDetails(map[string]any{"campaign_id": "camp_1"}).
			Mark(ierr.ErrNotFound))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp ierr.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Campaign not found", resp.Error.Display)
	assert.Equal(t, "camp_1", resp.Error.Details["campaign_id"])
}

func TestErrorHandlerSignatureErrorIsBadRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorHandler())
	router.POST("/webhook", func(c *gin.Context) {
		c.Error(ierr.NewError("invalid webhook signature").
			WithHint("Webhook payload could not be verified").
			Mark(ierr.ErrSignature))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
