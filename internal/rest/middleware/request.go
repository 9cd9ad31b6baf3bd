package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/givepoint/givepoint/internal/types"
	"github.com/google/uuid"
)

// RequestIDMiddleware tags the request context and response with a
// request id, generating one when the caller did not supply it.
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)

	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}
