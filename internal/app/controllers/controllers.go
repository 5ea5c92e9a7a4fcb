package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ardaseremet/clubhub/internal/app/models/dto"
	"github.com/ardaseremet/clubhub/internal/middleware"
)

// requireUserID reads the authenticated user from the context, writing a 401
// and returning false when the auth middleware did not run
func requireUserID(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return 0, false
	}
	return userID, true
}

// pathID parses an int64 path parameter, writing a 400 on failure
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		middleware.HandleValidationError(ctx, err)
		return 0, false
	}
	return id, true
}
