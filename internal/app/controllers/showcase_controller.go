package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ardaseremet/clubhub/internal/app/models/dto"
	"github.com/ardaseremet/clubhub/internal/app/services"
	"github.com/ardaseremet/clubhub/internal/middleware"
)

// ShowcaseController handles the ranked discovery feed endpoint
type ShowcaseController struct {
	showcaseService services.ShowcaseService
	logger          zerolog.Logger
}

// NewShowcaseController creates a new ShowcaseController
func NewShowcaseController(showcaseService services.ShowcaseService, logger zerolog.Logger) *ShowcaseController {
	return &ShowcaseController{
		showcaseService: showcaseService,
		logger:          logger,
	}
}

// GetShowcase handles GET /showcase. Rankings are computed fresh on every
// call; nothing here is cached.
func (c *ShowcaseController) GetShowcase(ctx *gin.Context) {
	showcase, err := c.showcaseService.GetShowcase(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(showcase))
}
