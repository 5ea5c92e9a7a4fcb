package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ardaseremet/clubhub/internal/app/models/dto"
	"github.com/ardaseremet/clubhub/internal/app/services"
	"github.com/ardaseremet/clubhub/internal/middleware"
)

// StoryController handles story endpoints
type StoryController struct {
	storyService services.StoryService
	logger       zerolog.Logger
}

// NewStoryController creates a new StoryController
func NewStoryController(storyService services.StoryService, logger zerolog.Logger) *StoryController {
	return &StoryController{
		storyService: storyService,
		logger:       logger,
	}
}

// CreateStory handles POST /clubs/:id/stories
func (c *StoryController) CreateStory(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	clubID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateStoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	story, err := c.storyService.CreateStory(ctx, userID, clubID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(story))
}

// GetStories handles GET /stories
func (c *StoryController) GetStories(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	stories, err := c.storyService.GetUserStories(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stories))
}
