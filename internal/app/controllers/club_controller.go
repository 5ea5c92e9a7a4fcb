package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ardaseremet/clubhub/internal/app/models/dto"
	"github.com/ardaseremet/clubhub/internal/app/services"
	"github.com/ardaseremet/clubhub/internal/middleware"
	"github.com/ardaseremet/clubhub/internal/pkg/helpers"
)

// ClubController handles club endpoints
type ClubController struct {
	clubService services.ClubService
	logger      zerolog.Logger
}

// NewClubController creates a new ClubController
func NewClubController(clubService services.ClubService, logger zerolog.Logger) *ClubController {
	return &ClubController{
		clubService: clubService,
		logger:      logger,
	}
}

// CreateClub handles POST /clubs
func (c *ClubController) CreateClub(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateClubRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	club, err := c.clubService.CreateClub(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(club))
}

// GetClubs handles GET /clubs
func (c *ClubController) GetClubs(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	filter := &dto.ClubFilterRequest{
		Page:     page,
		PageSize: size,
	}
	if search := ctx.Query("search"); search != "" {
		filter.Search = &search
	}
	if category := ctx.Query("category"); category != "" {
		filter.Category = &category
	}

	clubs, err := c.clubService.GetClubs(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(clubs))
}

// GetClub handles GET /clubs/:id
func (c *ClubController) GetClub(ctx *gin.Context) {
	clubID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	club, err := c.clubService.GetClubByID(ctx, clubID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(club))
}

// GetClubMembers handles GET /clubs/:id/members
func (c *ClubController) GetClubMembers(ctx *gin.Context) {
	clubID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	members, err := c.clubService.GetClubMembers(ctx, clubID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(members))
}

// UpdateClub handles PUT /clubs/:id
func (c *ClubController) UpdateClub(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	clubID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateClubRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	club, err := c.clubService.UpdateClub(ctx, userID, clubID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(club))
}

// JoinClub handles POST /clubs/:id/members
func (c *ClubController) JoinClub(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	clubID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.clubService.JoinClub(ctx, userID, clubID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Joined club"}))
}

// LeaveClub handles DELETE /clubs/:id/members
func (c *ClubController) LeaveClub(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	clubID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.clubService.LeaveClub(ctx, userID, clubID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Left club"}))
}

// GrantAdmin handles PUT /clubs/:id/admins/:userId
func (c *ClubController) GrantAdmin(ctx *gin.Context) {
	c.setAdmin(ctx, true)
}

// RevokeAdmin handles DELETE /clubs/:id/admins/:userId
func (c *ClubController) RevokeAdmin(ctx *gin.Context) {
	c.setAdmin(ctx, false)
}

func (c *ClubController) setAdmin(ctx *gin.Context, isAdmin bool) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	clubID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}

	if err := c.clubService.SetAdmin(ctx, actorID, clubID, userID, isAdmin); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Admin flag updated"}))
}
