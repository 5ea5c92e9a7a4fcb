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

// PostController handles post endpoints
type PostController struct {
	postService services.PostService
	logger      zerolog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService, logger zerolog.Logger) *PostController {
	return &PostController{
		postService: postService,
		logger:      logger,
	}
}

// CreatePost handles POST /clubs/:id/posts
func (c *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	clubID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	post, err := c.postService.CreatePost(ctx, userID, clubID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// GetClubPosts handles GET /clubs/:id/posts
func (c *PostController) GetClubPosts(ctx *gin.Context) {
	clubID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	posts, err := c.postService.GetClubPosts(ctx, clubID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// GetPost handles GET /posts/:id
func (c *PostController) GetPost(ctx *gin.Context) {
	postID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	post, err := c.postService.GetPostByID(ctx, postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// DeletePost handles DELETE /posts/:id
func (c *PostController) DeletePost(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	postID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.postService.DeletePost(ctx, userID, postID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Post deleted"}))
}

// AddView handles POST /posts/:id/views
func (c *PostController) AddView(ctx *gin.Context) {
	postID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.postService.AddView(ctx, postID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "View counted"}))
}

// LikePost handles POST /posts/:id/likes
func (c *PostController) LikePost(ctx *gin.Context) {
	postID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.postService.LikePost(ctx, postID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Post liked"}))
}

// UnlikePost handles DELETE /posts/:id/likes
func (c *PostController) UnlikePost(ctx *gin.Context) {
	postID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.postService.UnlikePost(ctx, postID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Post unliked"}))
}
