package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ardaseremet/clubhub/internal/app/models/dto"
	"github.com/ardaseremet/clubhub/internal/app/services"
	"github.com/ardaseremet/clubhub/internal/middleware"
)

// ChatController handles chat endpoints
type ChatController struct {
	chatService services.ChatService
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      logger,
	}
}

// OpenDirectChat handles POST /chats/direct
func (c *ChatController) OpenDirectChat(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateDirectChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	chat, err := c.chatService.OpenDirectChat(ctx, userID, req.PeerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(chat))
}

// CreateGroupChat handles POST /chats/group
func (c *ChatController) CreateGroupChat(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateGroupChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	chat, err := c.chatService.CreateGroupChat(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(chat))
}

// GetChats handles GET /chats
func (c *ChatController) GetChats(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	chats, err := c.chatService.GetUserChats(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(chats))
}

// GetMessages handles GET /chats/:chatId/messages
func (c *ChatController) GetMessages(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.GetMessagesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	messages, err := c.chatService.GetMessages(ctx, userID, ctx.Param("chatId"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(messages))
}

// SendMessage handles POST /chats/:chatId/messages
func (c *ChatController) SendMessage(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	message, err := c.chatService.SendMessage(ctx, userID, ctx.Param("chatId"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}

// MarkRead handles POST /chats/:chatId/read
func (c *ChatController) MarkRead(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	if err := c.chatService.MarkRead(ctx, userID, ctx.Param("chatId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Chat marked read"}))
}

// JoinGroupChat handles POST /chats/:chatId/join
func (c *ChatController) JoinGroupChat(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	if err := c.chatService.JoinGroupChat(ctx, userID, ctx.Param("chatId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Joined chat"}))
}

// DeleteGroupChat handles DELETE /chats/:chatId
func (c *ChatController) DeleteGroupChat(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	if err := c.chatService.DeleteGroupChat(ctx, userID, ctx.Param("chatId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Chat deleted"}))
}

// ClearHistory handles DELETE /chats/:chatId/messages
func (c *ChatController) ClearHistory(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	if err := c.chatService.ClearHistory(ctx, userID, ctx.Param("chatId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "History cleared"}))
}

// RemoveFromList handles DELETE /me/chats/:chatId
func (c *ChatController) RemoveFromList(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	if err := c.chatService.RemoveFromList(ctx, userID, ctx.Param("chatId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Chat removed from list"}))
}
