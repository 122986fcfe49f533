package chat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/partchat/internal/domain"
	"github.com/liliang-cn/partchat/internal/service"
)

// WelcomeMessage greets a freshly created session.
const WelcomeMessage = "Welcome to PartSelect Chat! How can I help you with refrigerator or dishwasher parts today?"

// Handler handles chat API requests
type Handler struct {
	chatService *service.ChatService
}

// NewHandler creates a new chat handler
func NewHandler(chatService *service.ChatService) *Handler {
	return &Handler{chatService: chatService}
}

// RegisterRoutes registers chat routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/session", h.CreateSession)
	r.POST("/message", h.SendMessage)
	r.GET("/history/:sessionId", h.History)
	r.DELETE("/session/:sessionId", h.ClearSession)
}

// CreateSession starts a new conversation
func (h *Handler) CreateSession(c *gin.Context) {
	sess, err := h.chatService.CreateSession(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": sess.ID,
		"message":   WelcomeMessage,
	})
}

// SendMessage runs one conversation turn
func (h *Handler) SendMessage(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.SessionID == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID and message are required"})
		return
	}

	resp, err := h.chatService.Chat(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// History returns the transcript of a session
func (h *Handler) History(c *gin.Context) {
	sess, err := h.chatService.History(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sess)
}

// ClearSession drops a session
func (h *Handler) ClearSession(c *gin.Context) {
	if err := h.chatService.ClearSession(c.Request.Context(), c.Param("sessionId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session cleared successfully"})
}
