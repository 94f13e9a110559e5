package websocket

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/chatwii/backend/internal/logger"
	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Handler handles WebSocket HTTP upgrade requests
type Handler struct {
	hub       *Hub
	jwtSecret []byte
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, jwtSecret []byte) *Handler {
	return &Handler{hub: hub, jwtSecret: jwtSecret}
}

// HandleWebSocket upgrades the HTTP connection and registers the client.
// Authentication is a JWT in the ?token= query param or the
// Authorization: Bearer header.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	userID, nickname, err := h.authenticate(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "authentication_failed",
			"message": err.Error(),
		})
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // origin checks are handled by the CORS layer
		CompressionMode:    websocket.CompressionContextTakeover,
	})
	if err != nil {
		logger.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(h.hub, conn, userID, nickname)
	client.RemoteAddr = c.ClientIP()

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// authenticate validates the JWT and extracts identity claims
func (h *Handler) authenticate(c *gin.Context) (userID, nickname string, err error) {
	tokenString := c.Query("token")
	if tokenString == "" {
		header := c.GetHeader("Authorization")
		tokenString = strings.TrimPrefix(header, "Bearer ")
	}
	if tokenString == "" {
		return "", "", fmt.Errorf("missing token")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return h.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("invalid claims")
	}

	userID, _ = claims["user_id"].(string)
	if userID == "" {
		// Standard subject claim as fallback
		userID, _ = claims["sub"].(string)
	}
	if userID == "" {
		return "", "", fmt.Errorf("token missing user id")
	}
	nickname, _ = claims["nickname"].(string)

	return userID, nickname, nil
}
