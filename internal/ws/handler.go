package ws

import (
	"log"
	"net/http"
	"strings"

	"job-portal/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler upgrades authenticated requests into hub clients.
type Handler struct {
	hub      *Hub
	jwt      jwt.Service
	logger   *log.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, jwtSvc jwt.Service, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		hub:    hub,
		jwt:    jwtSvc,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// HandleNotifications accepts the access token as ?token= (browsers cannot
// set headers on the handshake) or as a bearer header.
func (h *Handler) HandleNotifications(c fiber.Ctx) error {
	userID, err := h.authenticate(c)
	if err != nil {
		return err
	}

	return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !websocket.IsWebSocketUpgrade(r) {
			http.Error(w, "websocket upgrade required", http.StatusUpgradeRequired)
			return
		}
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Printf("ws=upgrade status=error user=%s err=%v", userID, err)
			return
		}

		client := NewClient(h.hub, conn, userID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})(c)
}

func (h *Handler) authenticate(c fiber.Ctx) (uuid.UUID, error) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		if v, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer "); ok {
			token = strings.TrimSpace(v)
		}
	}
	if token == "" {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil || h.jwt.IsRefreshToken(claims) {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return claims.UserID, nil
}
