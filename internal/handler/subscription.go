package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"ridebook/internal/realtime"
	"ridebook/internal/service"
)

// SubscriptionHandler upgrades clients to a live feed of their favorites.
type SubscriptionHandler struct {
	favoritesService *service.FavoritesService
	hub              *realtime.Hub
	upgrader         websocket.Upgrader
}

// NewSubscriptionHandler creates a new SubscriptionHandler accepting the given
// origins. "*" accepts any origin.
func NewSubscriptionHandler(favoritesService *service.FavoritesService, hub *realtime.Hub, allowedOrigins []string) *SubscriptionHandler {
	return &SubscriptionHandler{
		favoritesService: favoritesService,
		hub:              hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(r.Header.Get("Origin"), allowedOrigins)
			},
		},
	}
}

// Subscribe handles GET /api/users/:id/subscribe
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID := c.Param("id")

	// Register before loading the snapshots so no add in between is missed.
	sub := h.hub.Subscribe(userID)

	initial, err := h.favoritesService.Snapshots(c.Request.Context(), userID)
	if err != nil {
		h.hub.Unsubscribe(sub)
		respondError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.hub.Unsubscribe(sub)
		log.Printf("websocket upgrade failed: user=%s err=%v", userID, err)
		return
	}

	realtime.Serve(h.hub, conn, sub, initial)
}

func originAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return true
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}
