package orderControllers

import (
	"github.com/Burhanmalu/LUMARIYA/events"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// GET /api/admin/ws/orders
// Streams order events to an admin dashboard until the socket closes.
func OrderWebSocketHandler(hub *events.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := hub.Serve(c.Writer, c.Request); err != nil {
			zerolog.Ctx(c.Request.Context()).Debug().Err(err).Msg("websocket upgrade failed")
		}
	}
}
