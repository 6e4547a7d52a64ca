package handlers

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// WebsocketUpgrade gates the upgrade behind the JWT middleware.
func WebsocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// NotificationSocket keeps the connection registered in the hub for the
// lifetime of the socket. The client only listens; inbound frames are
// discarded.
func NotificationSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		token, ok := conn.Locals("user").(*jwt.Token)
		if !ok {
			conn.Close()
			return
		}
		claims := token.Claims.(jwt.MapClaims)
		userID, err := uuid.Parse(claims["user_id"].(string))
		if err != nil {
			conn.Close()
			return
		}

		hub.Register(userID, conn)
		defer hub.Unregister(userID, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
