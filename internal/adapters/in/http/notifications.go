package http

import (
	"time"

	"station/internal/core/domain/model/kernel"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// StreamNotifications handles GET /api/v1/notifications. The connection is
// upgraded to a WebSocket that receives every notification as JSON. With orderId
// only that order is followed and the stream is closed once the order is deleted.
func (s *Server) StreamNotifications(ctx echo.Context, params StreamNotificationsParams) error {
	var orderID *kernel.UUID
	if params.OrderID != nil {
		id, err := toID("orderId", *params.OrderID)
		if err != nil {
			return s.fail(ctx, err)
		}
		orderID = &id
	}

	conn, err := s.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		// The upgrader already answered the client.
		s.logger.WarnContext(ctx.Request().Context(), "WebSocket upgrade failed", "error", err)
		return nil
	}
	defer conn.Close()

	sub := s.hub.Subscribe(orderID)
	defer sub.Close()

	closed := s.readUntilClosed(conn)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case n, ok := <-sub.C():
			if !ok {
				deadline := time.Now().Add(writeWait)
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "order deleted"), deadline)
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err = conn.WriteJSON(n); err != nil {
				return nil
			}
		case <-ticker.C:
			if err = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		case <-closed:
			return nil
		case <-ctx.Request().Context().Done():
			return nil
		}
	}
}

// readUntilClosed drains client frames so control messages are processed. The
// returned channel is closed when the client goes away.
func (s *Server) readUntilClosed(conn *websocket.Conn) <-chan struct{} {
	closed := make(chan struct{})

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return closed
}
