package handler

import (
	"cryptodesk/internal/ticker"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

type Subscriber interface {
	Subscribe() (*ticker.Subscription, error)
}

type Handler struct {
	subscriber Subscriber
	upgrader   websocket.Upgrader
}

func NewTickerHandler(subscriber Subscriber) *Handler {
	return &Handler{
		subscriber: subscriber,
		upgrader:   websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Stream godoc
// @Summary Live ticker stream
// @Description Websocket. Frames carry event (connected or ticker_update) and data; ticker_update data carries BTC, ETH, SOL, XRP and ts in epoch millis
// @Tags Market
// @Success 101 {object} domain.TickerUpdate
// @Router /ticker/ws [get]
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "TickerStream"}).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sub, err := h.subscriber.Subscribe()
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "TickerStream"}).Error("ticker subscription failed")
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "ticker unavailable"),
			time.Now().Add(writeWait))
		return
	}
	defer sub.Close()

	// the read loop only notices disconnects and answers pings
	gone := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(gone)
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-r.Context().Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		case <-gone:
			return
		case <-ping.C:
			if err = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err = conn.WriteJSON(ev); err != nil {
				logrus.WithError(err).Debug("websocket write failed, dropping subscriber")
				return
			}
		}
	}
}
