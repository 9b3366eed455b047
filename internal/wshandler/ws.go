package wshandler

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gofiber/contrib/websocket"

	"github.com/vbelov/tripline/internal/model"
)

// ChatWsHandler pushes chat events to a single live connection. The
// connection is push-only: inbound frames are read and discarded, they
// are not a command channel.
type ChatWsHandler struct {
	log    *slog.Logger
	name   string
	ws     *websocket.Conn
	ch     chan *model.ChatEvent
	active int32
}

func NewHandler(log *slog.Logger, name string, ws *websocket.Conn) *ChatWsHandler {
	return &ChatWsHandler{
		log:    log.With("client", name),
		name:   name,
		ws:     ws,
		ch:     make(chan *model.ChatEvent, 10),
		active: 1,
	}
}

func (w *ChatWsHandler) GetName() string {
	return w.name
}

func (w *ChatWsHandler) IsActive() bool {
	return w != nil && atomic.LoadInt32(&w.active) == 1
}

func (w *ChatWsHandler) stop() {
	if atomic.CompareAndSwapInt32(&w.active, 1, 0) {
		close(w.ch)
		w.ws.Close()
	}
}

func (w *ChatWsHandler) writer() {
	for evt := range w.ch {
		if !w.IsActive() {
			return
		}

		if evt == nil {
			continue
		}

		_ = w.ws.WriteJSON(evt)
	}
}

func (w *ChatWsHandler) reader() {
	defer w.stop()

	for {
		_, _, err := w.ws.ReadMessage()

		if err != nil {
			return
		}
	}
}

// SendEvent enqueues the event without blocking; a full buffer drops
// the frame rather than stalling the publisher. Returns false once the
// connection has detached.
func (w *ChatWsHandler) SendEvent(evt *model.ChatEvent) bool {
	if w == nil || !w.IsActive() {
		return false
	}

	select {
	case w.ch <- evt:
	default:
	}

	return true
}

func (w *ChatWsHandler) closehandler(code int, text string) error {
	w.log.Info(fmt.Sprintf("closed with code %d, msg %s", code, text))
	w.stop()

	return nil
}

func (w *ChatWsHandler) Listen() {
	w.log.Debug("ws start")
	w.ws.SetCloseHandler(w.closehandler)

	go w.writer()
	w.reader()
	w.log.Debug("ws stop")
}
