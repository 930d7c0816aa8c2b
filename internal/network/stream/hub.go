package stream

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/viorex/viorex-exchange/internal/logger"
)

const writeTimeout = 5 * time.Second

// Hub - раздача срезов таблицы рынка по websocket.
// Клиенты ничего не шлют, соединение живёт до закрытия с их стороны.
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
}

// Создание хаба
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// демо-сервис, происхождение не проверяем
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWS - апгрейд HTTP-соединения и регистрация подписчика
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("Failed to upgrade websocket:", err.Error())
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
	logger.Info("Market stream subscriber connected", "remote", conn.RemoteAddr().String())

	// читаем только ради обнаружения закрытия
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast - рассылка значения всем подписчикам в JSON
func (h *Hub) Broadcast(v interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(v); err != nil {
			logger.Warn("Dropping market stream subscriber:", err.Error())
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// Close - закрывает все подключения
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}
