package notifier

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viorex/viorex-exchange/internal/models"
)

// Hub - транзитные уведомления пользователю. Как и в интерфейсе,
// одновременно показывается одно уведомление: новое вытесняет старое.
// info и success истекают по TTL, error висит до закрытия или замены.
type Hub struct {
	mu      sync.Mutex
	current *models.Notification
	ttl     time.Duration

	// подменяется в тестах
	now func() time.Time
}

// Создание хаба уведомлений
func NewHub(ttl time.Duration) *Hub {
	return &Hub{ttl: ttl, now: time.Now}
}

// Push публикует уведомление, заменяя текущее
func (h *Hub) Push(message string, severity string) models.Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	notification := models.Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Severity:  severity,
		CreatedAt: h.now(),
	}
	h.current = &notification
	return notification
}

// List возвращает живые уведомления (ноль или одно).
// Истечение проверяется лениво при чтении.
func (h *Hub) List() []models.Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == nil {
		return []models.Notification{}
	}
	if h.current.Severity != models.SeverityError &&
		h.now().Sub(h.current.CreatedAt) >= h.ttl {
		h.current = nil
		return []models.Notification{}
	}
	return []models.Notification{*h.current}
}

// Dismiss закрывает уведомление по идентификатору
func (h *Hub) Dismiss(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == nil || h.current.ID != id {
		return false
	}
	h.current = nil
	return true
}
