package models

import "time"

// Уровни важности уведомлений
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityError   = "error"
)

// Notification - транзитное уведомление пользователю.
// info и success живут ограниченное время, error висит до замены или закрытия.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}
