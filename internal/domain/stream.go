package domain

import (
	"time"

	"github.com/google/uuid"
)

// LocationHitEvent - пользователь выбрал локацию по названию.
// Каждая реплика применяет событие к своему индексу автодополнения
type LocationHitEvent struct {
	EventID  uuid.UUID `json:"event_id"`
	Name     string    `json:"name"`
	Instance string    `json:"instance"`
	At       time.Time `json:"at"`
}

// NewLocationHitEvent - создание события для очищенного названия
func NewLocationHitEvent(name, instance string) LocationHitEvent {
	return LocationHitEvent{
		EventID:  uuid.New(),
		Name:     name,
		Instance: instance,
		At:       time.Now().UTC(),
	}
}

// IsValid проверяет, что событие можно применить
func (e *LocationHitEvent) IsValid() bool {
	return e.EventID != uuid.Nil && e.Name != ""
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
