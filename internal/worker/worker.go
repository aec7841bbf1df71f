package worker

import "context"

// Worker - фоновая задача с управляемым жизненным циклом
type Worker interface {
	// Start блокируется до остановки воркера
	Start(ctx context.Context) error

	// Stop сигнализирует о завершении и не ждет его
	Stop() error

	Name() string
}
