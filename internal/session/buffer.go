// Package session хранит скользящее окно последних обменов с моделью.
// Окно живёт столько же, сколько процесс, и никуда не сохраняется.
package session

import (
	"sync"
	"time"
)

// DefaultWindow количество ходов, которое хранится, если размер не задан.
const DefaultWindow = 5

// Turn один обмен: запрос пользователя и ответ модели. После записи не меняется.
type Turn struct {
	Human string
	Reply string
	At    time.Time
}

// Buffer потокобезопасное окно из последних k ходов. Старые ходы вытесняются первыми.
type Buffer struct {
	mu    sync.RWMutex
	turns []Turn
	k     int
}

// NewBuffer создаёт пустое окно на k ходов. При k <= 0 используется DefaultWindow.
func NewBuffer(k int) *Buffer {
	if k <= 0 {
		k = DefaultWindow
	}
	return &Buffer{
		turns: make([]Turn, 0, k),
		k:     k,
	}
}

// Record добавляет ход и вытесняет самые старые, пока длина больше k.
func (b *Buffer) Record(turn Turn) {
	if turn.At.IsZero() {
		turn.At = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.turns = append(b.turns, turn)
	if over := len(b.turns) - b.k; over > 0 {
		// Сдвигаем в начало, чтобы не держать вытесненные строки в базовом массиве.
		n := copy(b.turns, b.turns[over:])
		for i := n; i < len(b.turns); i++ {
			b.turns[i] = Turn{}
		}
		b.turns = b.turns[:n]
	}
}

// Replay возвращает копию окна в хронологическом порядке.
func (b *Buffer) Replay() []Turn {
	b.mu.RLock()
	defer b.mu.RUnlock()

	turns := make([]Turn, len(b.turns))
	copy(turns, b.turns)
	return turns
}

func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.turns)
}

func (b *Buffer) Capacity() int {
	return b.k
}
