package ui

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"inventario-ativos/internal/apiclient"
)

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
	ToastWarning ToastKind = "warning"
)

const (
	ToastDuration = 5 * time.Second
	// acima disso os mais antigos são descartados
	DefaultToastLimit = 10
)

type Toast struct {
	ID        string
	Kind      ToastKind
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

func (t Toast) Expired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// Toasts: fila de notificações de um workspace.
type Toasts struct {
	clock Clock
	limit int

	mu     sync.Mutex
	items  []Toast
	onPush func(Toast)
}

func NewToasts(clock Clock, limit int) *Toasts {
	if clock == nil {
		clock = RealClock{}
	}
	if limit <= 0 {
		limit = DefaultToastLimit
	}
	return &Toasts{clock: clock, limit: limit}
}

// OnPush registra quem recebe cada toast novo (o workspace repassa aos assinantes SSE).
func (t *Toasts) OnPush(fn func(Toast)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onPush = fn
}

func (t *Toasts) Push(kind ToastKind, message string) Toast {
	toast := Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: t.clock.Now(),
		Duration:  ToastDuration,
	}

	t.mu.Lock()
	t.items = append(t.items, toast)
	if len(t.items) > t.limit {
		t.items = append([]Toast{}, t.items[len(t.items)-t.limit:]...)
	}
	onPush := t.onPush
	t.mu.Unlock()

	if onPush != nil {
		onPush(toast)
	}
	return toast
}

func (t *Toasts) Success(message string) Toast { return t.Push(ToastSuccess, message) }
func (t *Toasts) Error(message string) Toast   { return t.Push(ToastError, message) }
func (t *Toasts) Info(message string) Toast    { return t.Push(ToastInfo, message) }
func (t *Toasts) Warning(message string) Toast { return t.Push(ToastWarning, message) }

// Pending devolve os toasts ainda visíveis, sem removê-los.
func (t *Toasts) Pending() []Toast {
	now := t.clock.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	out := []Toast{}
	for _, toast := range t.items {
		if !toast.Expired(now) {
			out = append(out, toast)
		}
	}
	return out
}

// Dismiss remove um toast já exibido pelo navegador via SSE.
func (t *Toasts) Dismiss(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, toast := range t.items {
		if toast.ID == id {
			t.items = append(t.items[:i:i], t.items[i+1:]...)
			return
		}
	}
}

// Drain devolve os toasts visíveis e esvazia a fila (chamado ao renderizar a página).
func (t *Toasts) Drain() []Toast {
	now := t.clock.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	out := []Toast{}
	for _, toast := range t.items {
		if !toast.Expired(now) {
			out = append(out, toast)
		}
	}
	t.items = nil
	return out
}

// Describe converte um erro em mensagem para o usuário.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, apiclient.ErrNetwork) {
		return "Não foi possível conectar à API."
	}
	return err.Error()
}
