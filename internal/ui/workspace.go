package ui

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"inventario-ativos/internal/models"
	"inventario-ativos/internal/store"
)

type EventKind string

const (
	EventGrid  EventKind = "grid"
	EventToast EventKind = "toast"
)

// Event é entregue aos assinantes do workspace (stream SSE).
type Event struct {
	Kind   EventKind
	Ativos []models.Ativo
	Filter models.Filter
	Toast  Toast
}

const subscriberBuffer = 16

// JournalFunc recebe as mutações aceitas, identificadas pelo workspace.
type JournalFunc func(ctx context.Context, workspace string, m store.Mutation)

type WorkspaceOptions struct {
	Debounce time.Duration
	Clock    Clock
	Logger   zerolog.Logger
	Journal  JournalFunc
}

// Workspace: estado de interface de uma sessão: cache de ativos, filtro em
// digitação, diálogo, toasts e assinantes de eventos.
type Workspace struct {
	ID     string
	Store  *store.Store
	Modal  *Modal
	Toasts *Toasts

	debouncer *Debouncer
	clock     Clock
	log       zerolog.Logger

	loadMu sync.Mutex

	mu       sync.Mutex
	draft    models.Filter
	subs     map[chan Event]struct{}
	lastSeen time.Time
	closed   bool
}

func NewWorkspace(id string, api store.API, opts WorkspaceOptions) *Workspace {
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	log := opts.Logger.With().Str("workspace", id).Logger()

	w := &Workspace{
		ID:        id,
		Modal:     NewModal(),
		Toasts:    NewToasts(opts.Clock, DefaultToastLimit),
		debouncer: NewDebouncer(opts.Debounce),
		clock:     opts.Clock,
		log:       log,
		subs:      map[chan Event]struct{}{},
		lastSeen:  opts.Clock.Now(),
	}

	storeOpts := []store.Option{
		store.WithLogger(log),
		store.WithErrorHook(func(error) {
			w.Toasts.Error("Falha ao buscar dados da API.")
		}),
	}
	if opts.Journal != nil {
		storeOpts = append(storeOpts, store.WithMutationObserver(func(ctx context.Context, m store.Mutation) {
			opts.Journal(ctx, id, m)
		}))
	}
	w.Store = store.New(api, storeOpts...)

	w.Toasts.OnPush(func(t Toast) {
		w.publish(Event{Kind: EventToast, Toast: t})
	})
	return w
}

// EnsureLoaded faz o refresh inicial uma única vez.
func (w *Workspace) EnsureLoaded(ctx context.Context) {
	w.loadMu.Lock()
	defer w.loadMu.Unlock()
	if w.Store.Loaded() {
		return
	}
	_ = w.Store.Refresh(ctx)
}

// Refresh relê a lista e publica a grade atualizada.
func (w *Workspace) Refresh(ctx context.Context) []models.Ativo {
	_ = w.Store.Refresh(ctx)
	return w.publishGrid()
}

//
// FILTROS
//

func (w *Workspace) Draft() models.Filter {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// TypeFilter registra uma tecla num campo de texto. O filtro só é aplicado
// quando a digitação para por um intervalo de debounce.
func (w *Workspace) TypeFilter(field, value string) error {
	w.mu.Lock()
	err := w.draft.Set(field, value)
	w.mu.Unlock()
	if err != nil {
		return err
	}

	w.debouncer.Trigger(func() {
		w.Store.ApplyFilter(w.Draft())
		w.publishGrid()
	})
	return nil
}

// SelectFilter aplica imediatamente uma mudança de seleção, junto com o que
// já foi digitado.
func (w *Workspace) SelectFilter(field, value string) ([]models.Ativo, error) {
	w.mu.Lock()
	err := w.draft.Set(field, value)
	draft := w.draft
	w.mu.Unlock()
	if err != nil {
		return nil, err
	}

	w.debouncer.Stop()
	w.Store.ApplyFilter(draft)
	return w.publishGrid(), nil
}

func (w *Workspace) ClearFilter() []models.Ativo {
	w.mu.Lock()
	w.draft = models.Filter{}
	w.mu.Unlock()

	w.debouncer.Stop()
	w.Store.ClearFilter()
	return w.publishGrid()
}

// FilterPending informa se há digitação aguardando o debounce.
func (w *Workspace) FilterPending() bool {
	return w.debouncer.Pending()
}

//
// EVENTOS
//

// Subscribe devolve um canal de eventos e a função que encerra a assinatura.
func (w *Workspace) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	w.subs[ch] = struct{}{}
	w.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			if _, ok := w.subs[ch]; ok {
				delete(w.subs, ch)
				close(ch)
			}
		})
	}
}

func (w *Workspace) publishGrid() []models.Ativo {
	display := w.Store.Display()
	w.publish(Event{Kind: EventGrid, Ativos: display, Filter: w.Store.Filter()})
	return display
}

func (w *Workspace) publish(e Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for ch := range w.subs {
		select {
		case ch <- e:
		default:
			w.log.Warn().Str("event", string(e.Kind)).Msg("subscriber too slow, event dropped")
		}
	}
}

//
// CICLO DE VIDA
//

func (w *Workspace) Touch() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastSeen = w.clock.Now()
}

func (w *Workspace) LastSeen() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

// Close cancela o debounce pendente e encerra os assinantes.
func (w *Workspace) Close() {
	w.debouncer.Stop()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	for ch := range w.subs {
		close(ch)
		delete(w.subs, ch)
	}
}
