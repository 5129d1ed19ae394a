package viewmodels

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/jotme/internal/client/api"
	"github.com/dmitrijs2005/jotme/internal/client/models"
	"github.com/dmitrijs2005/jotme/internal/logging"
)

// JotsService is the part of the jots resource the history needs.
type JotsService interface {
	History(ctx context.Context) ([]models.Jot, []models.Todo, error)
	CompleteTodo(ctx context.Context, todoID int64) error
}

// HistoryState is a snapshot of History.
type HistoryState struct {
	Jots         []models.Jot
	Todos        []models.Todo
	Loading      bool
	ErrorMessage string
	Loaded       bool
}

// History backs the jot history and reminders screens.
type History struct {
	svc      JotsService
	log      logging.Logger
	dispatch Dispatcher

	mu        sync.Mutex
	jots      []models.Jot
	todos     []models.Todo
	loading   bool
	errMsg    string
	firstLoad bool

	pending sync.WaitGroup
}

func NewHistory(svc JotsService, log logging.Logger, opts ...Option) *History {
	o := applyOptions(opts)
	return &History{
		svc:       svc,
		log:       log,
		dispatch:  o.dispatch,
		loading:   true,
		firstLoad: true,
	}
}

// FetchIfNeeded loads the history unless a load has already completed.
func (h *History) FetchIfNeeded(ctx context.Context) error {
	h.mu.Lock()
	first := h.firstLoad
	h.mu.Unlock()

	if !first {
		return nil
	}
	return h.fetch(ctx)
}

// Refresh reloads the history unconditionally.
func (h *History) Refresh(ctx context.Context) error {
	return h.fetch(ctx)
}

func (h *History) fetch(ctx context.Context) error {
	h.update(func() { h.loading = true })

	jots, todos, err := h.svc.History(ctx)

	h.update(func() {
		h.loading = false
		h.firstLoad = false
		if err != nil {
			h.errMsg = err.Error()
			return
		}
		h.jots = jots
		h.todos = todos
		h.errMsg = ""
	})

	if err != nil {
		h.log.Warn(ctx, "history fetch failed", "error", err)
	}
	return err
}

// MarkCompleted removes the todo from the list at once and tells the
// backend in the background. A backend failure is logged and shown as the
// error message; the todo stays removed. It reports whether the todo was in
// the list.
func (h *History) MarkCompleted(ctx context.Context, todoID int64) bool {
	h.mu.Lock()
	removed := slices.ContainsFunc(h.todos, func(t models.Todo) bool { return t.ID == todoID })
	h.mu.Unlock()

	h.update(func() {
		h.todos = slices.DeleteFunc(slices.Clone(h.todos), func(t models.Todo) bool { return t.ID == todoID })
	})

	h.pending.Add(1)
	api.Go(context.WithoutCancel(ctx), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, h.svc.CompleteTodo(ctx, todoID)
	}).Then(func(_ struct{}, err error) {
		defer h.pending.Done()

		if err != nil {
			h.log.Error(ctx, "failed to mark todo completed", "todo_id", todoID, "error", err)
			h.update(func() { h.errMsg = err.Error() })
			return
		}
		h.log.Debug(ctx, "todo completed", "todo_id", todoID)
	})

	return removed
}

// Wait blocks until background completions started by MarkCompleted finish.
func (h *History) Wait() {
	h.pending.Wait()
}

// State returns a copy of the raw state.
func (h *History) State() HistoryState {
	h.mu.Lock()
	defer h.mu.Unlock()

	return HistoryState{
		Jots:         append([]models.Jot(nil), h.jots...),
		Todos:        append([]models.Todo(nil), h.todos...),
		Loading:      h.loading,
		ErrorMessage: h.errMsg,
		Loaded:       !h.firstLoad,
	}
}

// Jots returns the jots newest first.
func (h *History) Jots() []models.Jot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return models.SortJotsNewestFirst(h.jots)
}

// Todos returns the open todos by due date, undated ones first.
func (h *History) Todos() []models.Todo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return models.SortTodosByDueDate(h.todos)
}

func (h *History) update(fn func()) {
	h.dispatch(func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		fn()
	})
}
