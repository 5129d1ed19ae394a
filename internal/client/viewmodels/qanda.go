package viewmodels

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/jotme/internal/client/models"
	"github.com/dmitrijs2005/jotme/internal/logging"
)

type Asker interface {
	Ask(ctx context.Context, question string) (models.QandA, error)
}

// QandA keeps the questions asked during this run, oldest first.
type QandA struct {
	svc      Asker
	log      logging.Logger
	dispatch Dispatcher

	mu      sync.Mutex
	items   []models.QandA
	loading bool
	errMsg  string
}

func NewQandA(svc Asker, log logging.Logger, opts ...Option) *QandA {
	o := applyOptions(opts)
	return &QandA{svc: svc, log: log, dispatch: o.dispatch}
}

// Ask sends question and appends the answered record.
func (q *QandA) Ask(ctx context.Context, question string) (models.QandA, error) {
	q.update(func() { q.loading = true })

	qa, err := q.svc.Ask(ctx, question)

	q.update(func() {
		q.loading = false
		if err != nil {
			q.errMsg = err.Error()
			return
		}
		q.items = append(q.items, qa)
		q.errMsg = ""
	})

	if err != nil {
		q.log.Warn(ctx, "question failed", "error", err)
		return models.QandA{}, err
	}
	return qa, nil
}

// Items returns the asked questions.
func (q *QandA) Items() []models.QandA {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]models.QandA(nil), q.items...)
}

// Find returns the first record with the given display key.
func (q *QandA) Find(key string) (models.QandA, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, it := range q.items {
		if it.Key() == key {
			return it, true
		}
	}
	return models.QandA{}, false
}

func (q *QandA) Loading() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.loading
}

func (q *QandA) ErrorMessage() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.errMsg
}

func (q *QandA) update(fn func()) {
	q.dispatch(func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		fn()
	})
}
