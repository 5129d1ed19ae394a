package resources

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/jotme/internal/client/api"
	"github.com/dmitrijs2005/jotme/internal/client/models"
)

const (
	EndpointAddJot       = "/jots/addJotForUser.php"
	EndpointHistory      = "/jots/getUserJots.php"
	EndpointCompleteTodo = "/jots/completeTodo.php"
)

type Jots struct {
	c Caller
}

func NewJots(c Caller) *Jots {
	return &Jots{c: c}
}

// Add submits a transcribed jot and returns the stored record.
func (j *Jots) Add(ctx context.Context, text string) (models.Jot, error) {
	if strings.TrimSpace(text) == "" {
		return models.Jot{}, fmt.Errorf("%w: jot text is empty", api.ErrInvalidRequest)
	}

	resp, err := call[models.JotResponse](ctx, j.c, api.Request{
		Endpoint: EndpointAddJot,
		Method:   http.MethodPost,
		Params:   api.NewParams("jotText", text),
	})
	if err != nil {
		return models.Jot{}, err
	}
	return resp.Jot, nil
}

// AddWithRecording submits a jot together with the audio it was
// transcribed from, as multipart/form-data.
func (j *Jots) AddWithRecording(ctx context.Context, text string, recording api.FilePayload) (models.Jot, error) {
	if len(recording.Data) == 0 {
		return models.Jot{}, fmt.Errorf("%w: recording is empty", api.ErrInvalidRequest)
	}

	resp, err := call[models.JotResponse](ctx, j.c, api.Request{
		Endpoint: EndpointAddJot,
		Method:   http.MethodPost,
		Params:   api.NewParams("jotText", text),
		File:     &recording,
	})
	if err != nil {
		return models.Jot{}, err
	}
	return resp.Jot, nil
}

// History returns the user's jots and open todos.
func (j *Jots) History(ctx context.Context) ([]models.Jot, []models.Todo, error) {
	resp, err := call[models.HistoryResponse](ctx, j.c, api.Request{
		Endpoint: EndpointHistory,
		Method:   http.MethodPost,
	})
	if err != nil {
		return nil, nil, err
	}
	return resp.Jots, resp.Todos, nil
}

// CompleteTodo marks the todo as done on the backend.
func (j *Jots) CompleteTodo(ctx context.Context, todoID int64) error {
	_, err := call[models.StatusResponse](ctx, j.c, api.Request{
		Endpoint: EndpointCompleteTodo,
		Method:   http.MethodPost,
		Params:   api.NewParams("todoId", todoID),
	})
	return err
}
