package resources

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/jotme/internal/client/api"
	"github.com/dmitrijs2005/jotme/internal/client/models"
)

const EndpointAskQuestion = "/qa/askQuestion.php"

type QandA struct {
	c Caller
}

func NewQandA(c Caller) *QandA {
	return &QandA{c: c}
}

// Ask sends a question about the user's jots and returns the answered record.
func (q *QandA) Ask(ctx context.Context, question string) (models.QandA, error) {
	if strings.TrimSpace(question) == "" {
		return models.QandA{}, fmt.Errorf("%w: question is empty", api.ErrInvalidRequest)
	}

	resp, err := call[models.QandAResponse](ctx, q.c, api.Request{
		Endpoint: EndpointAskQuestion,
		Method:   http.MethodPost,
		Params:   api.NewParams("question", question),
	})
	if err != nil {
		return models.QandA{}, err
	}
	return resp.QandA, nil
}
