package resources

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/jotme/internal/client/api"
	"github.com/dmitrijs2005/jotme/internal/client/models"
)

const (
	EndpointRegister = "/user/register.php"
	EndpointStartup  = "/user/startup.php"
)

type Users struct {
	c Caller
}

func NewUsers(c Caller) *Users {
	return &Users{c: c}
}

// Register creates the backend user for the signed-in identity and returns
// its id.
func (u *Users) Register(ctx context.Context, userName, userEmail string) (int64, error) {
	resp, err := call[models.RegisterResponse](ctx, u.c, api.Request{
		Endpoint: EndpointRegister,
		Method:   http.MethodPost,
		Params:   api.NewParams("userName", userName, api.ParamUserEmail, userEmail),
	})
	if err != nil {
		return 0, err
	}
	if resp.UserID == 0 {
		return 0, fmt.Errorf("%w: %s: response has no userId", api.ErrDecode, EndpointRegister)
	}
	return resp.UserID, nil
}

// Startup announces an app start for an already registered user and
// returns the backend's greeting.
func (u *Users) Startup(ctx context.Context) (string, error) {
	resp, err := call[models.StatusResponse](ctx, u.c, api.Request{
		Endpoint: EndpointStartup,
		Method:   http.MethodPost,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}
