package settings

import "context"

// RefreshTokens keeps the identity provider's refresh token in a Repository.
type RefreshTokens struct {
	repo Repository
}

func NewRefreshTokens(repo Repository) *RefreshTokens {
	return &RefreshTokens{repo: repo}
}

// RefreshToken returns "" when nothing is stored.
func (t *RefreshTokens) RefreshToken(ctx context.Context) (string, error) {
	v, err := t.repo.Get(ctx, KeyRefreshToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (t *RefreshTokens) SaveRefreshToken(ctx context.Context, token string) error {
	return t.repo.Set(ctx, KeyRefreshToken, []byte(token))
}

func (t *RefreshTokens) ClearRefreshToken(ctx context.Context) error {
	return t.repo.Delete(ctx, KeyRefreshToken)
}
