package settings

import (
	"context"
	"fmt"
	"strconv"
)

// User is the persisted part of a session.
type User struct {
	ID    *int64
	Name  string
	Email string
}

// LoadUser reads the stored user. Missing keys yield zero values.
func LoadUser(ctx context.Context, r Repository) (User, error) {
	var u User

	raw, err := r.Get(ctx, KeyUserID)
	if err != nil {
		return u, err
	}
	if len(raw) > 0 {
		id, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return u, fmt.Errorf("parse stored user id %q: %w", raw, err)
		}
		u.ID = &id
	}

	name, err := r.Get(ctx, KeyUserName)
	if err != nil {
		return u, err
	}
	u.Name = string(name)

	email, err := r.Get(ctx, KeyUserEmail)
	if err != nil {
		return u, err
	}
	u.Email = string(email)

	return u, nil
}

// SaveUser stores u. A nil ID removes the stored id.
func SaveUser(ctx context.Context, r Repository, u User) error {
	if u.ID == nil {
		if err := r.Delete(ctx, KeyUserID); err != nil {
			return err
		}
	} else if err := r.Set(ctx, KeyUserID, []byte(strconv.FormatInt(*u.ID, 10))); err != nil {
		return err
	}

	if err := r.Set(ctx, KeyUserName, []byte(u.Name)); err != nil {
		return err
	}
	return r.Set(ctx, KeyUserEmail, []byte(u.Email))
}

// ForgetUser removes every user key but keeps unrelated settings.
func ForgetUser(ctx context.Context, r Repository) error {
	for _, k := range []string{KeyUserID, KeyUserName, KeyUserEmail} {
		if err := r.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}
