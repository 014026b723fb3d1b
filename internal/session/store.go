package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/wichananm65/storefront/internal/storage"
)

// Store reads and writes the session under the user and token keys.
type Store struct {
	kv storage.Store
}

func NewStore(kv storage.Store) *Store {
	return &Store{kv: kv}
}

// Load returns the stored session; missing keys yield a zero Session.
func (s *Store) Load(ctx context.Context) (Session, error) {
	var sess Session

	var u User
	err := storage.GetJSON(ctx, s.kv, KeyUser, &u)
	switch {
	case err == nil:
		sess.User = &u
	case errors.Is(err, storage.ErrNotFound):
	default:
		return Session{}, fmt.Errorf("load session user: %w", err)
	}

	tok, err := s.kv.Get(ctx, KeyToken)
	switch {
	case err == nil:
		sess.Token = string(tok)
	case errors.Is(err, storage.ErrNotFound):
	default:
		return Session{}, fmt.Errorf("load session token: %w", err)
	}
	return sess, nil
}

func (s *Store) Save(ctx context.Context, sess Session) error {
	if sess.User == nil {
		return s.Clear(ctx)
	}
	if err := storage.SetJSON(ctx, s.kv, KeyUser, sess.User); err != nil {
		return fmt.Errorf("save session user: %w", err)
	}
	if sess.Token == "" {
		if err := s.kv.Delete(ctx, KeyToken); err != nil {
			return fmt.Errorf("save session token: %w", err)
		}
		return nil
	}
	if err := s.kv.Set(ctx, KeyToken, []byte(sess.Token)); err != nil {
		// never leave the new user paired with an older token
		if cerr := s.Clear(ctx); cerr != nil {
			return errors.Join(fmt.Errorf("save session token: %w", err), cerr)
		}
		return fmt.Errorf("save session token: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyUser, KeyToken); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
