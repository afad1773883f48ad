// Package store holds the data accessors and their shared lifecycle.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrewpaige1/quizbot-api/config"
)

type Store struct {
	Database *config.Database
	Admins   *AdminAccessor
	Quizzes  *QuizAccessor
	Sessions *SessionAccessor
}

func New(db *config.Database) *Store {
	return &Store{
		Database: db,
		Admins:   NewAdminAccessor(db),
		Quizzes:  NewQuizAccessor(db),
		Sessions: NewSessionAccessor(db),
	}
}

// Connect opens the database and makes sure the bootstrap admin exists.
func (s *Store) Connect(ctx context.Context, env config.Environment) error {
	if err := s.Database.Connect(ctx); err != nil {
		return err
	}

	if _, err := s.Admins.EnsureAdmin(ctx, env.AdminEmail, env.AdminPassword); err != nil {
		return errors.Join(fmt.Errorf("bootstrap admin: %w", err), s.Database.Disconnect())
	}
	return nil
}

func (s *Store) Disconnect() error {
	return s.Database.Disconnect()
}
