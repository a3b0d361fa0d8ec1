package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

type Service interface {
	UpsertByEmail(ctx context.Context, input *User) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// UpsertByEmail creates a customer record or merges the submitted fields
// into the existing one. Empty submitted fields keep the stored values, so
// a repeat checkout never erases a known phone or address.
func (s *service) UpsertByEmail(ctx context.Context, input *User) (*User, error) {
	if input.Email == "" {
		return nil, errors.New("service: email is required")
	}
	if input.Role == "" {
		input.Role = RoleClient
	}

	existing, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Error().Err(err).Msg("service: failed to look up user by email")
			return nil, fmt.Errorf("service: failed to look up user: %w", err)
		}

		if createErr := s.repo.Create(ctx, input); createErr != nil {
			if errors.Is(createErr, ErrEmailExists) {
				return nil, ErrEmailExists
			}
			log.Error().Err(createErr).Msg("service: failed to create user")
			return nil, fmt.Errorf("service: failed to create user: %w", createErr)
		}

		log.Info().Stringer("user_id", input.ID).Msg("service: user created")
		return input, nil
	}

	if input.Name != "" {
		existing.Name = input.Name
	}
	if input.Phone != "" {
		existing.Phone = input.Phone
	}
	if input.Address != "" {
		existing.Address = input.Address
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		log.Error().Err(err).Stringer("user_id", existing.ID).Msg("service: failed to update user")
		return nil, fmt.Errorf("service: failed to update user: %w", err)
	}

	return existing, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Stringer("user_id", id).Msg("service: failed to get user by id")
		return nil, fmt.Errorf("service: failed to get user by id: %w", err)
	}
	return u, nil
}
