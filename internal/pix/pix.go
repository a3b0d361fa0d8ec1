// Package pix manages the shop's PIX payment routing configuration, a
// key/value singleton edited from the admin dashboard and embedded in
// WhatsApp order messages.
package pix

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/aeropizza/backend/internal/notify"
)

// ConfigKey is the fixed key of the singleton row.
const ConfigKey = "aeropizza_pix"

var ErrNotConfigured = errors.New("pix configuration not found")

type Config struct {
	Key       string    `json:"key" db:"key"`
	PixKey    string    `json:"pix_key" db:"pix_key"`
	PixType   string    `json:"pix_type" db:"pix_type"`
	Recipient string    `json:"recipient" db:"recipient"`
	Active    bool      `json:"active" db:"active"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Repository interface {
	Get(ctx context.Context) (*Config, error)
	Upsert(ctx context.Context, cfg *Config) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Get(ctx context.Context) (*Config, error) {
	query := `SELECT key, pix_key, pix_type, recipient, active, updated_at FROM pix_config WHERE key = $1`

	var cfg Config
	err := r.db.QueryRow(ctx, query, ConfigKey).Scan(
		&cfg.Key, &cfg.PixKey, &cfg.PixType, &cfg.Recipient, &cfg.Active, &cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotConfigured
		}
		return nil, fmt.Errorf("repository: failed to select pix config: %w", err)
	}
	return &cfg, nil
}

func (r *postgresRepository) Upsert(ctx context.Context, cfg *Config) error {
	cfg.Key = ConfigKey
	cfg.UpdatedAt = time.Now().UTC()

	query := `
		INSERT INTO pix_config (key, pix_key, pix_type, recipient, active, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (key) DO UPDATE
		SET pix_key = EXCLUDED.pix_key,
		    pix_type = EXCLUDED.pix_type,
		    recipient = EXCLUDED.recipient,
		    active = EXCLUDED.active,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.Exec(ctx, query, cfg.Key, cfg.PixKey, cfg.PixType, cfg.Recipient, cfg.Active, cfg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("repository: failed to upsert pix config: %w", err)
	}
	return nil
}

type Service interface {
	Get(ctx context.Context) (*Config, error)
	Upsert(ctx context.Context, cfg *Config) (*Config, error)

	// GetPixDetails implements notify.PixProvider.
	GetPixDetails(ctx context.Context) (*notify.PixDetails, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Get returns the active configuration. An inactive or missing row is
// reported as not configured.
func (s *service) Get(ctx context.Context) (*Config, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return nil, ErrNotConfigured
		}
		log.Error().Err(err).Msg("service: failed to fetch pix config")
		return nil, fmt.Errorf("service: failed to fetch pix config: %w", err)
	}
	if !cfg.Active {
		return nil, ErrNotConfigured
	}
	return cfg, nil
}

func (s *service) Upsert(ctx context.Context, cfg *Config) (*Config, error) {
	if cfg.PixKey == "" || cfg.PixType == "" || cfg.Recipient == "" {
		return nil, errors.New("service: pix key, type and recipient are required")
	}

	if err := s.repo.Upsert(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("service: failed to upsert pix config")
		return nil, fmt.Errorf("service: failed to upsert pix config: %w", err)
	}

	log.Info().Str("pix_type", cfg.PixType).Msg("service: pix config updated")
	return cfg, nil
}

func (s *service) GetPixDetails(ctx context.Context) (*notify.PixDetails, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &notify.PixDetails{
		PixKey:    cfg.PixKey,
		PixType:   cfg.PixType,
		Recipient: cfg.Recipient,
	}, nil
}
