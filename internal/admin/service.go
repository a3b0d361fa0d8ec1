package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type Service interface {
	Authenticate(ctx context.Context, email, password string) (string, *Admin, error)
	VerifyToken(token string) (uuid.UUID, error)
	Create(ctx context.Context, a *Admin, password string) (*Admin, error)
	Update(ctx context.Context, a *Admin, newPassword string) (*Admin, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]Admin, error)
	Seed(ctx context.Context, seeds []Seed) error
}

// Seed describes an initial admin account ensured at startup.
type Seed struct {
	Name     string
	Email    string
	Password string
	UserID   uuid.UUID
}

type service struct {
	repo      Repository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewService(repo Repository, jwtSecret string, tokenTTL time.Duration) Service {
	return &service{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Authenticate checks credentials and issues an HS256 session token.
func (s *service) Authenticate(ctx context.Context, email, password string) (string, *Admin, error) {
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		log.Error().Err(err).Msg("service: failed to look up admin for login")
		return "", nil, fmt.Errorf("service: failed to look up admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("service: admin login with wrong password")
		return "", nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"admin_id": a.ID.String(),
		"email":    a.Email,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to sign session token")
		return "", nil, fmt.Errorf("service: failed to sign session token: %w", err)
	}

	log.Info().Stringer("admin_id", a.ID).Msg("service: admin authenticated")
	return signed, a, nil
}

// VerifyToken parses a session token and returns the admin ID it carries.
func (s *service) VerifyToken(tokenString string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	idStr, _ := claims["admin_id"].(string)
	adminID, err := uuid.FromString(idStr)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return adminID, nil
}

func (s *service) Create(ctx context.Context, a *Admin, password string) (*Admin, error) {
	if a.Email == "" || a.Name == "" {
		return nil, errors.New("service: admin name and email are required")
	}
	if len(password) < 8 {
		return nil, errors.New("service: admin password must be at least 8 characters")
	}
	if a.Role == "" {
		a.Role = "ADMIN"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to hash admin password")
		return nil, fmt.Errorf("service: failed to hash password: %w", err)
	}
	a.PasswordHash = string(hash)

	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, ErrEmailExists
		}
		log.Error().Err(err).Msg("service: failed to create admin")
		return nil, fmt.Errorf("service: failed to create admin: %w", err)
	}

	log.Info().Stringer("admin_id", a.ID).Msg("service: admin created")
	return a, nil
}

// Update changes an admin's profile. A non-empty newPassword replaces the
// stored hash; empty keeps it.
func (s *service) Update(ctx context.Context, a *Admin, newPassword string) (*Admin, error) {
	if a.Email == "" || a.Name == "" || a.Role == "" {
		return nil, errors.New("service: admin name, email and role are required")
	}

	existing, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Stringer("admin_id", a.ID).Msg("service: failed to load admin for update")
		return nil, fmt.Errorf("service: failed to load admin: %w", err)
	}

	a.PasswordHash = existing.PasswordHash
	if newPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Error().Err(err).Msg("service: failed to hash admin password")
			return nil, fmt.Errorf("service: failed to hash password: %w", err)
		}
		a.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, a); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, ErrEmailExists
		}
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Stringer("admin_id", a.ID).Msg("service: failed to update admin")
		return nil, fmt.Errorf("service: failed to update admin: %w", err)
	}

	return a, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Stringer("admin_id", id).Msg("service: failed to delete admin")
		return fmt.Errorf("service: failed to delete admin: %w", err)
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]Admin, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list admins")
		return nil, fmt.Errorf("service: failed to list admins: %w", err)
	}
	return admins, nil
}

// Seed ensures the initial admin accounts exist. Already-present emails are
// left untouched.
func (s *service) Seed(ctx context.Context, seeds []Seed) error {
	for _, seed := range seeds {
		a := &Admin{
			UserID: seed.UserID,
			Name:   seed.Name,
			Email:  seed.Email,
			Role:   "ADMIN",
		}
		_, err := s.Create(ctx, a, seed.Password)
		if err != nil && !errors.Is(err, ErrEmailExists) {
			return fmt.Errorf("service: failed to seed admin %q: %w", seed.Email, err)
		}
	}
	return nil
}
