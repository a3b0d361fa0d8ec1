package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

type Service interface {
	ListProducts(ctx context.Context, availableOnly bool) ([]Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	GetPrices(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]float64, error)
	CreateProduct(ctx context.Context, p *Product) (*Product, error)
	UpdateProduct(ctx context.Context, p *Product) (*Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, c *Category) (*Category, error)
	SeedCategories(ctx context.Context) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(ctx context.Context, availableOnly bool) ([]Product, error) {
	products, err := s.repo.ListProducts(ctx, availableOnly)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list products")
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		log.Error().Err(err).Stringer("product_id", id).Msg("service: failed to get product")
		return nil, fmt.Errorf("service: failed to get product: %w", err)
	}
	return product, nil
}

func (s *service) GetPrices(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]float64, error) {
	prices, err := s.repo.GetPrices(ctx, ids)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to fetch product prices")
		return nil, fmt.Errorf("service: failed to fetch product prices: %w", err)
	}
	return prices, nil
}

func (s *service) CreateProduct(ctx context.Context, p *Product) (*Product, error) {
	if p.Name == "" {
		return nil, errors.New("service: product name is required")
	}
	if p.Price <= 0 {
		return nil, fmt.Errorf("service: product price must be positive, got %.2f", p.Price)
	}
	if p.CategoryID == uuid.Nil {
		return nil, errors.New("service: product category is required")
	}
	if p.PreparationTime <= 0 {
		p.PreparationTime = 15
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		log.Error().Err(err).Str("name", p.Name).Msg("service: failed to create product")
		return nil, fmt.Errorf("service: failed to create product: %w", err)
	}

	log.Info().Stringer("product_id", p.ID).Str("name", p.Name).Msg("service: product created")
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, p *Product) (*Product, error) {
	if p.ID == uuid.Nil {
		return nil, errors.New("service: product id is required")
	}
	if p.Price <= 0 {
		return nil, fmt.Errorf("service: product price must be positive, got %.2f", p.Price)
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		log.Error().Err(err).Stringer("product_id", p.ID).Msg("service: failed to update product")
		return nil, fmt.Errorf("service: failed to update product: %w", err)
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ErrProductNotFound
		}
		log.Error().Err(err).Stringer("product_id", id).Msg("service: failed to delete product")
		return fmt.Errorf("service: failed to delete product: %w", err)
	}
	return nil
}

func (s *service) ListCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list categories")
		return nil, fmt.Errorf("service: failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *service) CreateCategory(ctx context.Context, c *Category) (*Category, error) {
	if c.Name == "" {
		return nil, errors.New("service: category name is required")
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		log.Error().Err(err).Str("name", c.Name).Msg("service: failed to create category")
		return nil, fmt.Errorf("service: failed to create category: %w", err)
	}
	return c, nil
}

// SeedCategories creates the default menu sections if they do not exist yet.
func (s *service) SeedCategories(ctx context.Context) error {
	defaults := []Category{
		{Name: "Pizzas Tradicionais", Description: "Sabores clássicos da casa", Active: true},
		{Name: "Pizzas Especiais", Description: "Criações exclusivas AeroPizza", Active: true},
		{Name: "Bebidas", Description: "Refrigerantes e sucos", Active: true},
		{Name: "Sobremesas", Description: "Pizzas doces e sobremesas", Active: true},
	}

	for i := range defaults {
		if err := s.repo.CreateCategory(ctx, &defaults[i]); err != nil {
			return fmt.Errorf("service: failed to seed category %q: %w", defaults[i].Name, err)
		}
	}

	log.Info().Int("count", len(defaults)).Msg("service: default categories ensured")
	return nil
}
