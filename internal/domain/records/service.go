package records

import (
	"context"
	"strings"
)

const (
	DefaultRecentLimit = 3

	WelcomeTitle   = "Welcome to Moo-Aaa"
	WelcomeMessage = "AI-powered livestock assessment for better farming. Take a photo of your cattle or buffalo to get instant health scores and breed classification."
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List filtra por id, nombre o raza (sin distinguir mayúsculas). query vacío = todo el rebaño.
func (s *Service) List(ctx context.Context, query string) ([]AnimalRecord, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}

	out := make([]AnimalRecord, 0, len(all))
	for _, a := range all {
		if matches(a, q) {
			out = append(out, a)
		}
	}
	return out, nil
}

func matches(a AnimalRecord, q string) bool {
	return strings.Contains(strings.ToLower(a.ID), q) ||
		strings.Contains(strings.ToLower(a.Name), q) ||
		strings.Contains(strings.ToLower(a.Breed), q)
}

// Recent son las primeras n entradas del catálogo (pantalla de inicio).
func (s *Service) Recent(ctx context.Context, n int) ([]AnimalRecord, error) {
	if n <= 0 {
		n = DefaultRecentLimit
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// Get devuelve la ficha completa. Un registro sin detalle cuenta como no encontrado.
func (s *Service) Get(ctx context.Context, id string) (AnimalRecord, error) {
	a, err := s.Lookup(ctx, id)
	if err != nil {
		return AnimalRecord{}, err
	}
	if a.Detail == nil {
		return AnimalRecord{}, ErrNotFound
	}
	return a, nil
}

// Lookup devuelve el resumen de cualquier animal del catálogo.
func (s *Service) Lookup(ctx context.Context, id string) (AnimalRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return AnimalRecord{}, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}
