package share

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"livestock-assessment/internal/domain/records"
	"livestock-assessment/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("animal not found")
)

// AnimalFinder es lo único que share necesita del catálogo.
type AnimalFinder interface {
	Lookup(ctx context.Context, id string) (records.AnimalRecord, error)
}

type Service struct {
	animals AnimalFinder
	log     logger.Logger
	now     func() time.Time
}

func NewService(animals AnimalFinder, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		animals: animals,
		log:     log,
		now:     time.Now,
	}
}

// Card es lo que muestra el diálogo de compartir para un animal.
type Card struct {
	AnimalID string
	Name     string
	Breed    string
	Score    int
	Image    string
	Text     string
	Reports  []ReportOption
	Links    []QuickLink
}

type Report struct {
	Kind        ReportKind
	ReportName  string
	AnimalID    string
	Message     string
	GeneratedAt time.Time
}

func (s *Service) Card(ctx context.Context, animalID string) (Card, error) {
	a, err := s.lookup(ctx, animalID)
	if err != nil {
		return Card{}, err
	}

	text := Text(a.Name, a.Score, a.Breed)
	links := make([]QuickLink, 0, len(Channels))
	for _, ch := range Channels {
		u, err := Link(ch, a.Name, text)
		if err != nil {
			return Card{}, err
		}
		links = append(links, QuickLink{Channel: ch, URL: u})
	}

	return Card{
		AnimalID: a.ID,
		Name:     a.Name,
		Breed:    a.Breed,
		Score:    a.Score,
		Image:    a.Image,
		Text:     text,
		Reports:  Options(),
		Links:    links,
	}, nil
}

// Generate simula la generación del informe: no se produce ningún documento.
func (s *Service) Generate(ctx context.Context, animalID string, kind ReportKind) (Report, error) {
	opt, ok := LookupReport(ReportKind(strings.ToLower(strings.TrimSpace(string(kind)))))
	if !ok {
		return Report{}, fmt.Errorf("%w: unknown report kind %q", ErrInvalidInput, kind)
	}

	a, err := s.lookup(ctx, animalID)
	if err != nil {
		return Report{}, err
	}

	rep := Report{
		Kind:        opt.Kind,
		ReportName:  opt.ReportName,
		AnimalID:    a.ID,
		Message:     fmt.Sprintf("%s for %s has been generated and is ready to share.", opt.ReportName, a.Name),
		GeneratedAt: s.now().UTC(),
	}

	s.log.Info("report generated", map[string]any{
		"animal_id": a.ID,
		"kind":      string(opt.Kind),
	})
	return rep, nil
}

func (s *Service) lookup(ctx context.Context, animalID string) (records.AnimalRecord, error) {
	a, err := s.animals.Lookup(ctx, animalID)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return records.AnimalRecord{}, ErrNotFound
		}
		return records.AnimalRecord{}, err
	}
	return a, nil
}
