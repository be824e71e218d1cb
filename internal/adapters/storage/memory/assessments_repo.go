package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"livestock-assessment/internal/domain/assessment"
)

type assessmentRepo struct {
	mu   sync.RWMutex
	byID map[string]assessment.Session
}

// NewAssessmentRepo guarda sesiones del wizard solo en memoria (no hay persistencia).
func NewAssessmentRepo() assessment.Repository {
	return &assessmentRepo{
		byID: make(map[string]assessment.Session),
	}
}

func (r *assessmentRepo) Create(ctx context.Context, s assessment.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("session id required")
	}
	if _, exists := r.byID[s.ID]; exists {
		return errors.New("session already exists")
	}
	r.byID[s.ID] = s
	return nil
}

func (r *assessmentRepo) Get(ctx context.Context, id string) (assessment.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return assessment.Session{}, assessment.ErrNotFound
	}
	return s, nil
}

func (r *assessmentRepo) Update(ctx context.Context, s assessment.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[s.ID]; !exists {
		return assessment.ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *assessmentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return assessment.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *assessmentRepo) ListIdleSince(ctx context.Context, cutoff time.Time) ([]assessment.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assessment.Session, 0)
	for _, s := range r.byID {
		if s.UpdatedAt.Before(cutoff) {
			out = append(out, s)
		}
	}

	// Más viejas primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.Before(out[j].UpdatedAt)
	})
	return out, nil
}
