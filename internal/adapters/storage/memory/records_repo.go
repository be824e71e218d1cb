package memory

import (
	"context"
	"strings"
	"sync"

	"livestock-assessment/internal/domain/records"
)

type recordRepo struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]records.AnimalRecord
}

// NewRecordRepo sirve el catálogo en el orden recibido (normalmente records.Seed()).
func NewRecordRepo(seed []records.AnimalRecord) records.Repository {
	r := &recordRepo{
		order: make([]string, 0, len(seed)),
		byID:  make(map[string]records.AnimalRecord, len(seed)),
	}
	for _, a := range seed {
		if _, dup := r.byID[a.ID]; dup {
			continue
		}
		r.order = append(r.order, a.ID)
		r.byID[a.ID] = cloneRecord(a)
	}
	return r
}

func (r *recordRepo) List(ctx context.Context) ([]records.AnimalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.AnimalRecord, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneRecord(r.byID[id]))
	}
	return out, nil
}

func (r *recordRepo) Get(ctx context.Context, id string) (records.AnimalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return records.AnimalRecord{}, records.ErrNotFound
	}
	return cloneRecord(a), nil
}

// cloneRecord evita que el llamador mute el catálogo compartido.
func cloneRecord(a records.AnimalRecord) records.AnimalRecord {
	if a.Detail == nil {
		return a
	}
	d := *a.Detail
	d.History = append([]records.ScorePoint(nil), d.History...)
	d.Assessments = append([]records.PastAssessment(nil), d.Assessments...)
	d.Recommendations = append([]string(nil), d.Recommendations...)
	a.Detail = &d
	return a
}
