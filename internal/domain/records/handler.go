package records

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const dashboardPath = "/dashboard"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/home", homeHandler(svc))
	r.Get("/dashboard", dashboardHandler(svc))
	r.Get("/animals/{animalID}", animalHandler(svc))
}

type animalSummaryResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Breed        string  `json:"breed"`
	Species      Species `json:"species"`
	Score        int     `json:"score"`
	Band         Band    `json:"band"`
	Image        string  `json:"image"`
	LastAssessed string  `json:"last_assessed"`
	Status       Status  `json:"status"`
}

type homeResponse struct {
	Title   string                  `json:"title"`
	Message string                  `json:"message"`
	Recent  []animalSummaryResponse `json:"recent"`
}

type dashboardResponse struct {
	Query   string                  `json:"query,omitempty"`
	Count   int                     `json:"count"`
	Animals []animalSummaryResponse `json:"animals"`
}

type metricResponse struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Score   int    `json:"score"`
	Band    Band   `json:"band"`
	Ideal   string `json:"ideal"`
	Insight string `json:"insight"`
}

type animalDetailResponse struct {
	animalSummaryResponse
	BreedConfidence int              `json:"breed_confidence"`
	Age             string           `json:"age"`
	Sex             string           `json:"sex"`
	KeyInsight      string           `json:"key_insight"`
	Metrics         []metricResponse `json:"metrics"`
	Measurements    Measurements     `json:"measurements"`
	History         []ScorePoint     `json:"history"`
	Assessments     []PastAssessment `json:"assessments"`
	Recommendations []string         `json:"recommendations"`
}

type notFoundResponse struct {
	Error string `json:"error"`
	Back  string `json:"back"`
}

// homeHandler godoc
// @Summary Pantalla de inicio
// @Description Mensaje de bienvenida y las evaluaciones recientes.
// @Tags records
// @Produce json
// @Success 200 {object} homeResponse
// @Router /home [get]
func homeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recent, err := svc.Recent(r.Context(), DefaultRecentLimit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, homeResponse{
			Title:   WelcomeTitle,
			Message: WelcomeMessage,
			Recent:  toSummaries(recent),
		})
	}
}

// dashboardHandler godoc
// @Summary Rebaño
// @Tags records
// @Produce json
// @Param q query string false "Filtro por id, nombre o raza"
// @Success 200 {object} dashboardResponse
// @Router /dashboard [get]
func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")

		list, err := svc.List(r.Context(), q)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, dashboardResponse{
			Query:   q,
			Count:   len(list),
			Animals: toSummaries(list),
		})
	}
}

// animalHandler godoc
// @Summary Ficha del animal
// @Tags records
// @Produce json
// @Param animalID path string true "ID del animal (ej. L-101)"
// @Success 200 {object} animalDetailResponse
// @Failure 404 {object} notFoundResponse
// @Router /animals/{animalID} [get]
func animalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Get(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeJSON(w, http.StatusNotFound, notFoundResponse{Error: ErrNotFound.Error(), Back: dashboardPath})
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toDetail(a))
	}
}

func toSummary(a AnimalRecord) animalSummaryResponse {
	return animalSummaryResponse{
		ID:           a.ID,
		Name:         a.Name,
		Breed:        a.Breed,
		Species:      a.Species,
		Score:        a.Score,
		Band:         ScoreBand(a.Score),
		Image:        a.Image,
		LastAssessed: a.LastAssessed,
		Status:       a.Status,
	}
}

func toSummaries(list []AnimalRecord) []animalSummaryResponse {
	out := make([]animalSummaryResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toSummary(a))
	}
	return out
}

func toDetail(a AnimalRecord) animalDetailResponse {
	d := a.Detail
	return animalDetailResponse{
		animalSummaryResponse: toSummary(a),
		BreedConfidence:       d.BreedConfidence,
		Age:                   d.Age,
		Sex:                   d.Sex,
		KeyInsight:            d.KeyInsight,
		Metrics: []metricResponse{
			toMetric("lifespan", "Lifespan (Health)", d.Metrics.Lifespan),
			toMetric("reproductivity", "Reproductivity", d.Metrics.Reproductivity),
			toMetric("productivity", "Productivity", d.Metrics.Productivity),
			toMetric("dairy", "Dairy Improvement", d.Metrics.Dairy),
		},
		Measurements:    d.Measurements,
		History:         d.History,
		Assessments:     d.Assessments,
		Recommendations: d.Recommendations,
	}
}

func toMetric(key, label string, m Metric) metricResponse {
	return metricResponse{
		Key:     key,
		Label:   label,
		Score:   m.Score,
		Band:    ScoreBand(m.Score),
		Ideal:   m.Ideal,
		Insight: m.Insight,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
