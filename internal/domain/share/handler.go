package share

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/animals/{animalID}/share", shareCardHandler(svc))
	r.Post("/animals/{animalID}/reports", generateReportHandler(svc))
}

type reportOptionResponse struct {
	Kind        ReportKind `json:"kind"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ReportName  string     `json:"report_name"`
	Features    []string   `json:"features"`
}

type quickLinkResponse struct {
	Channel Channel `json:"channel"`
	URL     string  `json:"url"`
}

type shareCardResponse struct {
	AnimalID string                 `json:"animal_id"`
	Name     string                 `json:"name"`
	Breed    string                 `json:"breed"`
	Score    int                    `json:"score"`
	Image    string                 `json:"image"`
	Text     string                 `json:"text"`
	Reports  []reportOptionResponse `json:"reports"`
	Links    []quickLinkResponse    `json:"links"`
}

type generateReportRequest struct {
	Kind ReportKind `json:"kind" enums:"vet,insurance,buyer"`
}

type reportResponse struct {
	Kind        ReportKind `json:"kind"`
	ReportName  string     `json:"report_name"`
	AnimalID    string     `json:"animal_id"`
	Message     string     `json:"message"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// shareCardHandler godoc
// @Summary Opciones de compartir
// @Description Tipos de informe y enlaces de compartir rápido (WhatsApp, SMS, email).
// @Tags share
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} shareCardResponse
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/share [get]
func shareCardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Card(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, err)
			return
		}

		resp := shareCardResponse{
			AnimalID: c.AnimalID,
			Name:     c.Name,
			Breed:    c.Breed,
			Score:    c.Score,
			Image:    c.Image,
			Text:     c.Text,
			Reports:  make([]reportOptionResponse, 0, len(c.Reports)),
			Links:    make([]quickLinkResponse, 0, len(c.Links)),
		}
		for _, o := range c.Reports {
			resp.Reports = append(resp.Reports, reportOptionResponse{
				Kind:        o.Kind,
				Title:       o.Title,
				Description: o.Description,
				ReportName:  o.ReportName,
				Features:    o.Features,
			})
		}
		for _, l := range c.Links {
			resp.Links = append(resp.Links, quickLinkResponse{Channel: l.Channel, URL: l.URL})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// generateReportHandler godoc
// @Summary Generar informe
// @Tags share
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body generateReportRequest true "Tipo de informe"
// @Success 201 {object} reportResponse
// @Failure 400 {string} string "invalid json / unknown report kind"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/reports [post]
func generateReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rep, err := svc.Generate(r.Context(), chi.URLParam(r, "animalID"), req.Kind)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, reportResponse{
			Kind:        rep.Kind,
			ReportName:  rep.ReportName,
			AnimalID:    rep.AnimalID,
			Message:     rep.Message,
			GeneratedAt: rep.GeneratedAt,
		})
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
