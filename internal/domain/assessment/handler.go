package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"

	"livestock-assessment/internal/domain/camera"

	"github.com/go-chi/chi/v5"
)

// maxFrameBytes limita el cuerpo de un frame subido por el cliente.
const maxFrameBytes = 8 << 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/assessments", func(ar chi.Router) {
		ar.Post("/", startHandler(svc))

		ar.Route("/{assessmentID}", func(sr chi.Router) {
			sr.Get("/", getHandler(svc))
			sr.Delete("/", endHandler(svc))

			sr.Put("/draft", updateDraftHandler(svc))

			sr.Post("/next", nextHandler(svc))
			sr.Post("/back", backHandler(svc))
			sr.Post("/retake", retakeHandler(svc))

			sr.Post("/capture", captureHandler(svc))
			sr.Post("/camera/retry", retryCameraHandler(svc))

			// Ingreso del dispositivo feed (el navegador sube frames o reporta el rechazo)
			sr.Post("/camera/frames", pushFrameHandler(svc))
			sr.Post("/camera/error", cameraErrorHandler(svc))
		})
	})
}

type updateDraftRequest struct {
	Name    *string `json:"name"`
	Species *string `json:"species" enums:"cattle,buffalo"`
	Age     *string `json:"age"`
	Sex     *string `json:"sex"`
	Breed   *string `json:"breed"`
}

type cameraErrorRequest struct {
	// Nombre del DOMException de getUserMedia (NotAllowedError, NotFoundError, ...)
	Name string `json:"name"`
}

type indicatorSegmentResponse struct {
	Step Step `json:"step"`
	Lit  bool `json:"lit"`
}

type draftResponse struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Species     Species `json:"species"`
	Age         string  `json:"age"`
	Sex         string  `json:"sex"`
	Breed       string  `json:"breed"`
}

type constraintsResponse struct {
	Facing      camera.Facing `json:"facing"`
	IdealWidth  int           `json:"ideal_width"`
	IdealHeight int           `json:"ideal_height"`
}

type cameraResponse struct {
	Permission  Permission          `json:"permission"`
	Error       string              `json:"error,omitempty"`
	FailureKind camera.FailureKind  `json:"failure_kind,omitempty"`
	CanRetry    bool                `json:"can_retry"`
	Constraints constraintsResponse `json:"constraints"`
}

type imageResponse struct {
	DataURI    string    `json:"data_uri"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Bytes      int       `json:"bytes"`
	CapturedAt time.Time `json:"captured_at"`
}

type resultResponse struct {
	OverallScore int       `json:"overall_score"`
	Headline     string    `json:"headline"`
	CompletedAt  time.Time `json:"completed_at"`
}

// sessionResponse es la vista del wizard que renderiza el cliente.
type sessionResponse struct {
	ID        string                     `json:"id"`
	Step      Step                       `json:"step"`
	StepIndex int                        `json:"step_index"`
	Indicator []indicatorSegmentResponse `json:"indicator"`
	Draft     draftResponse              `json:"draft"`
	Camera    cameraResponse             `json:"camera"`
	Image     *imageResponse             `json:"image,omitempty"`
	Result    *resultResponse            `json:"result,omitempty"`
	CreatedAt time.Time                  `json:"created_at"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

type redirectResponse struct {
	Redirect string `json:"redirect"`
}

// startHandler godoc
// @Summary Iniciar evaluación
// @Description Crea una sesión del wizard en el paso identity.
// @Tags assessments
// @Produce json
// @Success 201 {object} sessionResponse
// @Router /assessments [post]
func startHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.Start(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSessionResponse(sess, svc.Constraints()))
	}
}

// getHandler godoc
// @Summary Ver evaluación
// @Tags assessments
// @Produce json
// @Param assessmentID path string true "ID de la sesión"
// @Success 200 {object} sessionResponse
// @Failure 404 {string} string "assessment not found"
// @Router /assessments/{assessmentID} [get]
func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.Get(r.Context(), chi.URLParam(r, "assessmentID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(sess, svc.Constraints()))
	}
}

// endHandler godoc
// @Summary Terminar evaluación
// @Description Libera la cámara, cancela el timer de processing y descarta la sesión.
// @Tags assessments
// @Param assessmentID path string true "ID de la sesión"
// @Success 204
// @Failure 404 {string} string "assessment not found"
// @Router /assessments/{assessmentID} [delete]
func endHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.End(r.Context(), chi.URLParam(r, "assessmentID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// updateDraftHandler godoc
// @Summary Actualizar identidad del animal
// @Description Solo en el paso identity. Campos ausentes no se modifican.
// @Tags assessments
// @Accept json
// @Produce json
// @Param assessmentID path string true "ID de la sesión"
// @Param payload body updateDraftRequest true "Campos del formulario"
// @Success 200 {object} sessionResponse
// @Failure 400 {string} string "invalid json / species inválida"
// @Failure 409 {string} string "operation not allowed in current step"
// @Router /assessments/{assessmentID}/draft [put]
func updateDraftHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateDraftRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, err := svc.UpdateDraft(r.Context(), chi.URLParam(r, "assessmentID"), DraftPatch{
			Name:    req.Name,
			Species: req.Species,
			Age:     req.Age,
			Sex:     req.Sex,
			Breed:   req.Breed,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(sess, svc.Constraints()))
	}
}

// nextHandler godoc
// @Summary Avanzar un paso
// @Description En complete devuelve {"redirect":"/dashboard"}.
// @Tags assessments
// @Produce json
// @Param assessmentID path string true "ID de la sesión"
// @Success 200 {object} sessionResponse
// @Failure 409 {string} string "a captured image is required / invalid transition"
// @Router /assessments/{assessmentID}/next [post]
func nextHandler(svc *Service) http.HandlerFunc {
	return outcomeHandler(svc, svc.Next)
}

// backHandler godoc
// @Summary Retroceder un paso
// @Description Desde identity, processing o complete sale del wizard ({"redirect":"/"}).
// @Tags assessments
// @Produce json
// @Param assessmentID path string true "ID de la sesión"
// @Success 200 {object} sessionResponse
// @Router /assessments/{assessmentID}/back [post]
func backHandler(svc *Service) http.HandlerFunc {
	return outcomeHandler(svc, svc.Back)
}

// retakeHandler godoc
// @Summary Repetir foto
// @Description Desde review vuelve a camera, descarta la foto y vuelve a pedir la cámara.
// @Tags assessments
// @Produce json
// @Param assessmentID path string true "ID de la sesión"
// @Success 200 {object} sessionResponse
// @Failure 409 {string} string "invalid transition"
// @Router /assessments/{assessmentID}/retake [post]
func retakeHandler(svc *Service) http.HandlerFunc {
	return outcomeHandler(svc, svc.Retake)
}

func outcomeHandler(svc *Service, action func(ctx context.Context, id string) (Outcome, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := action(r.Context(), chi.URLParam(r, "assessmentID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if out.Redirect != "" {
			writeJSON(w, http.StatusOK, redirectResponse{Redirect: out.Redirect})
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(out.Session, svc.Constraints()))
	}
}

// captureHandler godoc
// @Summary Capturar foto
// @Description Congela el frame actual como JPEG, libera la cámara y pasa a review.
// @Tags assessments
// @Produce json
// @Param assessmentID path string true "ID de la sesión"
// @Success 200 {object} sessionResponse
// @Failure 409 {string} string "camera is not streaming"
// @Router /assessments/{assessmentID}/capture [post]
func captureHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.Capture(r.Context(), chi.URLParam(r, "assessmentID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(sess, svc.Constraints()))
	}
}

// retryCameraHandler godoc
// @Summary Reintentar cámara
// @Description Vuelve a pedir la cámara aunque el permiso se haya denegado antes.
// @Tags assessments
// @Produce json
// @Param assessmentID path string true "ID de la sesión"
// @Success 200 {object} sessionResponse
// @Failure 409 {string} string "operation not allowed in current step"
// @Router /assessments/{assessmentID}/camera/retry [post]
func retryCameraHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.RetryCamera(r.Context(), chi.URLParam(r, "assessmentID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(sess, svc.Constraints()))
	}
}

// pushFrameHandler godoc
// @Summary Subir frame de cámara
// @Description El cuerpo es la imagen (JPEG o PNG). El primer frame concede la cámara.
// @Tags assessments
// @Accept image/jpeg
// @Param assessmentID path string true "ID de la sesión"
// @Success 204
// @Failure 400 {string} string "invalid image"
// @Failure 409 {string} string "operation not allowed in current step"
// @Router /assessments/{assessmentID}/camera/frames [post]
func pushFrameHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFrameBytes)

		img, _, err := image.Decode(r.Body)
		if err != nil {
			http.Error(w, "invalid image", http.StatusBadRequest)
			return
		}

		if err := svc.PushFrame(r.Context(), chi.URLParam(r, "assessmentID"), img); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// cameraErrorHandler godoc
// @Summary Reportar fallo de cámara
// @Description Nombre del DOMException de getUserMedia. Con el stream activo lo libera y pasa a denied.
// @Tags assessments
// @Accept json
// @Param assessmentID path string true "ID de la sesión"
// @Param payload body cameraErrorRequest true "Error del navegador"
// @Success 204
// @Failure 400 {string} string "invalid json"
// @Failure 409 {string} string "operation not allowed in current step"
// @Router /assessments/{assessmentID}/camera/error [post]
func cameraErrorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cameraErrorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := svc.ReportCameraFailure(r.Context(), chi.URLParam(r, "assessmentID"), req.Name); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toSessionResponse(s Session, c camera.Constraints) sessionResponse {
	segs := Indicator(s.Step)
	ind := make([]indicatorSegmentResponse, 0, len(segs))
	for _, seg := range segs {
		ind = append(ind, indicatorSegmentResponse{Step: seg.Step, Lit: seg.Lit})
	}

	out := sessionResponse{
		ID:        s.ID,
		Step:      s.Step,
		StepIndex: s.Step.Index(),
		Indicator: ind,
		Draft: draftResponse{
			Name:        s.Draft.Name,
			DisplayName: s.Draft.DisplayName(),
			Species:     s.Draft.Species,
			Age:         s.Draft.Age,
			Sex:         s.Draft.Sex,
			Breed:       s.Draft.Breed,
		},
		Camera: cameraResponse{
			Permission:  s.Permission,
			Error:       s.CameraError,
			FailureKind: s.CameraFailure,
			CanRetry:    s.Step == StepCamera && s.Permission != PermissionGranted,
			Constraints: constraintsResponse{
				Facing:      c.Facing,
				IdealWidth:  c.IdealWidth,
				IdealHeight: c.IdealHeight,
			},
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}

	if s.Image != nil {
		out.Image = &imageResponse{
			DataURI:    s.Image.DataURI,
			Width:      s.Image.Width,
			Height:     s.Image.Height,
			Bytes:      s.Image.Bytes,
			CapturedAt: s.Image.CapturedAt,
		}
	}
	if s.Result != nil {
		out.Result = &resultResponse{
			OverallScore: s.Result.OverallScore,
			Headline:     s.Result.Headline,
			CompletedAt:  s.Result.CompletedAt,
		}
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "assessment not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrImageRequired),
		errors.Is(err, ErrStepMismatch),
		errors.Is(err, ErrCameraUnavailable),
		errors.Is(err, ErrFeedUnsupported):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
