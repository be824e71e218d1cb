package assessment

import (
	"fmt"
	"strings"
	"time"

	"livestock-assessment/internal/domain/camera"
)

// Species define las especies soportadas.
// @Enum cattle, buffalo
type Species string

const (
	SpeciesCattle  Species = "cattle"
	SpeciesBuffalo Species = "buffalo"
)

func ParseSpecies(s string) (Species, bool) {
	switch Species(strings.ToLower(strings.TrimSpace(s))) {
	case SpeciesCattle:
		return SpeciesCattle, true
	case SpeciesBuffalo:
		return SpeciesBuffalo, true
	default:
		return "", false
	}
}

// AnimalDraft son los datos del formulario de identidad. No se persisten.
type AnimalDraft struct {
	Name    string // ID o apodo
	Species Species

	// Opcionales, texto libre.
	Age   string
	Sex   string
	Breed string
}

const fallbackAnimalName = "Your animal"

// DisplayName devuelve el nombre cargado o el genérico.
func (d AnimalDraft) DisplayName() string {
	if n := strings.TrimSpace(d.Name); n != "" {
		return n
	}
	return fallbackAnimalName
}

// CapturedImage es el único frame capturado de la sesión. Se reemplaza entero al re-capturar.
type CapturedImage struct {
	DataURI    string
	Width      int
	Height     int
	Bytes      int
	CapturedAt time.Time
}

// Permission refleja el estado de permiso de cámara ("" = todavía no se pidió).
type Permission string

const (
	PermissionUnknown Permission = ""
	PermissionPrompt  Permission = "prompt"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// MockOverallScore es el puntaje fijo del análisis simulado.
const MockOverallScore = 85

// Result es el resultado (simulado) que se muestra en el paso complete.
type Result struct {
	OverallScore int
	Headline     string
	CompletedAt  time.Time
}

func mockResult(d AnimalDraft, at time.Time) *Result {
	return &Result{
		OverallScore: MockOverallScore,
		Headline:     fmt.Sprintf("%s shows excellent health indicators", d.DisplayName()),
		CompletedAt:  at,
	}
}

// Session es el estado completo de un wizard en curso.
type Session struct {
	ID   string
	Step Step

	Draft AnimalDraft
	Image *CapturedImage

	Permission    Permission
	CameraError   string
	CameraFailure camera.FailureKind

	Result *Result

	CreatedAt time.Time
	UpdatedAt time.Time
}
