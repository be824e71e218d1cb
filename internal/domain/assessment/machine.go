package assessment

import "errors"

var (
	ErrInvalidTransition = errors.New("invalid transition for current step")
	ErrImageRequired     = errors.New("a captured image is required")
)

// Effect son los efectos que el Service aplica al ejecutar una transición.
type Effect uint8

const (
	EffectAcquireCamera Effect = 1 << iota
	EffectReleaseCamera
	EffectDropImage
	EffectStartProcessing
	EffectExit
)

// Rutas a las que se navega al salir del wizard.
const (
	ExitHome      = "/"
	ExitDashboard = "/dashboard"
)

type Transition struct {
	From    Step
	To      Step
	Effects Effect
	ExitTo  string // solo con EffectExit
}

func (t Transition) Has(e Effect) bool {
	return t.Effects&e != 0
}

func exit(from Step, to string) Transition {
	return Transition{From: from, To: from, Effects: EffectExit | EffectReleaseCamera, ExitTo: to}
}

// Forward es la acción "Next".
func Forward(from Step, hasImage bool) (Transition, error) {
	switch from {
	case StepIdentity:
		return Transition{From: from, To: StepGuidance}, nil
	case StepGuidance:
		return Transition{From: from, To: StepCamera, Effects: EffectAcquireCamera}, nil
	case StepCamera:
		if !hasImage {
			return Transition{}, ErrImageRequired
		}
		return Transition{From: from, To: StepReview, Effects: EffectReleaseCamera}, nil
	case StepReview:
		if !hasImage {
			return Transition{}, ErrImageRequired
		}
		return Transition{From: from, To: StepProcessing, Effects: EffectStartProcessing}, nil
	case StepComplete:
		return exit(from, ExitDashboard), nil
	default:
		// processing avanza solo (timer)
		return Transition{}, ErrInvalidTransition
	}
}

// Backward es la acción "Back". Fuera de guidance/camera/review sale del flujo.
func Backward(from Step) Transition {
	switch from {
	case StepGuidance:
		return Transition{From: from, To: StepIdentity}
	case StepCamera:
		return Transition{From: from, To: StepGuidance, Effects: EffectReleaseCamera}
	case StepReview:
		return Transition{From: from, To: StepCamera, Effects: EffectDropImage | EffectAcquireCamera}
	default:
		return exit(from, ExitHome)
	}
}

// Retake vuelve de review a camera; hace falta una captura nueva para volver a review.
func Retake(from Step) (Transition, error) {
	if from != StepReview {
		return Transition{}, ErrInvalidTransition
	}
	return Transition{From: from, To: StepCamera, Effects: EffectDropImage | EffectAcquireCamera}, nil
}

// Captured es la transición que sigue a una captura exitosa.
func Captured(from Step) (Transition, error) {
	if from != StepCamera {
		return Transition{}, ErrInvalidTransition
	}
	return Transition{From: from, To: StepReview, Effects: EffectReleaseCamera}, nil
}

// Completed es el auto-avance al terminar el análisis simulado.
func Completed(from Step) (Transition, error) {
	if from != StepProcessing {
		return Transition{}, ErrInvalidTransition
	}
	return Transition{From: from, To: StepComplete}, nil
}
