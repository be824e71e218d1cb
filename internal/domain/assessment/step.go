package assessment

// Step es el paso activo del wizard. Exactamente uno está activo por sesión.
// @Enum identity, guidance, camera, review, processing, complete
type Step string

const (
	StepIdentity   Step = "identity"
	StepGuidance   Step = "guidance"
	StepCamera     Step = "camera"
	StepReview     Step = "review"
	StepProcessing Step = "processing"
	StepComplete   Step = "complete"
)

// Steps en orden de avance.
var Steps = []Step{
	StepIdentity,
	StepGuidance,
	StepCamera,
	StepReview,
	StepProcessing,
	StepComplete,
}

// Index devuelve la posición del paso, o -1 si no es un paso conocido.
func (s Step) Index() int {
	for i, st := range Steps {
		if st == s {
			return i
		}
	}
	return -1
}

func (s Step) Valid() bool {
	return s.Index() >= 0
}

type IndicatorSegment struct {
	Step Step
	Lit  bool
}

// Indicator: se iluminan todos los pasos hasta el activo inclusive.
func Indicator(active Step) []IndicatorSegment {
	idx := active.Index()
	out := make([]IndicatorSegment, 0, len(Steps))
	for i, st := range Steps {
		out = append(out, IndicatorSegment{Step: st, Lit: idx >= 0 && i <= idx})
	}
	return out
}
