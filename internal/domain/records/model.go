package records

type Species string

const (
	SpeciesCattle  Species = "cattle"
	SpeciesBuffalo Species = "buffalo"
)

type Status string

const (
	StatusExcellent      Status = "excellent"
	StatusHealthy        Status = "healthy"
	StatusGood           Status = "good"
	StatusNeedsAttention Status = "needs attention"
)

func (s Status) Valid() bool {
	switch s {
	case StatusExcellent, StatusHealthy, StatusGood, StatusNeedsAttention:
		return true
	default:
		return false
	}
}

// Band es el color con el que la UI pinta un score.
type Band string

const (
	BandGreen  Band = "green"
	BandYellow Band = "yellow"
	BandRed    Band = "red"
)

func ScoreBand(score int) Band {
	switch {
	case score >= 80:
		return BandGreen
	case score >= 60:
		return BandYellow
	default:
		return BandRed
	}
}

// AnimalRecord es una entrada del rebaño. Detail es nil cuando solo hay resumen.
type AnimalRecord struct {
	ID           string  `yaml:"id" json:"id"`
	Name         string  `yaml:"name" json:"name"`
	Breed        string  `yaml:"breed" json:"breed"`
	Species      Species `yaml:"species" json:"species"`
	Score        int     `yaml:"score" json:"score"`
	Image        string  `yaml:"image" json:"image"`
	LastAssessed string  `yaml:"last_assessed" json:"last_assessed"`
	Status       Status  `yaml:"status" json:"status"`
	Detail       *Detail `yaml:"detail,omitempty" json:"detail,omitempty"`
}

type Detail struct {
	BreedConfidence int              `yaml:"breed_confidence" json:"breed_confidence"`
	Age             string           `yaml:"age" json:"age"`
	Sex             string           `yaml:"sex" json:"sex"`
	KeyInsight      string           `yaml:"key_insight" json:"key_insight"`
	Metrics         Metrics          `yaml:"metrics" json:"metrics"`
	Measurements    Measurements     `yaml:"measurements" json:"measurements"`
	History         []ScorePoint     `yaml:"history" json:"history"`
	Assessments     []PastAssessment `yaml:"assessments" json:"assessments"`
	Recommendations []string         `yaml:"recommendations" json:"recommendations"`
}

type Metric struct {
	Score   int    `yaml:"score" json:"score"`
	Ideal   string `yaml:"ideal" json:"ideal"`
	Insight string `yaml:"insight" json:"insight"`
}

type Metrics struct {
	Lifespan       Metric `yaml:"lifespan" json:"lifespan"`
	Reproductivity Metric `yaml:"reproductivity" json:"reproductivity"`
	Productivity   Metric `yaml:"productivity" json:"productivity"`
	Dairy          Metric `yaml:"dairy" json:"dairy"`
}

type Measurements struct {
	Height     string `yaml:"height" json:"height"`
	BodyLength string `yaml:"body_length" json:"body_length"`
	ChestWidth string `yaml:"chest_width" json:"chest_width"`
}

type ScorePoint struct {
	Date  string `yaml:"date" json:"date"`
	Score int    `yaml:"score" json:"score"`
}

type PastAssessment struct {
	Date   string `yaml:"date" json:"date"`
	Score  int    `yaml:"score" json:"score"`
	Status string `yaml:"status" json:"status"`
}
