package share

type ReportKind string

const (
	ReportVet       ReportKind = "vet"
	ReportInsurance ReportKind = "insurance"
	ReportBuyer     ReportKind = "buyer"
)

// ReportOption es una de las tarjetas del diálogo de compartir.
type ReportOption struct {
	Kind        ReportKind
	Title       string
	Description string
	ReportName  string
	Features    []string
}

var reportOptions = []ReportOption{
	{
		Kind:        ReportVet,
		Title:       "Share with Vet",
		Description: "Technical PDF with all measurements, graphs, and detailed analysis",
		ReportName:  "Veterinary Technical Report",
		Features: []string{
			"Complete anatomical measurements",
			"Detailed health metrics",
			"Historical trends",
			"Technical recommendations",
		},
	},
	{
		Kind:        ReportInsurance,
		Title:       "Share for Insurance/Loan",
		Description: "Simplified report highlighting animal value and health status",
		ReportName:  "Insurance Valuation Report",
		Features: []string{
			"Overall health score",
			"Breed classification",
			"Key health indicators",
			"Asset valuation summary",
		},
	},
	{
		Kind:        ReportBuyer,
		Title:       "Share with Buyer",
		Description: "Marketing-focused report emphasizing productivity and breed quality",
		ReportName:  "Buyer Information Sheet",
		Features: []string{
			"Productivity highlights",
			"Breed quality metrics",
			"Dairy improvement scores",
			"Investment potential",
		},
	},
}

// Options devuelve una copia de las opciones en orden de presentación.
func Options() []ReportOption {
	out := make([]ReportOption, 0, len(reportOptions))
	for _, o := range reportOptions {
		o.Features = append([]string(nil), o.Features...)
		out = append(out, o)
	}
	return out
}

func LookupReport(kind ReportKind) (ReportOption, bool) {
	for _, o := range reportOptions {
		if o.Kind == kind {
			return o, true
		}
	}
	return ReportOption{}, false
}

type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelSMS      Channel = "sms"
	ChannelEmail    Channel = "email"
)

var Channels = []Channel{ChannelWhatsApp, ChannelSMS, ChannelEmail}

type QuickLink struct {
	Channel Channel
	URL     string
}
