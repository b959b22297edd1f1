package models

// InsightType is the severity of an insight
type InsightType string

const (
	InsightInfo    InsightType = "info"
	InsightWarning InsightType = "warning"
	InsightSuccess InsightType = "success"
)

// Insight is a derived advisory message about portfolio composition or performance.
// Insights are recomputed on every pass; only the ID is ever persisted (as a dismissal).
type Insight struct {
	ID            string      `json:"id"`
	Type          InsightType `json:"type"`
	Title         string      `json:"title"`
	ShortText     string      `json:"shortText"`
	FullText      string      `json:"fullText"`
	LearnMoreLink string      `json:"learnMoreLink"`
}

// InsightList is the response shape for a user's insights
type InsightList struct {
	Insights []Insight `json:"insights"`
	Total    int       `json:"total"`     // triggered before dismissal and truncation
	Hidden   int       `json:"dismissed"` // triggered but dismissed
}
