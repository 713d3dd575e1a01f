package core

// Intent is the classified purpose of a user message.
type Intent string

const (
	IntentPricing   Intent = "pricing_inquiry"
	IntentBooking   Intent = "booking_intent"
	IntentService   Intent = "service_inquiry"
	IntentContact   Intent = "contact_request"
	IntentAbout     Intent = "about_inquiry"
	IntentPortfolio Intent = "portfolio_request"
	IntentGeneral   Intent = "general_inquiry"
)

// Sentiment is a coarse tone classification of a user message.
type Sentiment string

const (
	SentimentUrgent    Sentiment = "urgent"
	SentimentPositive  Sentiment = "positive"
	SentimentUncertain Sentiment = "uncertain"
	SentimentNeutral   Sentiment = "neutral"
)

// IntentResult is the full classification of one message. Produced fresh per
// request, never persisted.
type IntentResult struct {
	Intent    Intent
	Entities  []string
	Sentiment Sentiment
}

// FAQDocument is a single knowledge-base entry as supplied by the external
// document store. Missing fields arrive as empty strings.
type FAQDocument struct {
	Question string
	Answer   string
	Category string
}

// SearchResult is one scored knowledge-base candidate.
type SearchResult struct {
	Content    string
	Similarity float64
	Question   string
	Category   string
}

// Response sources, in the order the fallback chain tries them.
const (
	SourceKnowledgeBase  = "knowledge_base"
	SourceAI             = "ai"
	SourceNotionFallback = "notion-fallback"
	SourceFallback       = "fallback"
	SourceError          = "error"
)

// ResponseMetadata carries diagnostics alongside every response.
type ResponseMetadata struct {
	Intent          string   `json:"intent"`
	Entities        []string `json:"entities"`
	Sentiment       string   `json:"sentiment"`
	MatchedQuestion string   `json:"matchedQuestion,omitempty"`
	ContextUsed     *bool    `json:"contextUsed,omitempty"`
	ErrorDetails    string   `json:"errorDetails,omitempty"`
}

// BotResponse is the only externally observable output of the pipeline. It is
// always populated, even on total failure.
type BotResponse struct {
	Response   string           `json:"response"`
	Confidence float64          `json:"confidence"`
	Source     string           `json:"source"`
	Metadata   ResponseMetadata `json:"metadata"`
}
