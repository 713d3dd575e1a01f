package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kumarnilima1512-bit/redcat-chatbot/internal/core"
	"github.com/kumarnilima1512-bit/redcat-chatbot/internal/notion"
	"github.com/kumarnilima1512-bit/redcat-chatbot/internal/store"
)

// DirectGenerator is the completion call used by the legacy /api/chat
// endpoint.
type DirectGenerator interface {
	GenerateDirect(ctx context.Context, prompt string) (string, error)
}

// SectionFetcher retrieves website HTML and page sections through a proxy.
type SectionFetcher interface {
	FetchHTML(ctx context.Context, websiteURL string) (string, error)
	FetchSection(ctx context.Context, websiteURL, sectionID string) (string, error)
}

type APIHandler struct {
	arbitrator *core.Arbitrator
	notion     *notion.Client    // nil when Notion is not configured
	generator  DirectGenerator   // nil when Gemini is not configured
	fetcher    SectionFetcher
	store      *store.SQLiteStore // nil when the interaction log is disabled
	logger     *zap.Logger
}

func NewAPIHandler(arbitrator *core.Arbitrator, notionClient *notion.Client, generator DirectGenerator, fetcher SectionFetcher, db *store.SQLiteStore, logger *zap.Logger) *APIHandler {
	return &APIHandler{
		arbitrator: arbitrator,
		notion:     notionClient,
		generator:  generator,
		fetcher:    fetcher,
		store:      db,
		logger:     logger,
	}
}

type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message string `json:"message"`
	// Accepted for forward compatibility; the pipeline is single-turn and
	// does not read it.
	ConversationHistory []ConversationTurn `json:"conversationHistory,omitempty"`
}

// ChatSemanticHandler runs the full response-resolution pipeline. Its
// contract is total: it always answers 200 with a BotResponse, the error
// fallback included.
func (h *APIHandler) ChatSemanticHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusOK, core.ErrorFallback("invalid request body"))
		return
	}

	resp := h.arbitrator.Respond(r.Context(), req.Message)
	latency := time.Since(start)

	h.recordInteraction(req.Message, resp, latency)
	h.logger.Info("chat response resolved",
		zap.String("source", resp.Source),
		zap.String("intent", resp.Metadata.Intent),
		zap.Float64("confidence", resp.Confidence),
		zap.Duration("duration", latency))

	writeJSON(w, http.StatusOK, resp)
}

func (h *APIHandler) recordInteraction(message string, resp core.BotResponse, latency time.Duration) {
	if h.store == nil {
		return
	}
	err := h.store.RecordInteraction(&store.Interaction{
		Message:    message,
		Intent:     resp.Metadata.Intent,
		Sentiment:  resp.Metadata.Sentiment,
		Source:     resp.Source,
		Confidence: resp.Confidence,
		LatencyMS:  latency.Milliseconds(),
	})
	if err != nil {
		h.logger.Warn("failed to record interaction", zap.Error(err))
	}
}

type ContactInfo struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Hours   string `json:"hours"`
}

type DirectChatRequest struct {
	Message     string      `json:"message"`
	Section     string      `json:"section,omitempty"`
	SectionURL  string      `json:"sectionUrl,omitempty"`
	CompanyName string      `json:"companyName"`
	ContactInfo ContactInfo `json:"contactInfo"`
}

// ChatHandler is the legacy direct endpoint: one Gemini call with an optional
// website-section context. Unlike the pipeline it has no fallback chain and
// propagates failures as HTTP errors.
func (h *APIHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		http.Error(w, "Gemini API key not configured", http.StatusServiceUnavailable)
		return
	}

	var req DirectChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	var websiteContext string
	if req.Section != "" && req.SectionURL != "" {
		section, err := h.fetcher.FetchSection(r.Context(), req.SectionURL, req.Section)
		if err != nil {
			h.logger.Warn("failed to fetch website context", zap.String("section", req.Section), zap.Error(err))
		} else {
			websiteContext = section
		}
	}

	prompt := buildDirectPrompt(req, websiteContext)

	response, err := h.generator.GenerateDirect(r.Context(), prompt)
	if err != nil {
		h.logger.Error("direct chat generation failed", zap.Error(err))
		http.Error(w, "Failed to get AI response", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": response})
}

func buildDirectPrompt(req DirectChatRequest, websiteContext string) string {
	prompt := fmt.Sprintf(`You are an AI assistant for %s, a professional photography company in India.

Contact Information:
- Phone: %s
- Email: %s
- Address: %s
- Hours: %s

`, req.CompanyName, req.ContactInfo.Phone, req.ContactInfo.Email, req.ContactInfo.Address, req.ContactInfo.Hours)

	if websiteContext != "" {
		prompt += fmt.Sprintf("Website Information about %s:\n%s\n\n", req.Section, websiteContext)
	}

	prompt += `Instructions:
- Provide helpful, accurate, and friendly responses
- Use information from the website context when available
- Keep responses concise (2-4 sentences)
- Format responses with HTML tags like <strong>, <br>, <a href="...">
- For pricing, list packages with prices clearly
- For team/founder questions, use website information
- Always be professional and enthusiastic about photography`

	return fmt.Sprintf("%s\n\nUser Question: %s\n\nProvide a helpful response:", prompt, req.Message)
}

type FetchSectionRequest struct {
	WebsiteURL string `json:"websiteUrl"`
}

func (h *APIHandler) FetchSectionHandler(w http.ResponseWriter, r *http.Request) {
	var req FetchSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	html, err := h.fetcher.FetchHTML(r.Context(), req.WebsiteURL)
	if err != nil {
		h.logger.Error("failed to fetch website section", zap.String("url", req.WebsiteURL), zap.Error(err))
		http.Error(w, "Failed to fetch website section", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"html": html})
}

type SearchFAQRequest struct {
	Query string `json:"query"`
}

func (h *APIHandler) SearchFAQHandler(w http.ResponseWriter, r *http.Request) {
	if h.notion == nil {
		http.Error(w, "Notion not configured", http.StatusServiceUnavailable)
		return
	}

	var req SearchFAQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	faqs, err := h.notion.SearchFAQs(r.Context(), req.Query)
	if err != nil {
		h.logger.Error("FAQ search failed", zap.Error(err))
		http.Error(w, "Failed to search FAQ", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"faqs": faqs})
}

type CompanyInfoRequest struct {
	InfoType string `json:"infoType"`
}

func (h *APIHandler) CompanyInfoHandler(w http.ResponseWriter, r *http.Request) {
	if h.notion == nil {
		http.Error(w, "Notion not configured", http.StatusServiceUnavailable)
		return
	}

	var req CompanyInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	info, err := h.notion.GetCompanyInfo(r.Context(), req.InfoType)
	if err != nil {
		h.logger.Error("company info lookup failed", zap.String("infoType", req.InfoType), zap.Error(err))
		http.Error(w, "Failed to get company info", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"info": info})
}

func (h *APIHandler) ServicesHandler(w http.ResponseWriter, r *http.Request) {
	if h.notion == nil {
		http.Error(w, "Notion not configured", http.StatusServiceUnavailable)
		return
	}

	services, err := h.notion.ActiveServices(r.Context())
	if err != nil {
		h.logger.Error("services lookup failed", zap.Error(err))
		http.Error(w, "Failed to get services", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"services": services})
}

func (h *APIHandler) InteractionsHandler(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		http.Error(w, "Interaction log not configured", http.StatusServiceUnavailable)
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	interactions, err := h.store.RecentInteractions(limit)
	if err != nil {
		h.logger.Error("failed to list interactions", zap.Error(err))
		http.Error(w, "Failed to list interactions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"interactions": interactions})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
