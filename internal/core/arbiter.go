package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// SearchThreshold is deliberately low to favor recall; arbitration
	// re-checks the winner against MatchConfidenceBar.
	SearchThreshold = 0.5

	// MatchConfidenceBar is the boosted similarity a knowledge-base candidate
	// must exceed to answer the request outright.
	MatchConfidenceBar = 0.65

	// DefaultAITimeout bounds the single generative call per request.
	DefaultAITimeout = 8 * time.Second

	// maxContextResults limits how many retained knowledge-base results feed
	// the generative prompt.
	maxContextResults = 2

	aiConfidenceWithContext    = 0.7
	aiConfidenceWithoutContext = 0.6
)

// Generator issues a single text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Arbitrator runs the response-resolution chain: knowledge-base match above
// the confidence bar, then a generative call with knowledge-base context,
// then a static intent-keyed fallback. Both collaborators are optional; a nil
// collaborator skips its stage entirely. Every stage is failure-isolated so
// the chain always terminates with a populated BotResponse.
type Arbitrator struct {
	kb        *KnowledgeBase
	generator Generator
	logger    *zap.Logger

	// AITimeout is the hard deadline on the generative call. Overridable for
	// tests; defaults to DefaultAITimeout.
	AITimeout time.Duration
}

func NewArbitrator(kb *KnowledgeBase, generator Generator, logger *zap.Logger) *Arbitrator {
	return &Arbitrator{
		kb:        kb,
		generator: generator,
		logger:    logger,
		AITimeout: DefaultAITimeout,
	}
}

// Respond resolves one message to a BotResponse. It never returns an error:
// invalid input and unexpected failures both terminate in the error fallback.
func (a *Arbitrator) Respond(ctx context.Context, message string) (resp BotResponse) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("response pipeline panicked", zap.Any("panic", r))
			resp = ErrorFallback(fmt.Sprint(r))
		}
	}()

	message = strings.TrimSpace(message)
	if message == "" {
		return ErrorFallback("Invalid message")
	}

	ir := Classify(message)
	a.logger.Debug("message classified",
		zap.String("intent", string(ir.Intent)),
		zap.Strings("entities", ir.Entities),
		zap.String("sentiment", string(ir.Sentiment)))

	// Stage 2: knowledge-base attempt. Results below the bar are retained as
	// context for the generative stage and for the notion fallback.
	var searchResults []SearchResult
	if a.kb != nil {
		searchResults = a.kb.Search(ctx, message, SearchThreshold)

		if best := SelectBestResponse(searchResults, ir.Intent, ir.Entities); best != nil && best.Similarity > MatchConfidenceBar {
			a.logger.Info("knowledge base match",
				zap.Float64("similarity", best.Similarity),
				zap.String("question", best.Question))
			return BotResponse{
				Response:   best.Content,
				Confidence: best.Similarity,
				Source:     SourceKnowledgeBase,
				Metadata: ResponseMetadata{
					Intent:          string(ir.Intent),
					Entities:        ir.Entities,
					Sentiment:       string(ir.Sentiment),
					MatchedQuestion: best.Question,
				},
			}
		}
	}

	// Stage 3: one generative attempt, hard deadline, no retry. Any failure
	// falls through.
	if a.generator != nil {
		if answer, ok := a.generateAnswer(ctx, message, ir, searchResults); ok {
			contextUsed := len(searchResults) > 0
			confidence := aiConfidenceWithoutContext
			if contextUsed {
				confidence = aiConfidenceWithContext
			}
			return BotResponse{
				Response:   answer,
				Confidence: confidence,
				Source:     SourceAI,
				Metadata: ResponseMetadata{
					Intent:      string(ir.Intent),
					Entities:    ir.Entities,
					Sentiment:   string(ir.Sentiment),
					ContextUsed: &contextUsed,
				},
			}
		}
	}

	// Stage 4: static fallback. A retained result, even below the bar, beats
	// the canned template.
	if len(searchResults) > 0 {
		top := searchResults[0]
		return BotResponse{
			Response:   top.Content + notionFallbackSuffix,
			Confidence: top.Similarity,
			Source:     SourceNotionFallback,
			Metadata: ResponseMetadata{
				Intent:          string(ir.Intent),
				Entities:        ir.Entities,
				Sentiment:       string(ir.Sentiment),
				MatchedQuestion: top.Question,
			},
		}
	}

	return FallbackResponse(ir)
}

func (a *Arbitrator) generateAnswer(ctx context.Context, message string, ir IntentResult, searchResults []SearchResult) (string, bool) {
	prompt := BuildPrompt(message, ir, searchResults)

	ctx, cancel := context.WithTimeout(ctx, a.AITimeout)
	defer cancel()

	answer, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		a.logger.Warn("generative attempt failed", zap.Error(err))
		return "", false
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		a.logger.Warn("generative attempt returned empty answer")
		return "", false
	}
	return answer, true
}

// BuildPrompt assembles the single generative prompt: a fixed system
// instruction naming the business, the classified intent and topics, up to
// two knowledge-base blocks, and the raw user question.
func BuildPrompt(message string, ir IntentResult, searchResults []SearchResult) string {
	var b strings.Builder

	b.WriteString("You are RED CAT PICTURES AI assistant. Respond in 2-3 sentences about photography services.\n\n")
	b.WriteString("User Intent: ")
	b.WriteString(string(ir.Intent))
	b.WriteString("\nTopics: ")
	if len(ir.Entities) > 0 {
		b.WriteString(strings.Join(ir.Entities, ", "))
	} else {
		b.WriteString("general")
	}
	b.WriteString("\n\n")

	if len(searchResults) > 0 {
		b.WriteString("Knowledge:\n")
		for i, r := range searchResults {
			if i >= maxContextResults {
				break
			}
			fmt.Fprintf(&b, "FAQ %d: %s\n%s\n\n", i+1, r.Question, r.Content)
		}
	}

	b.WriteString("Answer the user's question helpfully and concisely.\n\n")
	b.WriteString("Question: ")
	b.WriteString(message)
	return b.String()
}
