package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type mockGenerator struct {
	response string
	err      error
	// blockUntilCancel makes Generate wait for ctx cancellation, simulating
	// a hung upstream call.
	blockUntilCancel bool

	prompts []string
	calls   int
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.calls++
	m.prompts = append(m.prompts, prompt)
	if m.blockUntilCancel {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return m.response, m.err
}

func newTestArbitrator(provider FAQProvider, gen Generator) *Arbitrator {
	var kb *KnowledgeBase
	if provider != nil {
		kb = NewKnowledgeBase(provider, zap.NewNop())
	}
	return NewArbitrator(kb, gen, zap.NewNop())
}

func TestRespond_KnowledgeBaseMatch(t *testing.T) {
	provider := &mockProvider{docs: []FAQDocument{
		{
			Question: "How much does a wedding shoot cost?",
			Answer:   "Wedding packages start at ₹25,000.",
			Category: "Pricing",
		},
	}}
	a := newTestArbitrator(provider, nil)

	resp := a.Respond(context.Background(), "how much does a wedding shoot cost")

	if resp.Source != SourceKnowledgeBase {
		t.Fatalf("source = %q, want %q", resp.Source, SourceKnowledgeBase)
	}
	if resp.Confidence <= MatchConfidenceBar {
		t.Errorf("confidence = %v, want > %v", resp.Confidence, MatchConfidenceBar)
	}
	if resp.Response != "Wedding packages start at ₹25,000." {
		t.Errorf("response = %q", resp.Response)
	}
	if resp.Metadata.MatchedQuestion == "" {
		t.Error("metadata.matchedQuestion not set")
	}
}

func TestRespond_NoCollaboratorsFallsBackToTemplate(t *testing.T) {
	a := newTestArbitrator(nil, nil)

	resp := a.Respond(context.Background(), "hi")

	if resp.Source != SourceFallback {
		t.Fatalf("source = %q, want %q", resp.Source, SourceFallback)
	}
	if resp.Confidence != 0.5 {
		t.Errorf("confidence = %v, want exactly 0.5", resp.Confidence)
	}
	if resp.Metadata.Intent != string(IntentGeneral) {
		t.Errorf("intent = %q, want %q", resp.Metadata.Intent, IntentGeneral)
	}
}

func TestRespond_LowConfidenceMatchBecomesNotionFallback(t *testing.T) {
	// Two of four qualifying query words match: similarity 0.5, above the
	// search threshold but below the terminal bar. No AI configured.
	provider := &mockProvider{docs: []FAQDocument{
		{Question: "Cancellation policy", Answer: "We need 48 hours notice.", Category: ""},
	}}
	a := newTestArbitrator(provider, nil)

	resp := a.Respond(context.Background(), "what cancellation policy refund")

	if resp.Source != SourceNotionFallback {
		t.Fatalf("source = %q, want %q", resp.Source, SourceNotionFallback)
	}
	if resp.Confidence != 0.5 {
		t.Errorf("confidence = %v, want raw similarity 0.5", resp.Confidence)
	}
	if !strings.HasPrefix(resp.Response, "We need 48 hours notice.") {
		t.Errorf("response does not lead with the matched answer: %q", resp.Response)
	}
	if !strings.Contains(resp.Response, "Need more info?") {
		t.Error("contact suffix not appended")
	}
	if resp.Metadata.MatchedQuestion != "Cancellation policy" {
		t.Errorf("matchedQuestion = %q", resp.Metadata.MatchedQuestion)
	}
}

func TestRespond_AIWithContext(t *testing.T) {
	provider := &mockProvider{docs: []FAQDocument{
		{Question: "Cancellation policy", Answer: "We need 48 hours notice.", Category: ""},
	}}
	gen := &mockGenerator{response: "You can cancel up to 48 hours before the shoot."}
	a := newTestArbitrator(provider, gen)

	resp := a.Respond(context.Background(), "what cancellation policy refund")

	if resp.Source != SourceAI {
		t.Fatalf("source = %q, want %q", resp.Source, SourceAI)
	}
	if resp.Confidence != 0.7 {
		t.Errorf("confidence = %v, want 0.7 with context", resp.Confidence)
	}
	if resp.Metadata.ContextUsed == nil || !*resp.Metadata.ContextUsed {
		t.Error("metadata.contextUsed should be true")
	}
	if len(gen.prompts) != 1 || !strings.Contains(gen.prompts[0], "FAQ 1: Cancellation policy") {
		t.Errorf("prompt missing knowledge context: %q", gen.prompts)
	}
}

func TestRespond_AIWithoutContext(t *testing.T) {
	gen := &mockGenerator{response: "We offer wedding, food and commercial photography."}
	a := newTestArbitrator(nil, gen)

	resp := a.Respond(context.Background(), "hello there")

	if resp.Source != SourceAI {
		t.Fatalf("source = %q, want %q", resp.Source, SourceAI)
	}
	if resp.Confidence != 0.6 {
		t.Errorf("confidence = %v, want 0.6 without context", resp.Confidence)
	}
	if resp.Metadata.ContextUsed == nil || *resp.Metadata.ContextUsed {
		t.Error("metadata.contextUsed should be false")
	}
}

func TestRespond_AIFailureFallsThrough(t *testing.T) {
	gen := &mockGenerator{err: errors.New("upstream 500")}
	a := newTestArbitrator(nil, gen)

	resp := a.Respond(context.Background(), "hello there")

	if resp.Source != SourceFallback {
		t.Fatalf("source = %q, want %q", resp.Source, SourceFallback)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want exactly 1 (no retries)", gen.calls)
	}
}

func TestRespond_AIEmptyAnswerFallsThrough(t *testing.T) {
	gen := &mockGenerator{response: "   "}
	a := newTestArbitrator(nil, gen)

	resp := a.Respond(context.Background(), "hello there")
	if resp.Source != SourceFallback {
		t.Errorf("source = %q, want %q", resp.Source, SourceFallback)
	}
}

func TestRespond_AITimeoutIsBounded(t *testing.T) {
	gen := &mockGenerator{blockUntilCancel: true}
	a := newTestArbitrator(nil, gen)
	a.AITimeout = 50 * time.Millisecond

	start := time.Now()
	resp := a.Respond(context.Background(), "hello there")
	elapsed := time.Since(start)

	if resp.Source != SourceFallback {
		t.Fatalf("source = %q, want %q", resp.Source, SourceFallback)
	}
	if elapsed > time.Second {
		t.Errorf("pipeline waited %v past the deadline", elapsed)
	}
}

func TestRespond_EmptyMessageIsErrorTerminal(t *testing.T) {
	a := newTestArbitrator(nil, nil)

	for _, message := range []string{"", "   ", "\n\t"} {
		resp := a.Respond(context.Background(), message)
		if resp.Source != SourceError {
			t.Errorf("Respond(%q).Source = %q, want %q", message, resp.Source, SourceError)
		}
		if resp.Confidence != 0 {
			t.Errorf("Respond(%q).Confidence = %v, want 0", message, resp.Confidence)
		}
	}
}

type panickingProvider struct{}

func (panickingProvider) ActiveFAQs(ctx context.Context) ([]FAQDocument, error) {
	panic("corrupted corpus")
}

func TestRespond_PanicBecomesErrorTerminal(t *testing.T) {
	a := newTestArbitrator(panickingProvider{}, nil)

	resp := a.Respond(context.Background(), "wedding pricing")

	if resp.Source != SourceError {
		t.Fatalf("source = %q, want %q", resp.Source, SourceError)
	}
	if !strings.Contains(resp.Metadata.ErrorDetails, "corrupted corpus") {
		t.Errorf("errorDetails = %q", resp.Metadata.ErrorDetails)
	}
}

func TestBuildPrompt(t *testing.T) {
	ir := IntentResult{Intent: IntentPricing, Entities: []string{"wedding", "food"}, Sentiment: SentimentNeutral}
	results := []SearchResult{
		{Question: "Q1", Content: "A1", Similarity: 0.6},
		{Question: "Q2", Content: "A2", Similarity: 0.55},
		{Question: "Q3", Content: "A3", Similarity: 0.5},
	}

	prompt := BuildPrompt("how much for a wedding", ir, results)

	if !strings.Contains(prompt, "RED CAT PICTURES") {
		t.Error("prompt missing business name")
	}
	if !strings.Contains(prompt, "User Intent: pricing_inquiry") {
		t.Error("prompt missing intent")
	}
	if !strings.Contains(prompt, "Topics: wedding, food") {
		t.Error("prompt missing entity topics")
	}
	if !strings.Contains(prompt, "FAQ 1: Q1") || !strings.Contains(prompt, "FAQ 2: Q2") {
		t.Error("prompt missing context blocks")
	}
	if strings.Contains(prompt, "FAQ 3") {
		t.Error("prompt context must be capped at two results")
	}
	if !strings.Contains(prompt, "Question: how much for a wedding") {
		t.Error("prompt missing user question")
	}
}

func TestBuildPrompt_NoEntitiesNoContext(t *testing.T) {
	ir := IntentResult{Intent: IntentGeneral, Entities: []string{}, Sentiment: SentimentNeutral}

	prompt := BuildPrompt("hi", ir, nil)

	if !strings.Contains(prompt, "Topics: general") {
		t.Error("prompt should label empty entities as general")
	}
	if strings.Contains(prompt, "Knowledge:") {
		t.Error("prompt should omit the knowledge section without results")
	}
}
