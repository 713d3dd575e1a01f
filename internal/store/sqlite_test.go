package store

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordInteraction_AssignsID(t *testing.T) {
	s := newTestStore(t)

	interaction := &Interaction{
		Message:    "how much for a wedding shoot",
		Intent:     "pricing_inquiry",
		Sentiment:  "neutral",
		Source:     "knowledge_base",
		Confidence: 0.9,
		LatencyMS:  42,
	}
	if err := s.RecordInteraction(interaction); err != nil {
		t.Fatalf("RecordInteraction failed: %v", err)
	}
	if interaction.ID == "" {
		t.Error("interaction ID not assigned")
	}
}

func TestRecentInteractions_NewestFirst(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, source := range []string{"fallback", "ai", "knowledge_base"} {
		err := s.RecordInteraction(&Interaction{
			Message:   "msg",
			Intent:    "general_inquiry",
			Sentiment: "neutral",
			Source:    source,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("RecordInteraction failed: %v", err)
		}
	}

	interactions, err := s.RecentInteractions(10)
	if err != nil {
		t.Fatalf("RecentInteractions failed: %v", err)
	}
	if len(interactions) != 3 {
		t.Fatalf("got %d interactions, want 3", len(interactions))
	}
	if interactions[0].Source != "knowledge_base" || interactions[2].Source != "fallback" {
		t.Errorf("wrong order: %q, %q, %q", interactions[0].Source, interactions[1].Source, interactions[2].Source)
	}
}

func TestRecentInteractions_Limit(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		err := s.RecordInteraction(&Interaction{
			Message:   "msg",
			Intent:    "general_inquiry",
			Sentiment: "neutral",
			Source:    "fallback",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("RecordInteraction failed: %v", err)
		}
	}

	interactions, err := s.RecentInteractions(2)
	if err != nil {
		t.Fatalf("RecentInteractions failed: %v", err)
	}
	if len(interactions) != 2 {
		t.Errorf("got %d interactions, want 2", len(interactions))
	}
}
