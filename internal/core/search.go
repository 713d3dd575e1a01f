package core

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

// FAQProvider supplies the raw FAQ corpus from an external document store.
type FAQProvider interface {
	ActiveFAQs(ctx context.Context) ([]FAQDocument, error)
}

// KnowledgeBase scores an externally supplied FAQ corpus against user
// queries. It holds no state between requests; the corpus is re-fetched on
// every search.
type KnowledgeBase struct {
	provider FAQProvider
	logger   *zap.Logger
}

func NewKnowledgeBase(provider FAQProvider, logger *zap.Logger) *KnowledgeBase {
	return &KnowledgeBase{provider: provider, logger: logger}
}

// Search fetches the corpus, scores every valid document and returns the
// results at or above threshold, sorted by descending similarity. It fails
// open: any retrieval error yields an empty result set so the caller can fall
// through to its next strategy.
func (kb *KnowledgeBase) Search(ctx context.Context, query string, threshold float64) []SearchResult {
	docs, err := kb.provider.ActiveFAQs(ctx)
	if err != nil {
		kb.logger.Warn("knowledge base fetch failed, returning no results", zap.Error(err))
		return nil
	}

	results := RankDocuments(query, docs, threshold)
	kb.logger.Debug("knowledge base search complete",
		zap.Int("corpus", len(docs)),
		zap.Int("matches", len(results)),
		zap.Float64("threshold", threshold))
	return results
}

// RankDocuments scores docs against query, drops documents with an empty
// question or answer, keeps scores at or above threshold and sorts descending.
// Ties keep corpus order.
func RankDocuments(query string, docs []FAQDocument, threshold float64) []SearchResult {
	var results []SearchResult
	for _, doc := range docs {
		if doc.Question == "" || doc.Answer == "" {
			continue
		}
		similarity := ScoreDocument(query, doc)
		if similarity < threshold {
			continue
		}
		results = append(results, SearchResult{
			Content:    doc.Answer,
			Similarity: similarity,
			Question:   doc.Question,
			Category:   doc.Category,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	return results
}
