package core

import (
	"sort"
	"strings"
)

const (
	categoryBoost = 0.15
	entityBoost   = 0.10
	maxScore      = 1.0

	// Query words at or below this length are ignored by the scorer.
	minWordLength = 3
)

// Category keyword looked for in a document's category when the message
// carries the given intent.
var intentCategoryKeywords = map[Intent]string{
	IntentPricing:   "pricing",
	IntentBooking:   "booking",
	IntentService:   "service",
	IntentContact:   "contact",
	IntentAbout:     "about",
	IntentPortfolio: "portfolio",
}

// KeywordSimilarity is the base relevance metric: the fraction of query words
// longer than three characters that appear as a substring anywhere in text.
// It is recall-biased by design; there is no term weighting or length
// normalization. Returns 0 when the query has no qualifying words.
func KeywordSimilarity(query, text string) float64 {
	textLower := strings.ToLower(text)

	var qualifying, matched int
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if len(word) <= minWordLength {
			continue
		}
		qualifying++
		if strings.Contains(textLower, word) {
			matched++
		}
	}

	if qualifying == 0 {
		return 0
	}
	return float64(matched) / float64(qualifying)
}

// ScoreDocument applies KeywordSimilarity to a document's combined question
// and answer text.
func ScoreDocument(query string, doc FAQDocument) float64 {
	return KeywordSimilarity(query, doc.Question+" "+doc.Answer)
}

// SelectBestResponse re-scores candidates with intent and entity boosts and
// returns the highest-scoring one, or nil when there are no candidates. The
// input slice is not modified. Boosts are additive: +0.15 when the document
// category contains the intent's category keyword, +0.10 per entity tag found
// in the question or category, clamped to 1.0 after all boosts.
func SelectBestResponse(results []SearchResult, intent Intent, entities []string) *SearchResult {
	if len(results) == 0 {
		return nil
	}

	boosted := make([]SearchResult, len(results))
	copy(boosted, results)

	for i := range boosted {
		category := strings.ToLower(boosted[i].Category)
		question := strings.ToLower(boosted[i].Question)

		score := boosted[i].Similarity
		if keyword, ok := intentCategoryKeywords[intent]; ok && strings.Contains(category, keyword) {
			score += categoryBoost
		}
		for _, entity := range entities {
			if strings.Contains(question, entity) || strings.Contains(category, entity) {
				score += entityBoost
			}
		}
		if score > maxScore {
			score = maxScore
		}
		boosted[i].Similarity = score
	}

	sort.SliceStable(boosted, func(i, j int) bool {
		return boosted[i].Similarity > boosted[j].Similarity
	})
	return &boosted[0]
}
