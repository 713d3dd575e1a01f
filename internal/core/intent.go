package core

import (
	"regexp"
	"strings"
)

// Intent rules are checked in order and the first match wins. A message like
// "how much to book a shoot" matches both pricing and booking patterns, so the
// order here is part of the contract.
var intentRules = []struct {
	intent  Intent
	pattern *regexp.Regexp
}{
	{IntentPricing, regexp.MustCompile(`price|pricing|cost|rate|package|charge|fee|budget|how much|quote`)},
	{IntentBooking, regexp.MustCompile(`book|schedule|appointment|available|reserve|date|availability`)},
	{IntentService, regexp.MustCompile(`service|offer|provide|what do you do|what are your services|specializ|capability`)},
	{IntentContact, regexp.MustCompile(`contact|phone|email|address|location|reach|call`)},
	{IntentAbout, regexp.MustCompile(`team|member|founder|who are|people|staff|about|owner`)},
	{IntentPortfolio, regexp.MustCompile(`photo|picture|portfolio|gallery|work|sample|example`)},
}

// Entity rules are additive: every matching tag is collected.
var entityRules = []struct {
	tag     string
	pattern *regexp.Regexp
}{
	{"wedding", regexp.MustCompile(`wedding|marriage|shaadi`)},
	{"food", regexp.MustCompile(`food|cuisine|dish|meal|restaurant|culinary`)},
	{"video", regexp.MustCompile(`video|film|cinema`)},
	{"event", regexp.MustCompile(`event|party|celebration|function`)},
	{"portrait", regexp.MustCompile(`portrait|headshot|profile`)},
	{"commercial", regexp.MustCompile(`commercial|business|corporate|product`)},
}

// Sentiment rules, first match wins, neutral by default.
var sentimentRules = []struct {
	sentiment Sentiment
	pattern   *regexp.Regexp
}{
	{SentimentUrgent, regexp.MustCompile(`urgent|asap|immediately|quickly|rush`)},
	{SentimentPositive, regexp.MustCompile(`thank|great|love|amazing|wonderful|perfect`)},
	{SentimentUncertain, regexp.MustCompile(`confused|not sure|maybe|thinking|considering`)},
}

// Classify extracts intent, entity tags and sentiment from a raw message.
// Matching is case-insensitive and substring-based. It is total: with no
// pattern match it returns general_inquiry / no entities / neutral.
func Classify(message string) IntentResult {
	msg := strings.ToLower(message)

	result := IntentResult{
		Intent:    IntentGeneral,
		Entities:  []string{},
		Sentiment: SentimentNeutral,
	}

	for _, rule := range intentRules {
		if rule.pattern.MatchString(msg) {
			result.Intent = rule.intent
			break
		}
	}

	for _, rule := range entityRules {
		if rule.pattern.MatchString(msg) {
			result.Entities = append(result.Entities, rule.tag)
		}
	}

	for _, rule := range sentimentRules {
		if rule.pattern.MatchString(msg) {
			result.Sentiment = rule.sentiment
			break
		}
	}

	return result
}
