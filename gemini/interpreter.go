// Package gemini implements query interpretation using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/animalloo/animalloo"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Interpreter implements animalloo.Interpreter at compile time.
var _ animalloo.Interpreter = (*Interpreter)(nil)

// Interpreter implements animalloo.Interpreter using Google Gemini. It is
// total: an unreachable or misconfigured collaborator, a canceled context,
// and a malformed response all degrade to the fallback filter instead of
// surfacing an error. The fallback trades category precision for a wider
// radius and pure keyword matching.
type Interpreter struct {
	client  *genai.Client
	model   string
	vocab   []animalloo.Category
	limiter *rate.Limiter
}

// NewInterpreter creates a new Interpreter over the given client and category
// vocabulary. A nil client is legal and makes every call resolve to the
// fallback filter. A nil limiter disables rate limiting.
func NewInterpreter(client *genai.Client, model string, vocab []animalloo.Category, limiter *rate.Limiter) *Interpreter {
	if model == "" {
		model = DefaultModel
	}
	return &Interpreter{client: client, model: model, vocab: vocab, limiter: limiter}
}

// Interpret converts a raw text query into a SearchFilter.
func (i *Interpreter) Interpret(ctx context.Context, query string) animalloo.SearchFilter {
	if i.client == nil {
		return animalloo.FallbackFilter(query)
	}

	if i.limiter != nil {
		if err := i.limiter.Wait(ctx); err != nil {
			return animalloo.FallbackFilter(query)
		}
	}

	result, err := i.client.Models.GenerateContent(ctx, i.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildPrompt(query, i.vocab)}},
		}},
		BuildConfig(),
	)
	if err != nil || result == nil {
		return animalloo.FallbackFilter(query)
	}

	filter, err := ParseResponse(result.Text(), i.vocab)
	if err != nil {
		return animalloo.FallbackFilter(query)
	}
	return filter
}

// BuildConfig returns the GenerateContentConfig for interpretation calls.
// The response is constrained to JSON so it can be parsed directly.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are the search assistant for a pet facility directory. Translate the user's query into a JSON search filter for a proximity search around the user's current location. Respond with JSON only.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildPrompt builds the user prompt carrying the raw query and the category
// vocabulary the response must stay within.
func BuildPrompt(query string, vocab []animalloo.Category) string {
	names := make([]string, len(vocab))
	for i, c := range vocab {
		names[i] = string(c)
	}
	vocabJSON, _ := json.Marshal(names)

	var sb strings.Builder
	sb.WriteString("Analyze the search query and produce a JSON object with exactly these fields:\n\n")
	fmt.Fprintf(&sb, "1. \"categories\": the most relevant subset of %s.\n", vocabJSON)
	sb.WriteString("   Use an empty list when no category applies, and the full list when the query asks for everything.\n")
	sb.WriteString("2. \"search_radius_km\": a recommended search radius in kilometers. Default to 3.0.\n")
	sb.WriteString("   Use 1.0 for walking or biking distance phrasing; use 10.0 or more for explicit far or city-wide phrasing.\n")
	sb.WriteString("3. \"text_filter\": an extra keyword such as \"24시\", \"야간\" or \"전문\" capturing qualifiers not covered by the categories,\n")
	sb.WriteString("   matched against facility names and descriptions. Use null when no such qualifier exists.\n\n")
	fmt.Fprintf(&sb, "Query: %q", query)
	return sb.String()
}

// response is the wire shape of an interpretation reply. Pointer fields
// distinguish an omitted field from a zero value.
type response struct {
	Categories     *[]string `json:"categories"`
	SearchRadiusKm *float64  `json:"search_radius_km"`
	TextFilter     *string   `json:"text_filter"`
}

// ParseResponse parses a collaborator reply into a SearchFilter. A reply that
// is not valid JSON, omits the categories or radius field, or recommends a
// non-positive radius is an interpretation failure. Categories outside the
// vocabulary are dropped, never propagated.
func ParseResponse(text string, vocab []animalloo.Category) (animalloo.SearchFilter, error) {
	var resp response
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return animalloo.SearchFilter{}, fmt.Errorf("failed to parse interpretation response: %w", err)
	}
	if resp.Categories == nil {
		return animalloo.SearchFilter{}, animalloo.Errorf(animalloo.EINVALID, "interpretation response missing categories")
	}
	if resp.SearchRadiusKm == nil {
		return animalloo.SearchFilter{}, animalloo.Errorf(animalloo.EINVALID, "interpretation response missing search_radius_km")
	}
	if *resp.SearchRadiusKm <= 0 {
		return animalloo.SearchFilter{}, animalloo.Errorf(animalloo.EINVALID, "interpretation radius must be positive, got %v", *resp.SearchRadiusKm)
	}

	var cats []animalloo.Category
	for _, name := range *resp.Categories {
		c := animalloo.Category(name)
		if inVocab(c, vocab) {
			cats = append(cats, c)
		}
	}

	keyword := resp.TextFilter
	if keyword != nil && *keyword == "" {
		keyword = nil
	}

	return animalloo.SearchFilter{
		Categories: cats,
		RadiusKm:   *resp.SearchRadiusKm,
		Keyword:    keyword,
	}, nil
}

func inVocab(c animalloo.Category, vocab []animalloo.Category) bool {
	for _, v := range vocab {
		if v == c {
			return true
		}
	}
	return false
}
