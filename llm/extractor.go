package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const extractionMaxTokens = 1024

const extractionInstructions = `You are an assistant that extracts structured fields from a natural language accommodation request.
Return ONLY a JSON object in this format:

{
  "destination": str,
  "check_in": "YYYY-MM-DD",
  "check_out": "YYYY-MM-DD",
  "guests": int,
  "min_budget": float,
  "max_budget": float,
  "standard": "economy|standard|luxury"
}

Convert dates to YYYY-MM-DD ISO format. Budgets should be numbers.
If information is missing, make reasonable assumptions.
Do not include any explanations, notes, or markdown formatting. Only output the JSON object.`

// Extractor pulls the raw trip fields out of free text. Its output is
// untrusted and must be validated before use.
type Extractor struct {
	client *Client
}

func NewExtractor(client *Client) *Extractor {
	return &Extractor{client: client}
}

func (e *Extractor) Extract(ctx context.Context, query string) (map[string]any, error) {
	text, err := e.client.Complete(ctx, extractionInstructions, query, extractionMaxTokens)
	if err != nil {
		return nil, err
	}
	return ParseFields(text)
}

// ParseFields decodes a JSON object, tolerating a surrounding code fence
func ParseFields(text string) (map[string]any, error) {
	body := StripCodeFence(text)
	var fields map[string]any
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return nil, fmt.Errorf("could not parse JSON %q: %w", body, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("expected a JSON object, got %q", body)
	}
	return fields, nil
}

// StripCodeFence removes a ``` or ```json fence wrapping the whole text
func StripCodeFence(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") || !strings.HasSuffix(t, "```") || len(t) < 6 {
		return t
	}
	t = strings.TrimSuffix(strings.TrimPrefix(t, "```"), "```")
	if nl := strings.IndexByte(t, '\n'); nl >= 0 {
		if lang := strings.TrimSpace(t[:nl]); lang != "" && !strings.ContainsAny(lang, "{[") {
			t = t[nl+1:]
		}
	}
	return strings.TrimSpace(t)
}
