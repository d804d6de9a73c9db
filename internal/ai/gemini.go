// README: Gemini-backed support drafting provider.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiDrafter implements SupportDrafter using Google's Gemini models.
type GeminiDrafter struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiDrafter initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiDrafter(ctx context.Context, apiKey string) (*GeminiDrafter, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON so the response parses into DraftResult.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.4)

	return &GeminiDrafter{client: client, model: model}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiDrafter) Close() {
	p.client.Close()
}

func (p *GeminiDrafter) DraftStatusNote(ctx context.Context, req DraftRequest) (*DraftResult, error) {
	prompt := buildDraftPrompt(req)

	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	// JSON mode should already be clean; strip markdown fences just in case.
	cleanJSON := cleanJSONString(responseText.String())

	var result DraftResult
	if err := json.Unmarshal([]byte(cleanJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}
	return &result, nil
}

func buildDraftPrompt(req DraftRequest) string {
	reason := req.Reason
	if reason == "" {
		reason = "NONE"
	}
	return fmt.Sprintf(`Role: You write short customer-support messages for a food-delivery marketplace.
Order facts:
- Order ID: %s
- Current status: %s
- Vendor: %s
- Operator note: %s

Write one friendly, apologetic-if-negative message (max 2 sentences) telling the
customer what happened with their order and what to expect next. Do not invent
refund amounts or times that are not in the facts.

Respond as JSON: {"message": "...", "tone": "neutral|apologetic|positive"}`,
		req.OrderID, req.Status, req.VendorName, reason)
}

// cleanJSONString strips markdown code fences the model may wrap around JSON.
func cleanJSONString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
