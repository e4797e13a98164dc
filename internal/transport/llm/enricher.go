// Package llm implements the enrichment collaborator: a chat-model call
// that classifies a domain into two categories and writes one or two
// business-use descriptions for it.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"github.com/sellside/comps/internal/domain"
)

// Config holds the enrichment provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// Enricher calls an OpenAI-compatible chat model and parses its strict
// JSON response. It never substitutes fabricated data on failure; the
// pipeline decides explicitly what to do with an enrichment error.
type Enricher struct {
	model  llms.Model
	logger *zap.Logger
}

// NewEnricher creates the enrichment client.
func NewEnricher(cfg *Config) (*Enricher, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Enricher{model: client, logger: logger}, nil
}

const promptTemplate = `You are a domain branding and analysis expert.

Task:
1) Generate up to TWO distinct, business-oriented descriptions for this domain.
2) Classify the domain into TWO categories (primary and secondary) from a fixed list.

Domain: %s

PART 1: DESCRIPTIONS
- Consider BOTH the word(s) in the name and the TLD (e.g., .ai, .io, .com).
- Focus on realistic, commercially viable uses where a real company or project
  would use this as their main brand or product domain.
- Each description MUST be 1-3 sentences, explain HOW the domain could be used,
  and mention the kind of business or sector in natural language.
- Generate 1-2 descriptions that together cover the main plausible uses of the
  domain (do NOT exceed 2 descriptions).

PART 2: CATEGORY CLASSIFICATION
Choose ONE PRIMARY category (strongest fit) and ONE SECONDARY category (next
best fit, must be different from primary) from this list:
%s

Return STRICT JSON with this schema and nothing else (no explanations, no
markdown fences):

{
  "primary_category": "...",
  "secondary_category": "...",
  "descriptions": ["...", "..."]
}`

// Enrich classifies the domain and generates descriptions. Anything other
// than a valid strict-JSON response is an ErrEnrichment.
func (e *Enricher) Enrich(ctx context.Context, domainName string) (domain.Enrichment, error) {
	prompt := fmt.Sprintf(promptTemplate, domainName, strings.Join(domain.Categories, "\n"))

	out, err := llms.GenerateFromSinglePrompt(ctx, e.model, prompt,
		llms.WithTemperature(0.05),
		llms.WithJSONMode(),
	)
	if err != nil {
		return domain.Enrichment{}, fmt.Errorf("%w: %w", domain.ErrEnrichment, err)
	}

	enr, err := parseEnrichment(out)
	if err != nil {
		e.logger.Warn("unparsable enrichment response",
			zap.String("domain", domainName),
			zap.Error(err),
		)
		return domain.Enrichment{}, fmt.Errorf("%w: %w", domain.ErrEnrichment, err)
	}
	return enr, nil
}

// parseEnrichment validates the raw model output against the category
// vocabulary and description count contract.
func parseEnrichment(raw string) (domain.Enrichment, error) {
	var enr domain.Enrichment
	if err := json.Unmarshal([]byte(stripFences(raw)), &enr); err != nil {
		return domain.Enrichment{}, fmt.Errorf("decode response: %w", err)
	}
	if !domain.ValidCategory(enr.PrimaryCategory) {
		return domain.Enrichment{}, fmt.Errorf("unknown primary category %q", enr.PrimaryCategory)
	}
	if !domain.ValidCategory(enr.SecondaryCategory) {
		return domain.Enrichment{}, fmt.Errorf("unknown secondary category %q", enr.SecondaryCategory)
	}
	if enr.PrimaryCategory == enr.SecondaryCategory {
		return domain.Enrichment{}, fmt.Errorf("primary and secondary category are both %q", enr.PrimaryCategory)
	}
	if n := len(enr.Descriptions); n < 1 || n > 2 {
		return domain.Enrichment{}, fmt.Errorf("expected 1-2 descriptions, got %d", n)
	}
	return enr, nil
}

// stripFences removes a markdown code fence if the model wrapped its JSON
// despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
