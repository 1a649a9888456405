// Package openai provides an outreach generator backed by the OpenAI Chat
// Completions API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driven"
	"github.com/custodia-labs/prospector/internal/logger"
)

// Ensure Generator implements the interface.
var _ driven.OutreachGenerator = (*Generator)(nil)

// Default configuration values.
const (
	DefaultTimeout   = 120 * time.Second
	DefaultMaxTokens = 4000
)

// Config holds configuration for the outreach generator.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL overrides the API base URL for Azure OpenAI or compatible APIs.
	BaseURL string

	// Model is the chat model (default: gpt-4o-mini).
	Model string

	// Timeout bounds the batch request (default: 120s).
	Timeout time.Duration

	// MaxContent caps the page text sent per prospect, in runes.
	MaxContent int

	// HTTPClient replaces the default client. Tests use this.
	HTTPClient *http.Client
}

// Generator writes outreach for a batch of enriched prospects in one request.
type Generator struct {
	client      openai.Client
	model       string
	maxContent  int
	promptStore driven.PromptStore
}

// NewGenerator creates a generator. A missing API key returns
// domain.ErrGeneratorUnavailable.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", domain.ErrGeneratorUnavailable)
	}
	if cfg.Model == "" {
		cfg.Model = domain.DefaultOutreachModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxContent <= 0 {
		cfg.MaxContent = domain.DefaultOutreachMaxContent
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient), option.WithMaxRetries(0))
	}

	return &Generator{
		client:     openai.NewClient(opts...),
		model:      cfg.Model,
		maxContent: cfg.MaxContent,
	}, nil
}

// SetPromptStore sets the store for user-editable prompts. Without one the
// embedded defaults are used.
func (g *Generator) SetPromptStore(store driven.PromptStore) {
	g.promptStore = store
}

type requestItem struct {
	SourceURL string `json:"source_url"`
	Name      string `json:"name"`
	Title     string `json:"title,omitempty"`
	Company   string `json:"company,omitempty"`
	Platform  string `json:"platform"`
	PageURL   string `json:"page_url"`
	Content   string `json:"content"`
}

type responseItem struct {
	SourceURL string `json:"source_url"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

// Generate sends the whole batch in a single chat completion and maps the
// returned array back onto the batch by source URL.
func (g *Generator) Generate(ctx context.Context, batch []domain.EnrichedProspect) ([]domain.Outreach, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	items := make([]requestItem, len(batch))
	for i, ep := range batch {
		items[i] = requestItem{
			SourceURL: sourceURL(ep),
			Name:      ep.Prospect.Name,
			Title:     ep.Prospect.Title,
			Company:   ep.Prospect.Company,
			Platform:  string(ep.Prospect.SourcePlatform),
			PageURL:   ep.URL,
			Content:   truncateRunes(ep.PageContent, g.maxContent),
		}
	}
	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode batch: %w", err)
	}

	system := g.loadPrompt(driven.PromptOutreachSystem, defaultSystemPrompt)
	tmpl := g.loadPrompt(driven.PromptOutreachRequest, defaultRequestPrompt)
	if !strings.Contains(tmpl, "%s") {
		tmpl += "\n\n%s"
	}
	request := fmt.Sprintf(tmpl, payload)

	logger.Debug("Requesting outreach for %d prospects from %s", len(batch), g.model)
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(request),
		},
		Temperature:         openai.Float(0.7),
		MaxCompletionTokens: openai.Int(DefaultMaxTokens),
	})
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: no response choices returned")
	}

	return decodeOutreach(resp.Choices[0].Message.Content, batch)
}

// decodeOutreach parses the model's JSON array. Items whose source_url does
// not match the batch fall back to positional matching.
func decodeOutreach(content string, batch []domain.EnrichedProspect) ([]domain.Outreach, error) {
	var items []responseItem
	if err := json.Unmarshal([]byte(domain.StripCodeFences(content)), &items); err != nil {
		return nil, fmt.Errorf("parse outreach response: %w", err)
	}

	names := make(map[string]string, len(batch))
	for _, ep := range batch {
		names[sourceURL(ep)] = ep.Prospect.Name
	}

	out := make([]domain.Outreach, 0, len(items))
	for i, item := range items {
		o := domain.Outreach{SourceURL: item.SourceURL, Subject: item.Subject, Message: item.Message}
		if name, ok := names[item.SourceURL]; ok {
			o.ProspectName = name
		} else if i < len(batch) {
			logger.Debug("Outreach item %d has unknown source_url %q, matching by position", i, item.SourceURL)
			o.SourceURL = sourceURL(batch[i])
			o.ProspectName = batch[i].Prospect.Name
		} else {
			logger.Warn("Dropping outreach item %d with unknown source_url %q", i, item.SourceURL)
			continue
		}
		if o.Message == "" {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (g *Generator) loadPrompt(name, fallback string) string {
	if g.promptStore == nil {
		return fallback
	}
	prompt, err := g.promptStore.Load(name)
	if err != nil || prompt == "" {
		return fallback
	}
	return prompt
}

func sourceURL(ep domain.EnrichedProspect) string {
	if ep.Prospect.SourceURL != "" {
		return ep.Prospect.SourceURL
	}
	return ep.URL
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

const defaultSystemPrompt = `You are a sales development representative writing first-touch outreach.
Each message must reference something specific from the prospect's own page.
Be respectful and concise. Never invent facts that are not in the provided content.`

const defaultRequestPrompt = `Write one outreach email for each prospect in the JSON array below.

Return ONLY a JSON array with one object per prospect, in the same order:
[{"source_url": "...", "subject": "...", "message": "..."}]

Prospects:
%s`
