// Package assistant summarizes documents with a Gemini model when one is
// configured, and falls back to an extractive lead summary when it is not.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dusk-indust/docassist/internal/capability"
	"github.com/dusk-indust/docassist/internal/config"
	"github.com/dusk-indust/docassist/internal/log"
	"google.golang.org/genai"
)

// CapabilityName is the name the assistant capability is reported under.
const CapabilityName = "assistant"

// ErrEmptyInput is returned when there is no text to summarize.
var ErrEmptyInput = errors.New("assistant: empty input")

const summaryPrompt = "Summarize the following document in a few short paragraphs. " +
	"Keep names, figures and dates exact.\n\n"

// ModelCaller is the part of the Gemini client the assistant uses. Tests
// inject a stub.
type ModelCaller interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Capability builds a flag that acquires a Gemini client. Without an API key
// the answer is known up front and the flag comes back already resolved;
// otherwise it is absent when the client cannot be built.
func Capability(cfg config.AssistantConfig) *capability.Flag[ModelCaller] {
	apiKey := cfg.APIKey
	if apiKey == "" {
		return capability.Fixed[ModelCaller](CapabilityName, nil, false,
			fmt.Errorf("%w: %s not set", capability.ErrMissing, config.EnvAPIKey))
	}
	return capability.New(CapabilityName, func() (ModelCaller, error) {
		client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		if client.Models == nil {
			return nil, errors.New("gemini client is missing the Models service")
		}
		return client.Models, nil
	}, capability.WithDescribe(func(ModelCaller) string { return "gemini" }))
}

// Mode says how a summary was produced.
type Mode string

const (
	ModeModel      Mode = "model"
	ModeExtractive Mode = "extractive"
)

// Summary is the result of Summarize.
type Summary struct {
	Mode  Mode   `json:"mode"`
	Model string `json:"model,omitempty"`
	Text  string `json:"text"`
}

// Assistant summarizes text.
type Assistant struct {
	flag          *capability.Flag[ModelCaller]
	model         string
	leadSentences int
	maxInputRunes int
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithModel sets the Gemini model id.
func WithModel(model string) Option {
	return func(a *Assistant) { a.model = model }
}

// WithLeadSentences sets how many sentences the extractive fallback keeps.
func WithLeadSentences(n int) Option {
	return func(a *Assistant) { a.leadSentences = n }
}

// WithMaxInputRunes caps the text sent to the model.
func WithMaxInputRunes(n int) Option {
	return func(a *Assistant) { a.maxInputRunes = n }
}

// OptionsFromConfig maps assistant settings to options.
func OptionsFromConfig(cfg config.AssistantConfig) []Option {
	return []Option{
		WithModel(cfg.Model),
		WithLeadSentences(cfg.LeadSentences),
		WithMaxInputRunes(cfg.MaxInputRunes),
	}
}

// New creates an Assistant backed by flag.
func New(flag *capability.Flag[ModelCaller], opts ...Option) *Assistant {
	a := &Assistant{
		flag:          flag,
		model:         config.DefaultModel,
		leadSentences: config.DefaultLeadSentences,
		maxInputRunes: config.DefaultMaxInputRunes,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Available reports whether summaries come from the model.
func (a *Assistant) Available() bool {
	return a.flag.Available()
}

// Summarize returns a model summary when the assistant capability is
// available and an extractive one otherwise. Model errors are returned
// as-is; they are not downgraded to the extractive path.
func (a *Assistant) Summarize(ctx context.Context, text string) (*Summary, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	caller, ok := a.flag.Handle()
	if !ok {
		return &Summary{Mode: ModeExtractive, Text: Lead(text, a.leadSentences)}, nil
	}

	input := text
	if runes := []rune(input); a.maxInputRunes > 0 && len(runes) > a.maxInputRunes {
		input = string(runes[:a.maxInputRunes])
		log.Debugf("assistant: input truncated to %d runes", a.maxInputRunes)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: summaryPrompt + input}},
		},
	}
	resp, err := caller.GenerateContent(ctx, a.model, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	var sb strings.Builder
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part != nil && part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
	}
	if sb.Len() == 0 {
		return nil, errors.New("generate summary: model returned no text")
	}

	return &Summary{Mode: ModeModel, Model: a.model, Text: strings.TrimSpace(sb.String())}, nil
}

// Lead returns the first n sentences of text with whitespace collapsed.
// A sentence ends at '.', '!' or '?' followed by whitespace or end of text.
func Lead(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	if n <= 0 {
		return text
	}

	runes := []rune(text)
	count := 0
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		count++
		if count == n {
			return string(runes[:i+1])
		}
	}
	return text
}
