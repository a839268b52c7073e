// Package gemini implements urlcast.Adapter using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/fwojciec/urlcast"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for adaptation.
const DefaultModel = "gemini-2.5-flash"

// Ensure Adapter implements urlcast.Adapter at compile time.
var _ urlcast.Adapter = (*Adapter)(nil)

// ContentGenerator is the subset of *genai.Models used by Adapter.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// DefaultRetryDelays returns the delays between adaptation attempts:
// three retries two seconds apart.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{2 * time.Second, 2 * time.Second, 2 * time.Second}
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithModel selects the Gemini model.
func WithModel(model string) Option {
	return func(a *Adapter) {
		a.model = model
	}
}

// WithRetryDelays sets the delays between attempts. An empty slice disables
// retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(a *Adapter) {
		a.retryDelays = delays
	}
}

// WithLogger sets the logger used to report failed attempts.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// Adapter rewrites articles so they read well when spoken.
type Adapter struct {
	models      ContentGenerator
	model       string
	retryDelays []time.Duration
	logger      *slog.Logger
}

// NewAdapter creates a new Adapter. Pass client.Models of a *genai.Client
// in production.
func NewAdapter(models ContentGenerator, opts ...Option) *Adapter {
	a := &Adapter{
		models:      models,
		model:       DefaultModel,
		retryDelays: DefaultRetryDelays(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Adapt returns the model's analysis and revised article. When the model
// answers without a revised article, Revised falls back to content.
func (a *Adapter) Adapt(ctx context.Context, content string) (*urlcast.Adaptation, error) {
	if strings.TrimSpace(content) == "" {
		return nil, urlcast.Errorf(urlcast.EINVALID, "content required")
	}

	text, err := a.generate(ctx, BuildPrompt(content))
	if err != nil {
		return nil, err
	}

	adaptation := &urlcast.Adaptation{
		Analysis: ExtractTag(text, "content_adaptation_analysis"),
		Revised:  ExtractTag(text, "revised_article"),
	}
	if adaptation.Revised == "" {
		adaptation.Revised = content
	}
	return adaptation, nil
}

func (a *Adapter) generate(ctx context.Context, prompt string) (string, error) {
	maxAttempts := len(a.retryDelays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err := a.models.GenerateContent(ctx, a.model,
			[]*genai.Content{{
				Parts: []*genai.Part{{Text: prompt}},
			}},
			BuildConfig(),
		)
		if err == nil && result == nil {
			err = urlcast.Errorf(urlcast.EINTERNAL, "gemini returned nil result")
		}
		if err == nil {
			return result.Text(), nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		a.logger.Warn("adaptation attempt failed", "attempt", attempt+1, "err", err)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(a.retryDelays[attempt]):
		}
	}

	return "", fmt.Errorf("adapt content: %w", lastErr)
}

// BuildConfig returns the GenerateContentConfig for adaptation calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.7)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an expert content adaptation assistant.",
			}},
		},
		Temperature:     &temp,
		MaxOutputTokens: 8192,
	}
}

// BuildPrompt returns the adaptation prompt for an article.
func BuildPrompt(content string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert in content adaptation, specializing in converting written articles into audio format. ")
	sb.WriteString("Your task is to analyze the following article and optimize it for voice conversion while keeping it as close to the original as possible.\n\n")
	sb.WriteString("Here is the article content:\n\n<article_content>\n")
	sb.WriteString(content)
	sb.WriteString("\n</article_content>\n\n")
	sb.WriteString(`Please follow these steps to analyze and revise the article:

1. Read through the article carefully.

2. Analyze the content for the following elements that might not translate well to audio format:

   a) Visual References: Identify mentions of images, charts, tables, or any visual elements.
   b) Complex Sentence Structures: Locate long or complex sentences.
   c) Text-Specific Features: Highlight bullet points, numbered lists, hyperlinks, or formatting instructions.
   d) Redundancies and Repetitions: Detect any repetitive content.
   e) Interactive Elements: Locate questions, calls to action, or prompts.

3. For each element identified, suggest minimal adjustments to make the content more suitable for audio format. Keep changes to a minimum while ensuring the content flows well when listened to.

4. Based on your analysis, create a revised version of the article that is optimized for voice conversion.

Before providing the final revised article, wrap your analysis inside <content_adaptation_analysis> tags. For each category:

a) Visual References: Quote the relevant parts and suggest audio descriptions.
b) Complex Sentences: Rewrite them in a simpler form.
c) Text-Specific Features: Suggest audio-friendly alternatives.
d) Redundancies: Highlight repetitive phrases and suggest consolidations.
e) Interactive Elements: Adapt them for audio format.

It's OK for this section to be quite long.

After your analysis, present the revised article within <revised_article> tags. The revised article should flow smoothly and naturally for listeners while staying as close as possible to the original content.`)
	return sb.String()
}

var tagPatterns = map[string]*regexp.Regexp{
	"content_adaptation_analysis": regexp.MustCompile(`(?s)<content_adaptation_analysis>(.*?)</content_adaptation_analysis>`),
	"revised_article":             regexp.MustCompile(`(?s)<revised_article>(.*?)</revised_article>`),
}

// ExtractTag returns the trimmed text between the first <name> and </name>
// pair in text, or "" when there is none.
func ExtractTag(text, name string) string {
	re, ok := tagPatterns[name]
	if !ok {
		re = regexp.MustCompile(`(?s)<` + regexp.QuoteMeta(name) + `>(.*?)</` + regexp.QuoteMeta(name) + `>`)
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
