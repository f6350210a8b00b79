// Package composer produces AI-assisted guest replies, management summaries
// and translations. Every remote failure degrades to a fixed fallback value;
// callers see the failure on the returned Outcome, never as an error.
package composer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"feedback-dashboard/internal/metrics"
	"feedback-dashboard/internal/models"

	log "github.com/sirupsen/logrus"
)

const (
	// NoRecentFeedbackSummary is returned for an empty record set.
	NoRecentFeedbackSummary = "No recent feedback available for summary."
	// SummaryFailedMessage is returned when the summary could not be generated.
	SummaryFailedMessage = "Failed to generate feedback summary. Please try again later."

	FallbackIssue  = "AI analysis failed"
	FallbackAction = "Review feedback manually"

	DefaultResortName = "Kuriftu Resort"
)

const (
	opCompose   = "compose"
	opSummarize = "summarize"
	opTranslate = "translate"
)

var errMalformed = errors.New("malformed model output")

// ComposerError is a failed or unusable remote call.
type ComposerError struct {
	Op  string
	Err error
}

func (e *ComposerError) Error() string {
	return fmt.Sprintf("composer %s: %v", e.Op, e.Err)
}

func (e *ComposerError) Unwrap() error {
	return e.Err
}

// Outcome is a composer result. When Err is set, Value holds the fallback.
type Outcome[T any] struct {
	Value T
	Err   *ComposerError
}

func (o Outcome[T]) Degraded() bool {
	return o.Err != nil
}

type Composer struct {
	llm    Completer
	resort string
}

func New(llm Completer, resortName string) *Composer {
	if resortName == "" {
		resortName = DefaultResortName
	}
	return &Composer{llm: llm, resort: resortName}
}

// ComposeResponse drafts a reply to f. history holds the guest's earlier
// records, newest first.
func (c *Composer) ComposeResponse(ctx context.Context, f *models.Feedback, history []models.Feedback) Outcome[models.ComposedResponse] {
	text, err := c.llm.Complete(ctx, CompletionRequest{
		Prompt:      responsePrompt(c.resort, f, history),
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err == nil {
		var composed models.ComposedResponse
		composed, err = parseComposed(text)
		if err == nil {
			metrics.RecordComposer(opCompose, "ok")
			return Outcome[models.ComposedResponse]{Value: composed}
		}
	}

	cerr := c.fail(opCompose, err, log.Fields{"feedback_id": f.ID})
	return Outcome[models.ComposedResponse]{Value: FallbackResponse(c.resort, f), Err: cerr}
}

// Summarize condenses records into one paragraph. An empty set yields
// NoRecentFeedbackSummary without a remote call.
func (c *Composer) Summarize(ctx context.Context, records []models.Feedback) Outcome[string] {
	if len(records) == 0 {
		metrics.RecordComposer(opSummarize, "skipped")
		return Outcome[string]{Value: NoRecentFeedbackSummary}
	}

	text, err := c.llm.Complete(ctx, CompletionRequest{
		Prompt:      summaryPrompt(c.resort, records),
		MaxTokens:   600,
		Temperature: 0.3,
	})
	if err == nil {
		text = strings.TrimSpace(text)
		if text == "" {
			err = errMalformed
		}
	}
	if err != nil {
		cerr := c.fail(opSummarize, err, log.Fields{"records": len(records)})
		return Outcome[string]{Value: SummaryFailedMessage, Err: cerr}
	}

	metrics.RecordComposer(opSummarize, "ok")
	return Outcome[string]{Value: text}
}

// Translate returns text in lang. English is returned as is; a failed
// translation falls back to the original text.
func (c *Composer) Translate(ctx context.Context, text string, lang models.Language) Outcome[string] {
	if lang == models.LanguageEnglish || lang == "" {
		metrics.RecordComposer(opTranslate, "skipped")
		return Outcome[string]{Value: text}
	}

	translated, err := c.llm.Complete(ctx, CompletionRequest{
		Prompt:      translatePrompt(c.resort, text, lang),
		MaxTokens:   500,
		Temperature: 0.2,
	})
	if err == nil {
		translated = strings.Trim(strings.TrimSpace(translated), `"`)
		if translated == "" {
			err = errMalformed
		}
	}
	if err != nil {
		cerr := c.fail(opTranslate, err, log.Fields{"language": lang})
		return Outcome[string]{Value: text, Err: cerr}
	}

	metrics.RecordComposer(opTranslate, "ok")
	return Outcome[string]{Value: translated}
}

// LocalizedResponse composes a reply and translates it into lang. The
// outcome is degraded if either step fell back.
func (c *Composer) LocalizedResponse(ctx context.Context, f *models.Feedback, history []models.Feedback, lang models.Language) Outcome[string] {
	composed := c.ComposeResponse(ctx, f, history)
	translated := c.Translate(ctx, composed.Value.SuggestedResponse, lang)

	out := Outcome[string]{Value: translated.Value, Err: composed.Err}
	if translated.Err != nil {
		out.Err = translated.Err
	}
	return out
}

func (c *Composer) fail(op string, err error, fields log.Fields) *ComposerError {
	metrics.RecordComposer(op, "fallback")
	log.WithFields(fields).WithError(err).Warnf("⚠️  AI %s failed, using fallback", op)
	return &ComposerError{Op: op, Err: err}
}

// FallbackResponse is the templated reply used when the model is unavailable.
// It depends only on the rating.
func FallbackResponse(resort string, f *models.Feedback) models.ComposedResponse {
	appreciation := "We appreciate your comments."
	if f.HasRating() {
		appreciation = fmt.Sprintf("We appreciate your rating of %d/5 and your comments.", *f.Rating)
	}

	var sentiment float64
	if f.RatingValue() > 3 {
		sentiment = 5
	}

	return models.ComposedResponse{
		SuggestedResponse: fmt.Sprintf(
			"Thank you for your feedback about %s. %s Our team will review your feedback carefully and we hope to welcome you back soon.",
			resort, appreciation),
		SentimentScore:     sentiment,
		TopIssues:          []string{FallbackIssue},
		RecommendedActions: []string{FallbackAction},
	}
}

type composedPayload struct {
	Response           string   `json:"response"`
	SentimentScore     *float64 `json:"sentimentScore"`
	TopIssues          []string `json:"topIssues"`
	RecommendedActions []string `json:"recommendedActions"`
}

// parseComposed extracts the JSON object from the model output, ignoring any
// prose or code fences around it.
func parseComposed(text string) (models.ComposedResponse, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return models.ComposedResponse{}, errMalformed
	}

	var p composedPayload
	if err := json.Unmarshal([]byte(text[start:end+1]), &p); err != nil {
		return models.ComposedResponse{}, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if strings.TrimSpace(p.Response) == "" || p.SentimentScore == nil {
		return models.ComposedResponse{}, errMalformed
	}

	score := *p.SentimentScore
	if score < -10 {
		score = -10
	} else if score > 10 {
		score = 10
	}
	if p.TopIssues == nil {
		p.TopIssues = []string{}
	}
	if p.RecommendedActions == nil {
		p.RecommendedActions = []string{}
	}

	return models.ComposedResponse{
		SuggestedResponse:  strings.TrimSpace(p.Response),
		SentimentScore:     score,
		TopIssues:          p.TopIssues,
		RecommendedActions: p.RecommendedActions,
	}, nil
}
