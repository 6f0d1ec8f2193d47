// Package analyzer turns a detected content change into a strategic verdict.
//
// The model reply is untrusted free text. Whenever the call fails or the reply does not
// decode into a valid verdict, the analyzer substitutes a fixed fallback verdict, so change
// tracking keeps working while the model provider is unavailable.
package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Houeta/scoperival/internal/models"
	"github.com/Houeta/scoperival/internal/parser"
)

const (
	// PromptContentLimit caps each side of the diff sent to the model, in characters.
	PromptContentLimit = 2000

	DefaultModel   = "claude-sonnet-4-5"
	DefaultTimeout = 60 * time.Second

	maxTokens   = 500
	temperature = 0.3
	maxActions  = 3

	systemPrompt = "You are a competitive intelligence analyst specializing in business strategy and market analysis."
)

var (
	ErrNoClient      = errors.New("language model client is not configured")
	ErrEmptyReply    = errors.New("language model returned an empty reply")
	ErrNoJSONObject  = errors.New("reply does not contain a JSON object")
	ErrInvalidShape  = errors.New("verdict has an invalid shape")
	errScoreOutRange = fmt.Errorf("%w: significance_score must be between 1 and 5", ErrInvalidShape)
)

// Kind tells whether a verdict came from the model or from the fallback.
type Kind int

const (
	KindParsed Kind = iota
	KindFallback
)

func (k Kind) String() string {
	if k == KindFallback {
		return "fallback"
	}

	return "parsed"
}

// Request describes one detected change.
type Request struct {
	PreviousContent string
	NewContent      string
	PageType        models.PageType
	CompetitorName  string
}

// Analysis is the analyzer outcome. Cause is set only for KindFallback.
type Analysis struct {
	Verdict models.Verdict
	Kind    Kind
	Cause   error
}

// FallbackVerdict returns the verdict used whenever the model cannot be consulted.
func FallbackVerdict() models.Verdict {
	return models.Verdict{
		ChangeSummary:         "Content change detected on competitor page",
		StrategicImplications: "Competitor has updated their content - monitor for strategic changes",
		SignificanceScore:     3,
		SuggestedActions: []string{
			"Review the changes manually",
			"Update competitive analysis",
			"Consider response strategy",
		},
	}
}

// Analyzer asks a language model to interpret page changes.
type Analyzer struct {
	log     *slog.Logger
	client  Client
	model   string
	timeout time.Duration
}

// New creates an Analyzer. A nil client is allowed and makes every analysis a fallback.
func New(log *slog.Logger, client Client, model string, timeout time.Duration) *Analyzer {
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Analyzer{log: log, client: client, model: model, timeout: timeout}
}

// Analyze never fails: any error is converted into a fallback Analysis.
func (a *Analyzer) Analyze(ctx context.Context, req Request) Analysis {
	const opn = "analyzer.Analyze"
	log := a.log.With("op", opn, "competitor", req.CompetitorName, "page_type", req.PageType)

	verdict, err := a.consult(ctx, req)
	if err != nil {
		log.WarnContext(ctx, "Change analysis degraded to fallback verdict", "error", err)
		return Analysis{Verdict: FallbackVerdict(), Kind: KindFallback, Cause: err}
	}

	log.DebugContext(ctx, "Change analysis parsed", "significance", verdict.SignificanceScore)

	return Analysis{Verdict: verdict, Kind: KindParsed}
}

func (a *Analyzer) consult(ctx context.Context, req Request) (models.Verdict, error) {
	if a.client == nil {
		return models.Verdict{}, ErrNoClient
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.CreateMessage(ctx, MessageRequest{
		Model:       a.model,
		MaxTokens:   maxTokens,
		System:      systemPrompt,
		Prompt:      BuildPrompt(req),
		Temperature: temperature,
	})
	if err != nil {
		return models.Verdict{}, err
	}

	return ParseVerdict(resp.Text)
}

// BuildPrompt renders the analysis instructions for one change.
func BuildPrompt(req Request) string {
	var bld strings.Builder

	fmt.Fprintf(&bld, "Analyze this change from %s's %s page:\n\n", req.CompetitorName, req.PageType)
	fmt.Fprintf(&bld, "PREVIOUS CONTENT:\n%s\n\n", parser.Truncate(req.PreviousContent, PromptContentLimit))
	fmt.Fprintf(&bld, "NEW CONTENT:\n%s\n\n", parser.Truncate(req.NewContent, PromptContentLimit))
	bld.WriteString(`Respond with a single JSON object and nothing else:
{
    "change_summary": "Brief 1-2 sentence summary of what changed",
    "strategic_implications": "What this means for competitors in the market",
    "significance_score": 1-5 (5 being most significant),
    "suggested_actions": ["action1", "action2", "action3"]
}

Focus on business strategy, competitive positioning, pricing changes, new features, and market implications.`)

	return bld.String()
}

// rawVerdict keeps the score untyped so fractional numbers are rejected instead of truncated.
type rawVerdict struct {
	ChangeSummary         string      `json:"change_summary"`
	StrategicImplications string      `json:"strategic_implications"`
	SignificanceScore     json.Number `json:"significance_score"`
	SuggestedActions      []string    `json:"suggested_actions"`
}

// ParseVerdict extracts and validates a verdict from free-form model output.
func ParseVerdict(reply string) (models.Verdict, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return models.Verdict{}, ErrEmptyReply
	}

	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return models.Verdict{}, ErrNoJSONObject
	}

	dec := json.NewDecoder(strings.NewReader(reply[start : end+1]))
	dec.UseNumber()

	var raw rawVerdict
	if err := dec.Decode(&raw); err != nil {
		return models.Verdict{}, fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}

	return raw.validate()
}

func (r rawVerdict) validate() (models.Verdict, error) {
	summary := strings.TrimSpace(r.ChangeSummary)
	implications := strings.TrimSpace(r.StrategicImplications)
	if summary == "" || implications == "" {
		return models.Verdict{}, fmt.Errorf("%w: summary and implications are required", ErrInvalidShape)
	}

	score, err := r.SignificanceScore.Int64()
	if err != nil {
		return models.Verdict{}, fmt.Errorf("%w: significance_score %q is not an integer", ErrInvalidShape, r.SignificanceScore)
	}
	if score < 1 || score > 5 {
		return models.Verdict{}, errScoreOutRange
	}

	actions := make([]string, 0, maxActions)
	for _, action := range r.SuggestedActions {
		if action = strings.TrimSpace(action); action != "" && len(actions) < maxActions {
			actions = append(actions, action)
		}
	}
	if len(actions) == 0 {
		return models.Verdict{}, fmt.Errorf("%w: at least one suggested action is required", ErrInvalidShape)
	}

	return models.Verdict{
		ChangeSummary:         summary,
		StrategicImplications: implications,
		SignificanceScore:     int(score),
		SuggestedActions:      actions,
	}, nil
}
