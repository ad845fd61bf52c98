// Package ai drafts candidate todos with an external generative-text model.
// Candidates are never added to the collection here; callers review them
// and pass accepted ones to the normal add path.
package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/sandeepkv93/aitodo/internal/model"
)

var (
	ErrNoCredential = errors.New("ai: no API key configured")
	ErrEmptyPrompt  = errors.New("ai: prompt is required")
)

// Error wraps a failed model call.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ai: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Generator sends a full prompt to a model and returns its raw text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Style string

const (
	StyleSimple        Style = "simple"
	StyleDetailed      Style = "detailed"
	StyleStepByStep    Style = "step-by-step"
	StylePriorityBased Style = "priority-based"
	StyleTimeBased     Style = "time-based"
)

func (s Style) IsValid() bool {
	switch s {
	case StyleSimple, StyleDetailed, StyleStepByStep, StylePriorityBased, StyleTimeBased:
		return true
	default:
		return false
	}
}

func Styles() []Style {
	return []Style{StyleSimple, StyleDetailed, StyleStepByStep, StylePriorityBased, StyleTimeBased}
}

type Summary struct {
	Title       string
	Description string
	Priority    model.Priority
}

type Request struct {
	Prompt             string
	ProjectName        string
	ProjectDescription string
	Existing           []Summary
	Style              Style
}

type Candidate struct {
	Title       string
	Description string
	Priority    model.Priority
}

type Options struct {
	Timeout time.Duration
	Logger  *slog.Logger
}

type Service struct {
	gen     Generator
	timeout time.Duration
	logger  *slog.Logger
}

// NewService wraps gen. A nil gen makes every call fail with ErrNoCredential.
func NewService(gen Generator, opts Options) *Service {
	s := &Service{gen: gen, timeout: opts.Timeout, logger: opts.Logger}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Available reports whether a model is configured.
func (s *Service) Available() bool {
	return s != nil && s.gen != nil
}

// Generate returns the parsed candidates for req. Malformed model output
// yields an empty list and a nil error.
func (s *Service) Generate(ctx context.Context, req Request) ([]Candidate, error) {
	if !s.Available() {
		return nil, ErrNoCredential
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.gen.Generate(ctx, BuildPrompt(req))
	if err != nil {
		s.logger.Warn("ai generation failed", slog.String("error", err.Error()), slog.Duration("elapsed", time.Since(start)))
		return nil, &Error{Op: "generate", Err: err}
	}
	out := Parse(text)
	s.logger.Info("ai generation finished", slog.Int("candidates", len(out)), slog.Duration("elapsed", time.Since(start)))
	return out, nil
}

var styleInstructions = map[Style]string{
	StyleSimple:        "Create concise, actionable todo items.",
	StyleDetailed:      "Create detailed todo items with comprehensive descriptions.",
	StyleStepByStep:    "Break down the request into sequential, logical steps.",
	StylePriorityBased: "Focus on high-impact tasks and assign appropriate priorities.",
	StyleTimeBased:     "Suggest todos with realistic time estimates and scheduling.",
}

// BuildPrompt renders the system prompt followed by the user request.
func BuildPrompt(req Request) string {
	style, ok := styleInstructions[req.Style]
	if !ok {
		style = styleInstructions[StyleSimple]
	}

	var b strings.Builder
	b.WriteString("You are an AI assistant that helps create structured todo lists for projects.\n\n")
	fmt.Fprintf(&b, "Project: %s\n", req.ProjectName)
	if req.ProjectDescription != "" {
		fmt.Fprintf(&b, "Description: %s\n", req.ProjectDescription)
	}
	if len(req.Existing) > 0 {
		b.WriteString("\nExisting todos in this project:\n")
		for _, t := range req.Existing {
			b.WriteString("- " + t.Title)
			if t.Description != "" {
				b.WriteString(" (" + t.Description + ")")
			}
			fmt.Fprintf(&b, " [%s]\n", t.Priority)
		}
	}
	fmt.Fprintf(&b, "\nStyle: %s\n\n", style)
	b.WriteString(`Instructions:
- Generate relevant todo items based on the user's request
- Each todo should have a clear, actionable title
- Include a brief description when helpful
- Assign priority: high, medium, or low
- Format your response as a JSON array of objects with keys: title, description (optional), priority
- Ensure todos are relevant to the project context
- Avoid duplicating existing todos

Response format example:
[
  {
    "title": "Research competitors",
    "description": "Analyze top 5 competitors in the market",
    "priority": "high"
  }
]`)
	b.WriteString("\n\nUser request: ")
	b.WriteString(req.Prompt)
	return b.String()
}
