package ai

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/sandeepkv93/aitodo/internal/model"
)

// MaxFallbackItems caps candidates recovered from plain-text lists.
const MaxFallbackItems = 5

var (
	codeBlockRe   = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	arrayRe       = regexp.MustCompile(`(?s)\[.*\]`)
	numberedRe    = regexp.MustCompile(`^\d+\.`)
	bulletTrimRe  = regexp.MustCompile(`^[-•*\d.\s]*`)
	errNoArray    = errors.New("no JSON array in response")
	errEmptyTitle = errors.New("todo item without a title")
)

// Parse extracts candidates from model output. JSON is tried first, then
// bullet and numbered lines. Anything else yields an empty list.
func Parse(text string) []Candidate {
	if out, err := parseJSON(text); err == nil {
		return out
	}
	return parseLines(text)
}

func parseJSON(text string) ([]Candidate, error) {
	payload := ""
	if m := codeBlockRe.FindStringSubmatch(text); m != nil {
		payload = strings.TrimSpace(m[1])
	} else if m := arrayRe.FindString(text); m != "" {
		payload = m
	} else {
		return nil, errNoArray
	}

	var items []map[string]any
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, err
	}
	out := make([]Candidate, 0, len(items))
	for _, item := range items {
		title, _ := item["title"].(string)
		title = strings.TrimSpace(title)
		if title == "" {
			return nil, errEmptyTitle
		}
		c := Candidate{Title: title, Priority: model.PriorityMedium}
		if p, ok := item["priority"].(string); ok && model.Priority(p).IsValid() {
			c.Priority = model.Priority(p)
		}
		if d, ok := item["description"].(string); ok {
			c.Description = strings.TrimSpace(d)
		}
		out = append(out, c)
	}
	return out, nil
}

func parseLines(text string) []Candidate {
	var out []Candidate
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !isListLine(line) {
			continue
		}
		title := strings.TrimSpace(bulletTrimRe.ReplaceAllString(line, ""))
		if title == "" {
			continue
		}
		out = append(out, Candidate{Title: title, Priority: model.PriorityMedium})
		if len(out) == MaxFallbackItems {
			break
		}
	}
	return out
}

func isListLine(line string) bool {
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") || strings.HasPrefix(line, "*") || numberedRe.MatchString(line)
}
