package summary

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Generative asks a chat backend for a summary
type Generative struct {
	Gen Generator
}

// Summarize implements Strategy, blank output is an error
func (g *Generative) Summarize(ctx context.Context, abstract string) (string, error) {
	text, err := g.Gen.Summarize(ctx, abstract)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("generate summary: empty output")
	}
	return text, nil
}

var sentenceEndRe = regexp.MustCompile(`[.!?]\s+`)

// Extractive keeps the leading sentences of the abstract verbatim
type Extractive struct {
	Sentences int
}

// Summarize implements Strategy, it never fails
func (e *Extractive) Summarize(_ context.Context, abstract string) (string, error) {
	n := e.Sentences
	if n <= 0 {
		n = 3
	}
	return strings.Join(Sentences(abstract, n), " "), nil
}

// Sentences splits text at whitespace following '.', '!' or '?' and returns at most limit sentences
func Sentences(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var res []string
	start := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(text, -1) {
		if len(res) == limit {
			return res
		}
		res = append(res, text[start:loc[0]+1])
		start = loc[1]
	}
	if len(res) < limit && start < len(text) {
		res = append(res, text[start:])
	}
	return res
}
