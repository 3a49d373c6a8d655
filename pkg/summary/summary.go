// Package summary turns relevant papers into markdown blocks for a digest
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/demajh/research-listener/pkg/domain"
)

//go:generate moq -out mocks/generator.go -pkg mocks -skip-ensure -fmt goimports . Generator

// Strategy produces the body text of a summary from an abstract
type Strategy interface {
	Summarize(ctx context.Context, abstract string) (string, error)
}

// Generator is a chat backend able to summarize an abstract
type Generator interface {
	Summarize(ctx context.Context, abstract string) (string, error)
}

// Options for summaries
type Options struct {
	Sentences  int // extractive summary length
	MaxAuthors int // authors listed before "et al."
}

// Summarizer builds summary blocks, it never fails
type Summarizer struct {
	strategy   Strategy
	maxAuthors int
}

// New makes a summarizer. With generation enabled it asks the backend first and extracts sentences on error.
func New(generativeEnabled bool, gen Generator, opts Options) *Summarizer {
	if opts.MaxAuthors <= 0 {
		opts.MaxAuthors = 4
	}
	extractive := &Extractive{Sentences: opts.Sentences}

	var strategy Strategy = extractive
	if generativeEnabled && gen != nil {
		strategy = &Fallback{Primary: &Generative{Gen: gen}, Secondary: extractive}
		lgr.Printf("[INFO] summaries: generative with extractive fallback")
	} else {
		lgr.Printf("[INFO] summaries: extractive")
	}
	return &Summarizer{strategy: strategy, maxAuthors: opts.MaxAuthors}
}

// Summarize returns the markdown block for a paper
func (s *Summarizer) Summarize(ctx context.Context, paper domain.Paper) domain.SummaryBlock {
	var body string
	if strings.TrimSpace(paper.Abstract) != "" {
		text, err := s.strategy.Summarize(ctx, paper.Abstract)
		if err != nil {
			// strategies in use never fail, keep the block usable anyway
			lgr.Printf("[WARN] summary for %s failed: %v", paper.ArxivID, err)
		}
		body = text
	}
	return domain.SummaryBlock{PaperID: paper.ArxivID, Markdown: FormatBlock(paper, body, s.maxAuthors)}
}

// FormatBlock renders a paper heading, its authors and date line, then the body
func FormatBlock(paper domain.Paper, body string, maxAuthors int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("### [%s](%s)  \n", paper.Title, paper.Link))
	sb.WriteString(fmt.Sprintf("*%s* — *%s*  \n", FormatAuthors(paper.Authors, maxAuthors), paper.Updated.UTC().Format("02 Jan 2006")))
	sb.WriteString(strings.TrimSpace(body))
	sb.WriteString("\n")
	return sb.String()
}

// FormatAuthors lists up to max authors, adding "et al." when some are left out
func FormatAuthors(authors []string, maxAuthors int) string {
	if len(authors) == 0 {
		return "Unknown authors"
	}
	if maxAuthors <= 0 || len(authors) <= maxAuthors {
		return strings.Join(authors, ", ")
	}
	return strings.Join(authors[:maxAuthors], ", ") + " et al."
}

// Fallback uses Secondary when Primary fails for a given abstract
type Fallback struct {
	Primary   Strategy
	Secondary Strategy
}

// Summarize implements Strategy
func (f *Fallback) Summarize(ctx context.Context, abstract string) (string, error) {
	text, err := f.Primary.Summarize(ctx, abstract)
	if err == nil {
		return text, nil
	}
	lgr.Printf("[WARN] generative summary failed, using extractive: %v", err)
	return f.Secondary.Summarize(ctx, abstract)
}
