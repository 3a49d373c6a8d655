// Package digest assembles summary blocks into a subscriber's daily markdown digest
package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/demajh/research-listener/pkg/domain"
)

// Assemble builds the digest document. It returns false when there is nothing to send.
func Assemble(email string, profile domain.Profile, blocks []domain.SummaryBlock, now time.Time) (domain.Digest, bool) {
	if len(blocks) == 0 {
		return domain.Digest{}, false
	}
	now = now.UTC()

	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, strings.TrimRight(b.Markdown, "\n"))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Daily arXiv digest for **%s**  \n", profile.Interest))
	sb.WriteString(fmt.Sprintf("*Channel:* `%s`  –  *Generated:* %s UTC\n\n", profile.Channel, now.Format("02 Jan 2006 15:04")))
	sb.WriteString(strings.Join(parts, "\n\n"))
	sb.WriteString("\n")

	return domain.Digest{
		Email:       email,
		Profile:     profile,
		GeneratedAt: now,
		Blocks:      blocks,
		Markdown:    sb.String(),
	}, true
}

// Subject returns the mail subject for a digest generated at the given time
func Subject(generated time.Time) string {
	return "Your arXiv digest – " + generated.UTC().Format("02 Jan 2006")
}
