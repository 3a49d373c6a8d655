package relevance

import (
	"context"
	"regexp"
	"strings"

	"github.com/demajh/research-listener/pkg/domain"
)

var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Keyword keeps papers whose title or abstract contains any word of the interest
type Keyword struct{}

// Filter implements Strategy, it never returns an error
func (k *Keyword) Filter(_ context.Context, papers []domain.Paper, interest string) ([]domain.Paper, error) {
	tokens := Tokens(interest)
	res := []domain.Paper{}
	if len(tokens) == 0 {
		return res, nil
	}

	for _, p := range papers {
		text := strings.ToLower(p.Title + " " + p.Abstract)
		for _, tok := range tokens {
			if strings.Contains(text, tok) {
				res = append(res, p)
				break
			}
		}
	}
	return res, nil
}

// Tokens returns lower-cased word tokens of s
func Tokens(s string) []string {
	return tokenRe.FindAllString(strings.ToLower(s), -1)
}
