package feed

import (
	"encoding/xml"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demajh/research-listener/pkg/domain"
)

type fakeRenderer struct {
	err error
}

func (f fakeRenderer) Fragment(markdown string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "<p>" + strings.TrimSpace(markdown) + "</p>", nil
}

func TestGenerator_GenerateRSS(t *testing.T) {
	generator := NewGenerator("https://example.com/", fakeRenderer{})
	sub := domain.Subscription{ID: 7, Email: "a@x.com", Channel: "cs.CL", Interest: "transformer attention", Active: true}

	gen := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	digests := []domain.ArchivedDigest{
		{ID: 12, SubscriptionID: 7, GeneratedAt: gen, Papers: 3, Markdown: "# newest"},
		{ID: 11, SubscriptionID: 7, GeneratedAt: gen.AddDate(0, 0, -1), Papers: 1, Markdown: "# older"},
	}

	rss, err := generator.GenerateRSS(sub, digests)
	require.NoError(t, err)

	assert.Contains(t, rss, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, rss, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	assert.Contains(t, rss, `<title>arXiv digest: transformer attention (cs.CL)</title>`)
	assert.Contains(t, rss, `<link>https://example.com/</link>`)
	assert.Contains(t, rss, `href="https://example.com/rss/7"`)
	assert.Contains(t, rss, `<title>19 Oct 2026, 3 papers</title>`)
	assert.Contains(t, rss, `<link>https://example.com/rss/7#digest-12</link>`)
	assert.Contains(t, rss, `<guid isPermaLink="false">research-listener:digest:12</guid>`)
	assert.Contains(t, rss, `&lt;p&gt;# newest&lt;/p&gt;`)
	assert.Contains(t, rss, `<category>cs.CL</category>`)
	assert.Contains(t, rss, gen.Format(time.RFC1123Z))

	// valid xml with items in given order
	var parsed RSS
	require.NoError(t, xml.Unmarshal([]byte(rss), &parsed))
	require.Len(t, parsed.Channel.Items, 2)
	assert.Equal(t, "research-listener:digest:12", parsed.Channel.Items[0].GUID.Value)
	assert.Equal(t, "research-listener:digest:11", parsed.Channel.Items[1].GUID.Value)
}

func TestGenerator_GenerateRSS_Empty(t *testing.T) {
	generator := NewGenerator("https://example.com", nil)
	rss, err := generator.GenerateRSS(domain.Subscription{ID: 1, Channel: "cs.AI", Interest: "agents"}, nil)
	require.NoError(t, err)

	var parsed RSS
	require.NoError(t, xml.Unmarshal([]byte(rss), &parsed))
	assert.Empty(t, parsed.Channel.Items)
	assert.Equal(t, "arXiv digest: agents (cs.AI)", parsed.Channel.Title)
}

func TestGenerator_GenerateRSS_RenderFallback(t *testing.T) {
	generator := NewGenerator("https://example.com", fakeRenderer{err: errors.New("bad markdown")})
	digests := []domain.ArchivedDigest{{ID: 1, GeneratedAt: time.Now(), Markdown: "# raw"}}
	rss, err := generator.GenerateRSS(domain.Subscription{ID: 1}, digests)
	require.NoError(t, err)
	assert.Contains(t, rss, "<description># raw</description>")
}

func TestGenerator_GenerateOPML(t *testing.T) {
	generator := NewGenerator("https://example.com", nil)
	subs := []domain.Subscription{
		{ID: 1, Channel: "cs.CL", Interest: "attention", Active: true},
		{ID: 2, Channel: "cs.LG", Interest: "graphs", Active: false},
		{ID: 3, Channel: "cs.AI", Interest: "agents & tools", Active: true},
	}

	opml, err := generator.GenerateOPML(subs)
	require.NoError(t, err)

	assert.Contains(t, opml, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, opml, `<opml version="2.0">`)
	assert.Contains(t, opml, `<title>research-listener digests</title>`)
	assert.Contains(t, opml, `xmlUrl="https://example.com/rss/1"`)
	assert.NotContains(t, opml, `https://example.com/rss/2`)
	assert.Contains(t, opml, `text="cs.AI: agents &amp; tools"`)
}
