package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/demajh/research-listener/pkg/domain"
)

// HTMLRenderer converts digest markdown to an HTML fragment
type HTMLRenderer interface {
	Fragment(markdown string) (string, error)
}

// Generator creates RSS feeds of archived digests and the OPML list of them
type Generator struct {
	baseURL  string
	renderer HTMLRenderer
}

// NewGenerator creates a new feed generator. Without renderer descriptions carry raw markdown.
func NewGenerator(baseURL string, renderer HTMLRenderer) *Generator {
	return &Generator{
		baseURL:  strings.TrimRight(baseURL, "/"),
		renderer: renderer,
	}
}

// FeedURL returns the rss link of a subscription
func (g *Generator) FeedURL(subscriptionID int64) string {
	return fmt.Sprintf("%s/rss/%d", g.baseURL, subscriptionID)
}

// GenerateRSS creates an RSS 2.0 feed from the digests of one subscription
func (g *Generator) GenerateRSS(sub domain.Subscription, digests []domain.ArchivedDigest) (string, error) {
	selfLink := g.FeedURL(sub.ID)

	rssItems := make([]*RSSItem, 0, len(digests))
	for _, d := range digests {
		rssItems = append(rssItems, g.convertToRSSItem(sub, d))
	}

	lastBuild := time.Now().UTC()
	if len(digests) > 0 {
		lastBuild = digests[0].GeneratedAt.UTC()
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         fmt.Sprintf("arXiv digest: %s (%s)", sub.Interest, sub.Channel),
			Link:          g.baseURL + "/",
			Description:   fmt.Sprintf("Daily %s papers relevant to %q", sub.Channel, sub.Interest),
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: lastBuild.Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}

// convertToRSSItem converts an archived digest to an RSS item
func (g *Generator) convertToRSSItem(sub domain.Subscription, d domain.ArchivedDigest) *RSSItem {
	desc := d.Markdown
	if g.renderer != nil {
		html, err := g.renderer.Fragment(d.Markdown)
		if err != nil {
			lgr.Printf("[WARN] can't render digest %d, using markdown: %v", d.ID, err)
		} else {
			desc = html
		}
	}

	return &RSSItem{
		Title:       fmt.Sprintf("%s, %d papers", d.GeneratedAt.UTC().Format("02 Jan 2006"), d.Papers),
		Link:        fmt.Sprintf("%s#digest-%d", g.FeedURL(sub.ID), d.ID),
		GUID:        &RSSGUID{Value: fmt.Sprintf("research-listener:digest:%d", d.ID)},
		Description: desc,
		PubDate:     d.GeneratedAt.UTC().Format(time.RFC1123Z),
		Categories:  []string{sub.Channel},
	}
}

// GenerateOPML creates an OPML file listing feeds of the given subscriptions
func (g *Generator) GenerateOPML(subs []domain.Subscription) (string, error) {
	type outline struct {
		XMLName xml.Name `xml:"outline"`
		Text    string   `xml:"text,attr"`
		Title   string   `xml:"title,attr"`
		Type    string   `xml:"type,attr"`
		XMLUrl  string   `xml:"xmlUrl,attr"`
	}

	type body struct {
		XMLName  xml.Name  `xml:"body"`
		Outlines []outline `xml:"outline"`
	}

	type head struct {
		XMLName     xml.Name `xml:"head"`
		Title       string   `xml:"title"`
		DateCreated string   `xml:"dateCreated"`
	}

	type opml struct {
		XMLName xml.Name `xml:"opml"`
		Version string   `xml:"version,attr"`
		Head    head     `xml:"head"`
		Body    body     `xml:"body"`
	}

	outlines := make([]outline, 0, len(subs))
	for _, sub := range subs {
		if !sub.Active {
			continue
		}
		title := fmt.Sprintf("%s: %s", sub.Channel, sub.Interest)
		outlines = append(outlines, outline{
			Text:   title,
			Title:  title,
			Type:   "rss",
			XMLUrl: g.FeedURL(sub.ID),
		})
	}

	doc := opml{
		Version: "2.0",
		Head: head{
			Title:       "research-listener digests",
			DateCreated: time.Now().UTC().Format(time.RFC1123Z),
		},
		Body: body{
			Outlines: outlines,
		},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}

	return xml.Header + string(output), nil
}
