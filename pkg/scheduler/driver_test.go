package scheduler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demajh/research-listener/pkg/domain"
	"github.com/demajh/research-listener/pkg/feed"
	"github.com/demajh/research-listener/pkg/mailer"
	"github.com/demajh/research-listener/pkg/relevance"
	"github.com/demajh/research-listener/pkg/report"
	"github.com/demajh/research-listener/pkg/scheduler/mocks"
	"github.com/demajh/research-listener/pkg/summary"
)

var testNow = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func paper(id, title, abstract string) domain.Paper {
	return domain.Paper{ArxivID: id, Title: title, Abstract: abstract, Authors: []string{"A. Author"},
		Link: "http://arxiv.org/abs/" + id, Updated: testNow.Add(-time.Hour)}
}

type driverMocks struct {
	fetcher   *mocks.FetcherMock
	filter    *mocks.FilterMock
	summ      *mocks.SummarizerMock
	writer    *mocks.ReportWriterMock
	deliverer *mocks.DelivererMock
	archive   *mocks.ArchiveMock
}

func newDriverMocks() *driverMocks {
	return &driverMocks{
		fetcher: &mocks.FetcherMock{FetchFunc: func(ctx context.Context, channel string, maxResults int, window feed.Window) ([]domain.Paper, error) {
			return []domain.Paper{paper("1", "One", "first"), paper("2", "Two", "second")}, nil
		}},
		filter: &mocks.FilterMock{FilterFunc: func(ctx context.Context, papers []domain.Paper, interest string) ([]domain.Paper, error) {
			return papers, nil
		}},
		summ: &mocks.SummarizerMock{SummarizeFunc: func(ctx context.Context, p domain.Paper) domain.SummaryBlock {
			return domain.SummaryBlock{PaperID: p.ArxivID, Markdown: "### " + p.Title + "\n"}
		}},
		writer: &mocks.ReportWriterMock{WriteFunc: func(d domain.Digest) ([]string, error) {
			return []string{"/r/" + d.Email + ".md", "/r/" + d.Email + ".html"}, nil
		}},
		deliverer: &mocks.DelivererMock{DeliverFunc: func(ctx context.Context, msg mailer.Message) error { return nil }},
		archive:   &mocks.ArchiveMock{SaveFunc: func(ctx context.Context, d *domain.ArchivedDigest) error { return nil }},
	}
}

func (m *driverMocks) driver() *Driver {
	return NewDriver(DriverParams{Fetcher: m.fetcher, Filter: m.filter, Summarizer: m.summ, Writer: m.writer,
		Deliverer: m.deliverer, Archive: m.archive, MaxResults: 120, WindowDays: 1, Now: fixedNow})
}

func TestDriver_Run(t *testing.T) {
	m := newDriverMocks()
	subs := []domain.Subscription{{ID: 1, Email: "a@x.com", Channel: "cs.CL", Interest: "nlp"}}

	rep, err := m.driver().Run(context.Background(), subs)
	require.NoError(t, err)
	assert.NotEmpty(t, rep.ID)
	assert.Equal(t, testNow, rep.StartedAt)
	require.Len(t, rep.Results, 1)

	res := rep.Results[0]
	assert.Equal(t, domain.RunStatusSent, res.Status)
	assert.Equal(t, 2, res.Fetched)
	assert.Equal(t, 2, res.Relevant)
	assert.Equal(t, []string{"/r/a@x.com.md", "/r/a@x.com.html"}, res.Files)

	require.Len(t, m.fetcher.FetchCalls(), 1)
	call := m.fetcher.FetchCalls()[0]
	assert.Equal(t, "cs.CL", call.Channel)
	assert.Equal(t, 120, call.MaxResults)
	assert.Equal(t, feed.DayWindow(testNow, 1), call.Window)

	require.Len(t, m.filter.FilterCalls(), 1)
	assert.Equal(t, "nlp", m.filter.FilterCalls()[0].Interest)
	assert.Len(t, m.summ.SummarizeCalls(), 2)

	require.Len(t, m.deliverer.DeliverCalls(), 1)
	msg := m.deliverer.DeliverCalls()[0].Msg
	assert.Equal(t, "a@x.com", msg.To)
	assert.Equal(t, "Your arXiv digest – 19 Oct 2026", msg.Subject)
	assert.Contains(t, msg.Markdown, "### One")
	assert.Contains(t, msg.Markdown, "### Two")
	assert.Equal(t, res.Files, msg.Attachments)

	require.Len(t, m.archive.SaveCalls(), 1)
	archived := m.archive.SaveCalls()[0].D
	assert.Equal(t, int64(1), archived.SubscriptionID)
	assert.Equal(t, rep.ID, archived.RunID)
	assert.Equal(t, 2, archived.Papers)
}

func TestDriver_Run_NothingRelevant(t *testing.T) {
	m := newDriverMocks()
	m.filter.FilterFunc = func(ctx context.Context, papers []domain.Paper, interest string) ([]domain.Paper, error) {
		return []domain.Paper{}, nil
	}

	rep, err := m.driver().Run(context.Background(), []domain.Subscription{{ID: 1, Email: "a@x.com", Channel: "cs.CL", Interest: "x"}})
	require.NoError(t, err)
	require.Len(t, rep.Results, 1)
	assert.Equal(t, domain.RunStatusSkipped, rep.Results[0].Status)
	assert.Empty(t, m.summ.SummarizeCalls())
	assert.Empty(t, m.writer.WriteCalls())
	assert.Empty(t, m.deliverer.DeliverCalls())
	assert.Empty(t, m.archive.SaveCalls())
}

func TestDriver_Run_Failures(t *testing.T) {
	subs := []domain.Subscription{
		{ID: 1, Email: "a@x.com", Channel: "cs.CL", Interest: "x"},
		{ID: 2, Email: "b@x.com", Channel: "cs.LG", Interest: "y"},
	}

	tests := []struct {
		name    string
		setup   func(m *driverMocks)
		wantErr string
	}{
		{
			name: "fetch",
			setup: func(m *driverMocks) {
				m.fetcher.FetchFunc = func(ctx context.Context, channel string, maxResults int, window feed.Window) ([]domain.Paper, error) {
					if channel == "cs.CL" {
						return nil, errors.New("timeout")
					}
					return []domain.Paper{paper("1", "One", "first")}, nil
				}
			},
			wantErr: "fetch: timeout",
		},
		{
			name: "write",
			setup: func(m *driverMocks) {
				m.writer.WriteFunc = func(d domain.Digest) ([]string, error) {
					if d.Email == "a@x.com" {
						return nil, errors.New("disk full")
					}
					return []string{"f"}, nil
				}
			},
			wantErr: "write report: disk full",
		},
		{
			name: "deliver",
			setup: func(m *driverMocks) {
				m.deliverer.DeliverFunc = func(ctx context.Context, msg mailer.Message) error {
					if msg.To == "a@x.com" {
						return mailer.ErrNotConfigured
					}
					return nil
				}
			},
			wantErr: "deliver: smtp is not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newDriverMocks()
			tt.setup(m)
			rep, err := m.driver().Run(context.Background(), subs)
			require.NoError(t, err)
			require.Len(t, rep.Results, 2)
			assert.Equal(t, domain.RunStatusFailed, rep.Results[0].Status)
			assert.Equal(t, tt.wantErr, rep.Results[0].Error)
			assert.Equal(t, domain.RunStatusSent, rep.Results[1].Status)
			assert.Equal(t, 1, rep.Count(domain.RunStatusFailed))
		})
	}
}

func TestDriver_Run_ArchiveErrorIgnored(t *testing.T) {
	m := newDriverMocks()
	m.archive.SaveFunc = func(ctx context.Context, d *domain.ArchivedDigest) error { return errors.New("locked") }

	rep, err := m.driver().Run(context.Background(), []domain.Subscription{{ID: 1, Email: "a@x.com", Channel: "cs.CL"}})
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusSent, rep.Results[0].Status)
}

func TestDriver_Run_Cancel(t *testing.T) {
	m := newDriverMocks()
	ctx, cancel := context.WithCancel(context.Background())
	m.deliverer.DeliverFunc = func(_ context.Context, msg mailer.Message) error {
		cancel() // cancel after the first subscriber
		return nil
	}

	subs := []domain.Subscription{
		{ID: 1, Email: "a@x.com", Channel: "cs.CL"},
		{ID: 2, Email: "b@x.com", Channel: "cs.CL"},
		{ID: 3, Email: "c@x.com", Channel: "cs.CL"},
	}
	rep, err := m.driver().Run(ctx, subs)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, rep.Results, 1)
	assert.Equal(t, "a@x.com", rep.Results[0].Email)
	assert.Len(t, m.fetcher.FetchCalls(), 1)
}

func TestDriver_Run_InProgress(t *testing.T) {
	m := newDriverMocks()
	started := make(chan struct{})
	release := make(chan struct{})
	m.fetcher.FetchFunc = func(ctx context.Context, channel string, maxResults int, window feed.Window) ([]domain.Paper, error) {
		close(started)
		<-release
		return nil, nil
	}
	d := m.driver()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := d.Run(context.Background(), []domain.Subscription{{ID: 1, Email: "a@x.com"}})
		assert.NoError(t, err)
	}()

	<-started
	assert.True(t, d.Running())
	_, err := d.Run(context.Background(), []domain.Subscription{{ID: 2, Email: "b@x.com"}})
	assert.ErrorIs(t, err, ErrRunInProgress)

	close(release)
	wg.Wait()
	assert.False(t, d.Running())
}

func TestDriver_Run_Empty(t *testing.T) {
	m := newDriverMocks()
	rep, err := m.driver().Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, rep.Results)
	assert.Empty(t, m.fetcher.FetchCalls())
}

const e2eFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query</title>
  <id>http://arxiv.org/api/query</id>
  <updated>2026-10-19T00:00:00Z</updated>
  <entry>
    <id>http://arxiv.org/abs/2610.00001v1</id>
    <updated>2026-10-18T12:00:00Z</updated>
    <title>Graph Neural Networks for Molecules</title>
    <summary>We apply message passing to molecular property prediction.</summary>
    <author><name>Alice</name></author>
    <link href="http://arxiv.org/abs/2610.00001v1" rel="alternate" type="text/html"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2610.00002v1</id>
    <updated>2026-10-18T11:00:00Z</updated>
    <title>Efficient Transformers</title>
    <summary>We propose a sparse attention pattern. It reduces memory by half. It keeps accuracy. We release code.</summary>
    <author><name>Bob</name></author>
    <author><name>Carol</name></author>
    <link href="http://arxiv.org/abs/2610.00002v1" rel="alternate" type="text/html"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2610.00003v1</id>
    <updated>2026-10-18T10:00:00Z</updated>
    <title>Robot Locomotion</title>
    <summary>Policy learning for legged robots.</summary>
    <author><name>Dan</name></author>
    <link href="http://arxiv.org/abs/2610.00003v1" rel="alternate" type="text/html"/>
  </entry>
</feed>`

func e2eDriver(t *testing.T, feedURL string, timeout time.Duration, deliverer Deliverer) (*Driver, string) {
	t.Helper()
	renderer, err := report.NewRenderer()
	require.NoError(t, err)
	dir := t.TempDir()

	d := NewDriver(DriverParams{
		Fetcher:    feed.NewClient(feed.Params{Endpoint: feedURL, Timeout: timeout, Retries: 1}),
		Filter:     relevance.New(false, nil, relevance.Options{}),
		Summarizer: summary.New(false, nil, summary.Options{Sentences: 3, MaxAuthors: 4}),
		Writer:     report.NewWriter(dir, renderer),
		Deliverer:  deliverer,
		MaxResults: 120,
		WindowDays: 1,
		Now:        fixedNow,
	})
	return d, dir
}

func TestDriver_EndToEnd_KeywordDigest(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("search_query"), "cat:cs.CL AND lastUpdatedDate:[202610180000 TO 202610190000]")
		_, _ = w.Write([]byte(e2eFeed))
	}))
	defer ts.Close()

	deliverer := &mocks.DelivererMock{DeliverFunc: func(ctx context.Context, msg mailer.Message) error { return nil }}
	d, dir := e2eDriver(t, ts.URL, 5*time.Second, deliverer)

	subs := []domain.Subscription{{ID: 1, Email: "a@x.com", Channel: "cs.CL", Interest: "transformer attention"}}
	rep, err := d.Run(context.Background(), subs)
	require.NoError(t, err)
	require.Len(t, rep.Results, 1)
	assert.Equal(t, domain.RunStatusSent, rep.Results[0].Status)
	assert.Equal(t, 3, rep.Results[0].Fetched)
	assert.Equal(t, 1, rep.Results[0].Relevant)

	require.Len(t, deliverer.DeliverCalls(), 1)
	md := deliverer.DeliverCalls()[0].Msg.Markdown
	assert.True(t, strings.HasPrefix(md, "# Daily arXiv digest for **transformer attention**  \n*Channel:* `cs.CL`"))
	assert.Equal(t, 1, strings.Count(md, "### ["))
	assert.Contains(t, md, "### [Efficient Transformers](http://arxiv.org/abs/2610.00002v1)  \n*Bob, Carol* — *18 Oct 2026*  \n")
	assert.Contains(t, md, "We propose a sparse attention pattern. It reduces memory by half. It keeps accuracy.\n")
	assert.NotContains(t, md, "We release code.")
	assert.NotContains(t, md, "Graph Neural Networks")

	data, err := os.ReadFile(filepath.Join(dir, "a_x.com_20261019.md"))
	require.NoError(t, err)
	assert.Equal(t, md, string(data))
	_, err = os.Stat(filepath.Join(dir, "a_x.com_20261019.html"))
	require.NoError(t, err)
}

func TestDriver_EndToEnd_TimeoutIsolated(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Query().Get("search_query"), "cat:cs.AI") {
			time.Sleep(300 * time.Millisecond)
		}
		_, _ = w.Write([]byte(e2eFeed))
	}))
	defer ts.Close()

	deliverer := &mocks.DelivererMock{DeliverFunc: func(ctx context.Context, msg mailer.Message) error { return nil }}
	d, dir := e2eDriver(t, ts.URL, 50*time.Millisecond, deliverer)

	subs := []domain.Subscription{
		{ID: 1, Email: "a@x.com", Channel: "cs.AI", Interest: "transformer"},
		{ID: 2, Email: "b@x.com", Channel: "cs.LG", Interest: "graph"},
	}
	rep, err := d.Run(context.Background(), subs)
	require.NoError(t, err)
	require.Len(t, rep.Results, 2)

	assert.Equal(t, domain.RunStatusFailed, rep.Results[0].Status)
	assert.Contains(t, rep.Results[0].Error, "fetch")
	assert.Equal(t, domain.RunStatusSent, rep.Results[1].Status)

	require.Len(t, deliverer.DeliverCalls(), 1)
	assert.Equal(t, "b@x.com", deliverer.DeliverCalls()[0].Msg.To)
	assert.Contains(t, deliverer.DeliverCalls()[0].Msg.Markdown, "Graph Neural Networks for Molecules")

	_, err = os.Stat(filepath.Join(dir, "a_x.com_20261019.md"))
	assert.True(t, os.IsNotExist(err), "no report for failed subscriber")
	_, err = os.Stat(filepath.Join(dir, fmt.Sprintf("%s_20261019.md", "b_x.com")))
	require.NoError(t, err)
}
