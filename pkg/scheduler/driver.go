package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/demajh/research-listener/pkg/digest"
	"github.com/demajh/research-listener/pkg/domain"
	"github.com/demajh/research-listener/pkg/feed"
	"github.com/demajh/research-listener/pkg/mailer"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/filter.go -pkg mocks -skip-ensure -fmt goimports . Filter
//go:generate moq -out mocks/summarizer.go -pkg mocks -skip-ensure -fmt goimports . Summarizer
//go:generate moq -out mocks/report_writer.go -pkg mocks -skip-ensure -fmt goimports . ReportWriter
//go:generate moq -out mocks/deliverer.go -pkg mocks -skip-ensure -fmt goimports . Deliverer
//go:generate moq -out mocks/archive.go -pkg mocks -skip-ensure -fmt goimports . Archive

// ErrRunInProgress is returned when a sweep is requested while another one is running
var ErrRunInProgress = errors.New("run already in progress")

// Fetcher retrieves recent papers of a channel
type Fetcher interface {
	Fetch(ctx context.Context, channel string, maxResults int, window feed.Window) ([]domain.Paper, error)
}

// Filter selects papers relevant to an interest
type Filter interface {
	Filter(ctx context.Context, papers []domain.Paper, interest string) ([]domain.Paper, error)
}

// Summarizer makes a markdown block for a paper, it never fails
type Summarizer interface {
	Summarize(ctx context.Context, paper domain.Paper) domain.SummaryBlock
}

// ReportWriter stores a digest and returns written file paths
type ReportWriter interface {
	Write(d domain.Digest) ([]string, error)
}

// Deliverer sends a digest to the subscriber
type Deliverer interface {
	Deliver(ctx context.Context, msg mailer.Message) error
}

// Archive keeps produced digests, optional
type Archive interface {
	Save(ctx context.Context, d *domain.ArchivedDigest) error
}

// DriverParams holds driver dependencies and settings
type DriverParams struct {
	Fetcher    Fetcher
	Filter     Filter
	Summarizer Summarizer
	Writer     ReportWriter
	Deliverer  Deliverer
	Archive    Archive

	MaxResults int
	WindowDays int
	Now        func() time.Time // defaults to time.Now
}

// Driver runs the digest pipeline for a list of subscriptions, one at a time
type Driver struct {
	DriverParams
	running atomic.Bool
}

// NewDriver creates a pipeline driver
func NewDriver(p DriverParams) *Driver {
	if p.WindowDays <= 0 {
		p.WindowDays = 1
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &Driver{DriverParams: p}
}

// Running reports whether a sweep is in progress
func (d *Driver) Running() bool {
	return d.running.Load()
}

// Run processes subscriptions sequentially. A failure of one subscriber is recorded in the report
// and doesn't stop the sweep. Canceled context stops the sweep before the next subscriber.
func (d *Driver) Run(ctx context.Context, subs []domain.Subscription) (domain.RunReport, error) {
	if !d.running.CompareAndSwap(false, true) {
		return domain.RunReport{}, ErrRunInProgress
	}
	defer d.running.Store(false)

	report := domain.RunReport{ID: uuid.NewString(), StartedAt: d.Now().UTC(), Results: []domain.SubscriberResult{}}
	lgr.Printf("[INFO] run %s started for %d subscribers", report.ID, len(subs))

	var runErr error
	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			lgr.Printf("[WARN] run %s interrupted, %d subscribers not processed", report.ID, len(subs)-len(report.Results))
			runErr = fmt.Errorf("run interrupted: %w", err)
			break
		}
		res := d.processSubscriber(ctx, report.ID, sub)
		report.Results = append(report.Results, res)
	}

	report.FinishedAt = d.Now().UTC()
	lgr.Printf("[INFO] run %s finished: %d sent, %d skipped, %d failed", report.ID,
		report.Count(domain.RunStatusSent), report.Count(domain.RunStatusSkipped), report.Count(domain.RunStatusFailed))
	return report, runErr
}

// processSubscriber runs fetch, filter, summarize, assemble, write and deliver for one subscription
func (d *Driver) processSubscriber(ctx context.Context, runID string, sub domain.Subscription) domain.SubscriberResult {
	res := domain.SubscriberResult{SubscriptionID: sub.ID, Email: sub.Email, Channel: sub.Channel}
	fail := func(err error) domain.SubscriberResult {
		lgr.Printf("[WARN] subscriber %s (%s) failed: %v", sub.Email, sub.Channel, err)
		res.Status = domain.RunStatusFailed
		res.Error = err.Error()
		return res
	}

	now := d.Now()
	papers, err := d.Fetcher.Fetch(ctx, sub.Channel, d.MaxResults, feed.DayWindow(now, d.WindowDays))
	if err != nil {
		return fail(fmt.Errorf("fetch: %w", err))
	}
	res.Fetched = len(papers)

	relevant, err := d.Filter.Filter(ctx, papers, sub.Interest)
	if err != nil {
		return fail(fmt.Errorf("filter: %w", err))
	}
	res.Relevant = len(relevant)

	if len(relevant) == 0 {
		lgr.Printf("[INFO] nothing relevant for %s in %s today, %d papers checked", sub.Email, sub.Channel, len(papers))
		res.Status = domain.RunStatusSkipped
		return res
	}

	blocks := make([]domain.SummaryBlock, 0, len(relevant))
	for _, p := range relevant {
		blocks = append(blocks, d.Summarizer.Summarize(ctx, p))
	}

	dg, ok := digest.Assemble(sub.Email, sub.Profile(), blocks, now)
	if !ok {
		res.Status = domain.RunStatusSkipped
		return res
	}

	files, err := d.Writer.Write(dg)
	if err != nil {
		return fail(fmt.Errorf("write report: %w", err))
	}
	res.Files = files

	if d.Archive != nil {
		archived := &domain.ArchivedDigest{SubscriptionID: sub.ID, RunID: runID, GeneratedAt: dg.GeneratedAt,
			Papers: len(blocks), Markdown: dg.Markdown}
		if err := d.Archive.Save(ctx, archived); err != nil {
			lgr.Printf("[WARN] can't archive digest for %s: %v", sub.Email, err)
		}
	}

	msg := mailer.Message{To: sub.Email, Subject: digest.Subject(dg.GeneratedAt), Markdown: dg.Markdown, Attachments: files}
	if err := d.Deliverer.Deliver(ctx, msg); err != nil {
		return fail(fmt.Errorf("deliver: %w", err))
	}

	lgr.Printf("[INFO] digest with %d papers sent to %s", len(blocks), sub.Email)
	res.Status = domain.RunStatusSent
	return res
}
