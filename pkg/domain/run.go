package domain

import "time"

// RunStatus is the outcome of one subscriber within a run
type RunStatus string

const (
	RunStatusSent    RunStatus = "sent"
	RunStatusSkipped RunStatus = "skipped"
	RunStatusFailed  RunStatus = "failed"
)

// SubscriberResult records what happened to one subscription during a run
type SubscriberResult struct {
	SubscriptionID int64     `json:"subscription_id"`
	Email          string    `json:"email"`
	Channel        string    `json:"channel"`
	Status         RunStatus `json:"status"`
	Fetched        int       `json:"fetched"`
	Relevant       int       `json:"relevant"`
	Files          []string  `json:"files,omitempty"`
	Error          string    `json:"error,omitempty"`
}

// RunReport summarizes a single sweep over the subscriber list
type RunReport struct {
	ID         string             `json:"id"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Results    []SubscriberResult `json:"results"`
}

// Count returns the number of results with the given status
func (r RunReport) Count(status RunStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}
