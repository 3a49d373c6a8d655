package domain

import "time"

// Paper represents a single catalog record as returned by the feed client
type Paper struct {
	ArxivID  string
	Title    string
	Abstract string
	Authors  []string
	Link     string
	Updated  time.Time
}

// SummaryBlock is the markdown fragment produced for one relevant paper
type SummaryBlock struct {
	PaperID  string
	Markdown string
}

// Digest is the assembled report for one subscriber and one run
type Digest struct {
	Email       string
	Profile     Profile
	GeneratedAt time.Time
	Blocks      []SummaryBlock
	Markdown    string
}

// ArchivedDigest is a delivered digest kept for the subscription feed
type ArchivedDigest struct {
	ID             int64
	SubscriptionID int64
	RunID          string
	GeneratedAt    time.Time
	Papers         int
	Markdown       string
}
