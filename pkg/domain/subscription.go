package domain

import "time"

// Profile describes what a subscriber wants to read about
type Profile struct {
	Interest string // free-text description of desired topics
	Channel  string // catalog category, e.g. cs.CL
}

// Subscription represents a subscriber registered for a channel
type Subscription struct {
	ID        int64
	Email     string
	Channel   string
	Interest  string
	Active    bool
	CreatedAt time.Time
}

// Profile returns the interest profile of the subscription
func (s Subscription) Profile() Profile {
	return Profile{Interest: s.Interest, Channel: s.Channel}
}
