// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

import "time"

// ActivityQueueName is the durable queue carrying list activity.
const ActivityQueueName = "movie_list.activity"

// Activity event types.
const (
	EntryAdded    = "entry.added"
	EntryReviewed = "entry.reviewed"
	EntryDeleted  = "entry.deleted"
)

// ActivityEvent is published whenever a list entry is added, reviewed or
// deleted.  It carries enough information for downstream consumers to log or
// aggregate without querying the primary database.
type ActivityEvent struct {
	Type       string    `json:"type"`
	EntryID    uint64    `json:"entry_id"`
	AccountID  uint64    `json:"account_id"`
	Title      string    `json:"title"`
	Rating     *float64  `json:"rating,omitempty"`
	Ranking    *int      `json:"ranking,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
