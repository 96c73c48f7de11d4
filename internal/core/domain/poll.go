package domain

import "time"

// Poll is the composed read model returned by the service: Votes is parallel
// to Options and TotalVotes is derived on read, never stored.
type Poll struct {
	ID         string    `json:"id"`
	Question   string    `json:"question"`
	Options    []string  `json:"options"`
	Votes      []int64   `json:"votes"`
	TotalVotes int64     `json:"totalVotes"`
	CreatedAt  time.Time `json:"createdAt"`
	EndsAt     time.Time `json:"endsAt"`
}
