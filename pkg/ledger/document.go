package ledger

import "time"

// Document is the persisted shape of the ledger. It is rewritten in full on
// every mutation.
type Document struct {
	Scores          map[string]int      `json:"scores"`
	Baits           map[string][]string `json:"baits"`
	DebaitCooldowns map[string]float64  `json:"debait_cooldowns"`
}

// NewDocument returns a document with all three maps empty, which is what a
// missing data file means.
func NewDocument() *Document {
	return &Document{
		Scores:          make(map[string]int),
		Baits:           make(map[string][]string),
		DebaitCooldowns: make(map[string]float64),
	}
}

// epochSeconds converts a timestamp to fractional unix seconds.
func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// fromEpochSeconds is the inverse of epochSeconds.
func fromEpochSeconds(f float64) time.Time {
	return time.Unix(0, int64(f*float64(time.Second)))
}
