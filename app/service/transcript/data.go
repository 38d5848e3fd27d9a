package transcript

import "time"

// Record is one emitted display message, as persisted.
type Record struct {
	Session string    `json:"session"`
	Sender  string    `json:"sender"`
	Text    string    `json:"text"`
	Time    time.Time `json:"ts"`
}
