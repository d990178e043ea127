package session

import "time"

// tickMsg drives the session scheduler from the Bubble Tea loop.
type tickMsg time.Time
