package model

import (
	"encoding/json"
	"time"
)

// Run kinds stored by the run history.
const (
	RunKindRoster    = "roster"
	RunKindTimetable = "timetable"
)

// Run is one recorded solve: the input it was given, the outcome, and
// the decoded artifacts when an assignment exists.
type Run struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	Status     Status          `json:"status"`
	Objective  int             `json:"objective"`
	WallMillis int64           `json:"wall_millis"`
	Config     json.RawMessage `json:"config,omitempty"`
	Schedule   *Schedule       `json:"schedule,omitempty"`
	Report     *Report         `json:"report,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
