package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type Priority string

const (
	High   Priority = "High"
	Medium Priority = "Medium"
	Low    Priority = "Low"
)

// Task is the client-owned task record the engine reads.
type Task struct {
	ID        string   `json:"id,omitempty"`
	Title     string   `json:"title"`
	Completed bool     `json:"completed"`
	Deadline  *Date    `json:"deadline,omitempty"`
	Priority  Priority `json:"priority,omitempty"`
	Pinned    bool     `json:"isPinned"`
}

// Date is a deadline. It decodes "2006-01-02" as well as RFC 3339 timestamps.
// Date-only values name a calendar day in whatever zone the reader is in.
type Date struct {
	time.Time
	DateOnly bool
}

// On returns a date-only deadline.
func On(year int, month time.Month, day int) *Date {
	return &Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), DateOnly: true}
}

// At returns a deadline at an instant.
func At(t time.Time) *Date {
	return &Date{Time: t}
}

// CalendarDay returns the calendar day of d as seen from loc.
func (d Date) CalendarDay(loc *time.Location) (int, time.Month, int) {
	if d.DateOnly {
		return d.Time.Date()
	}
	return d.Time.In(loc).Date()
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		*d = Date{Time: t, DateOnly: true}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = Date{Time: t}
			return nil
		}
	}
	return fmt.Errorf("invalid deadline %q", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.DateOnly {
		return json.Marshal(d.Time.Format("2006-01-02"))
	}
	return json.Marshal(d.Time.Format(time.RFC3339))
}
