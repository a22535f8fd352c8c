// Package assistant classifies a task list into short advisory messages.
//
// Analyze is pure: the same tasks and the same reference day always produce
// the same messages, in the same order, and at most four of them.
package assistant

import (
	"fmt"
	"math"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

type Category string

const (
	AllClear     Category = "all_clear"
	Welcome      Category = "welcome"
	Overdue      Category = "overdue"
	Pinned       Category = "pinned"
	HighPriority Category = "high_priority"
	Motivation   Category = "motivation"
)

type Message struct {
	Kind     Kind     `json:"type"`
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// Analyze returns the advisories for tasks as of the calendar day of today.
func Analyze(tasks []Task, today time.Time) []Message {
	var pending, overdue, high, pinned []Task
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
			continue
		}
		pending = append(pending, t)
		if isOverdue(t, today) {
			overdue = append(overdue, t)
		}
		if t.Priority == High {
			high = append(high, t)
		}
		if t.Pinned {
			pinned = append(pinned, t)
		}
	}

	if len(pending) == 0 && len(tasks) > 0 {
		return []Message{{
			Kind:     KindSuccess,
			Category: AllClear,
			Text:     "🎉 Amazing! You've cleared all your tasks. Time to relax or plan ahead?",
		}}
	}
	if len(tasks) == 0 {
		return []Message{{
			Kind:     KindInfo,
			Category: Welcome,
			Text:     "👋 Hi! I'm your assistant. Add some tasks to get started, and I'll help you stay on track.",
		}}
	}

	var out []Message
	if len(overdue) > 0 {
		out = append(out, Message{
			Kind:     KindError,
			Category: Overdue,
			Text: fmt.Sprintf("🚨 Attention: You have %d overdue task%s. I recommend tackling \"%s\" first.",
				len(overdue), plural(len(overdue)), overdue[0].Title),
		})
	}

	switch {
	case len(pinned) > 0:
		out = append(out, Message{
			Kind:     KindWarning,
			Category: Pinned,
			Text: fmt.Sprintf("📌 You have %d pinned task%s. Don't forget about \"%s\".",
				len(pinned), plural(len(pinned)), pinned[0].Title),
		})
	case len(high) > 0:
		out = append(out, Message{
			Kind:     KindWarning,
			Category: HighPriority,
			Text: fmt.Sprintf("⚡ Focus Mode: You have %d high priority task%s pending. \"%s\" looks important.",
				len(high), plural(len(high)), high[0].Title),
		})
	}

	if rate := CompletionRate(completed, len(tasks)); rate > 50 && len(pending) > 0 {
		out = append(out, Message{
			Kind:     KindInfo,
			Category: Motivation,
			Text:     fmt.Sprintf("🚀 You're doing great! %d%% of tasks completed. Keep that momentum going!", rate),
		})
	}
	return out
}

// CompletionRate is completed/total as a whole percentage, rounded half away from zero.
func CompletionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}

// isOverdue reports whether t's deadline falls on a calendar day before today.
func isOverdue(t Task, today time.Time) bool {
	if t.Completed || t.Deadline == nil || t.Deadline.IsZero() {
		return false
	}
	dy, dm, dd := t.Deadline.CalendarDay(today.Location())
	ty, tm, td := today.Date()
	deadline := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	day := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return deadline.Before(day)
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
