package activity

import (
	"encoding/json"
	"log/slog"
	"os"
	"sort"
	"strings"

	"renderest/internal/logging"
)

// InstantMessage is returned for zero and negative durations.
const InstantMessage = "Instant render!"

// Entry pairs a duration threshold in seconds with a suggestion shown once
// the estimate reaches it.
type Entry struct {
	Threshold  float64 `json:"threshold"`
	Suggestion string  `json:"suggestion"`
}

// Advisor maps estimated durations to activity suggestions.
type Advisor struct {
	entries []Entry
}

type document struct {
	Activities []Entry `json:"activities"`
}

// Defaults returns the built-in suggestion table.
func Defaults() []Entry {
	return []Entry{
		{5, "Instant Render!"},
		{30, "Perfect time to stretch"},
		{60, "Grab a glass of water"},
		{300, "Do some quick desk exercises"},
		{600, "Go for a short walk"},
		{1800, "Watch an episode of your favorite show"},
		{3600, "Take a power nap"},
		{7200, "Go out for lunch"},
		{86400, "This might take a while - consider optimizing your scene"},
	}
}

// New builds an advisor from the given entries. Entries with a non-positive
// threshold or an empty suggestion are dropped; if nothing usable remains the
// built-in table is used. The table is sorted ascending regardless of input
// order.
func New(entries []Entry) *Advisor {
	usable := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Threshold <= 0 || strings.TrimSpace(e.Suggestion) == "" {
			continue
		}
		usable = append(usable, e)
	}
	if len(usable) == 0 {
		usable = Defaults()
	}
	sort.SliceStable(usable, func(i, j int) bool {
		return usable[i].Threshold < usable[j].Threshold
	})
	return &Advisor{entries: usable}
}

// Load reads the suggestion table from a JSON document at path. A missing or
// malformed file falls back to the built-in table; loading never fails.
func Load(path string, logger *slog.Logger) *Advisor {
	logger = logging.NewComponentLogger(logger, "activity")
	if strings.TrimSpace(path) == "" {
		return New(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("activities file unreadable, using defaults", logging.Error(err))
		}
		return New(nil)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("activities file malformed, using defaults", logging.Error(err))
		return New(nil)
	}
	return New(doc.Activities)
}

// For returns the suggestion for an estimated duration in seconds: the entry
// with the greatest threshold not exceeding it, the smallest entry when the
// duration is below every threshold, and a fixed instant message at or below
// zero.
func (a *Advisor) For(seconds float64) string {
	if seconds <= 0 {
		return InstantMessage
	}
	suggestion := a.entries[0].Suggestion
	for _, e := range a.entries {
		if seconds >= e.Threshold {
			suggestion = e.Suggestion
		} else {
			break
		}
	}
	return suggestion
}

// Entries exposes the active table for display.
func (a *Advisor) Entries() []Entry {
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}
