// Package eta turns live arrival records into display values.
package eta

import (
	"fmt"
	"time"

	"kmbeta/internal/i18n"
	"kmbeta/internal/kmb"
)

// Minutes returns the rounded-up minutes until at. The difference is
// truncated to whole seconds first, then floor(seconds/60)+1, so anything
// from 0 to 59 seconds away is 1 minute. Overdue arrivals give values < 1.
func Minutes(at, now time.Time) int {
	secs := int64(at.Sub(now) / time.Second)
	m := secs / 60
	if secs%60 != 0 && secs < 0 {
		m--
	}
	return int(m) + 1
}

// Format renders a minute count in the words of s: "1 min", "N mins", or
// s.Due once the arrival has passed.
func Format(minutes int, s i18n.Strings) string {
	switch {
	case minutes < 1:
		return s.Due
	case minutes == 1:
		return s.Min
	default:
		return fmt.Sprintf(s.Mins, minutes)
	}
}

// Countdown is Format(Minutes(at, now), s).
func Countdown(at, now time.Time, s i18n.Strings) string {
	return Format(Minutes(at, now), s)
}

// ParseTimestamp parses an upstream ETA timestamp such as
// "2024-03-01T15:48:00+08:00".
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ForDirection keeps the records travelling in dir.
func ForDirection(records []kmb.ETA, dir kmb.Direction) []kmb.ETA {
	bound := dir.Bound()
	var out []kmb.ETA
	for _, r := range records {
		if r.Dir == bound {
			out = append(out, r)
		}
	}
	return out
}

// Slot is one display cell: either a countdown or a remark. At is zero for
// remarks.
type Slot struct {
	Text     string
	IsRemark bool
	Minutes  int
	At       time.Time
	Dest     string
}

// SlotFor builds the display cell for a record.
func SlotFor(r kmb.ETA, lang i18n.Language, now time.Time) Slot {
	strs := i18n.For(lang)
	dest := r.Dest(string(lang))
	if r.ETA != nil {
		if at, ok := ParseTimestamp(*r.ETA); ok {
			m := Minutes(at, now)
			return Slot{Text: Format(m, strs), Minutes: m, At: at, Dest: dest}
		}
	}
	rmk := r.Remark(string(lang))
	if rmk == "" {
		rmk = strs.NoETA
	}
	return Slot{Text: rmk, IsRemark: true, Dest: dest}
}

// Slots builds one cell per record, in order.
func Slots(records []kmb.ETA, lang i18n.Language, now time.Time) []Slot {
	slots := make([]Slot, 0, len(records))
	for _, r := range records {
		slots = append(slots, SlotFor(r, lang, now))
	}
	return slots
}
