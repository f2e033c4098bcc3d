// Package settings holds the single clinic configuration record.
package settings

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultSlotMinutes is the slot duration applied when the stored record has
// none. Absent settings must never degrade into "any booking allowed".
const DefaultSlotMinutes = 30

// ClinicSettings is the singleton clinic configuration. Times of day are
// clinic-local wall-clock strings in 24-hour "HH:MM" form.
type ClinicSettings struct {
	Name              string `json:"name"`
	WorkingHoursStart string `json:"workingHoursStart"`
	WorkingHoursEnd   string `json:"workingHoursEnd"`
	BreakStart        string `json:"breakStart,omitempty"`
	BreakEnd          string `json:"breakEnd,omitempty"`
	SlotMinutes       int    `json:"slotDurationMinutes,omitempty"`

	// AdminPasswordHash is persisted but never exposed over the API.
	AdminPasswordHash string `json:"adminPasswordHash,omitempty"`
}

// Default returns the documented fallback configuration.
func Default() *ClinicSettings {
	return &ClinicSettings{
		Name:              "MediCare Clinic",
		WorkingHoursStart: "09:00",
		WorkingHoursEnd:   "17:00",
		SlotMinutes:       DefaultSlotMinutes,
	}
}

// SlotDuration returns the effective slot length, defaulting when unset.
func (s *ClinicSettings) SlotDuration() time.Duration {
	if s == nil || s.SlotMinutes <= 0 {
		return DefaultSlotMinutes * time.Minute
	}
	return time.Duration(s.SlotMinutes) * time.Minute
}

// HasBreak reports whether a break window is configured.
func (s *ClinicSettings) HasBreak() bool {
	return s != nil && s.BreakStart != "" && s.BreakEnd != ""
}

// Sanitized returns a copy safe to serialize in API responses.
func (s *ClinicSettings) Sanitized() *ClinicSettings {
	if s == nil {
		return nil
	}
	out := *s
	out.AdminPasswordHash = ""
	return &out
}

// ParseClock converts an "HH:MM" wall-clock string to minutes past midnight.
func ParseClock(v string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(v), ":")
	if !ok {
		return 0, fmt.Errorf("settings: invalid clock value %q", v)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("settings: invalid hour in %q", v)
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("settings: invalid minute in %q", v)
	}
	return hours*60 + minutes, nil
}
