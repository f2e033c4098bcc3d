// Package availability generates candidate appointment slots and validates
// proposed bookings against clinic operating rules. Slot listing and booking
// validation share one rule set, so a slot reported as available is bookable
// at the moment it was listed.
package availability

import (
	"fmt"
	"time"

	"github.com/clinicware/clinic-platform/internal/settings"
)

// Slot reasons reported for unavailable times.
const (
	ReasonBreak  = "break"
	ReasonPast   = "past"
	ReasonBooked = "booked"
)

// Appointment is the slice of an appointment record the engine evaluates.
type Appointment struct {
	DoctorID  string
	At        time.Time
	Cancelled bool
}

// Slot is a candidate appointment start time within working hours.
type Slot struct {
	Time      time.Time `json:"time"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}

// BookingRequest is a proposed booking to validate.
type BookingRequest struct {
	DoctorID string
	At       time.Time
}

type window struct {
	start, end int // minutes past midnight, [start, end)
	valid      bool
}

func (w window) contains(minute int) bool {
	return w.valid && minute >= w.start && minute < w.end
}

type rules struct {
	hours    window
	breakWin window
	slot     time.Duration
}

func compileRules(cfg *settings.ClinicSettings) (rules, error) {
	if cfg == nil {
		cfg = settings.Default()
	}

	start, err := settings.ParseClock(cfg.WorkingHoursStart)
	if err != nil {
		return rules{}, fmt.Errorf("availability: working hours start: %w", err)
	}
	end, err := settings.ParseClock(cfg.WorkingHoursEnd)
	if err != nil {
		return rules{}, fmt.Errorf("availability: working hours end: %w", err)
	}

	r := rules{
		hours: window{start: start, end: end, valid: true},
		slot:  cfg.SlotDuration(),
	}

	if cfg.HasBreak() {
		bs, err := settings.ParseClock(cfg.BreakStart)
		if err != nil {
			return rules{}, fmt.Errorf("availability: break start: %w", err)
		}
		be, err := settings.ParseClock(cfg.BreakEnd)
		if err != nil {
			return rules{}, fmt.Errorf("availability: break end: %w", err)
		}
		r.breakWin = window{start: bs, end: be, valid: true}
	}

	return r, nil
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// conflicts reports whether t is within one slot duration of an active
// appointment for the doctor. The rule is distance-based, not grid-aligned:
// 10:05 and 10:34 conflict under a 30-minute slot even though neither sits on
// a slot boundary.
func conflicts(doctorID string, t time.Time, existing []Appointment, slot time.Duration) bool {
	for _, apt := range existing {
		if apt.DoctorID != doctorID || apt.Cancelled {
			continue
		}
		diff := t.Sub(apt.At)
		if diff < 0 {
			diff = -diff
		}
		if diff < slot {
			return true
		}
	}
	return false
}

// ValidateBooking checks a single proposed timestamp. It returns nil when the
// booking is admissible, or exactly one typed rejection. Checks short-circuit
// in a fixed order so error reporting stays deterministic:
// past time, out of hours, break window, slot conflict.
func ValidateBooking(req BookingRequest, cfg *settings.ClinicSettings, existing []Appointment, now time.Time) error {
	r, err := compileRules(cfg)
	if err != nil {
		return err
	}

	if req.At.Before(now) {
		return ErrPastTime
	}
	if !r.hours.contains(minuteOfDay(req.At)) {
		return ErrOutOfHours
	}
	if r.breakWin.contains(minuteOfDay(req.At)) {
		return ErrBreakTime
	}
	if conflicts(req.DoctorID, req.At, existing, r.slot) {
		return ErrConflict
	}
	return nil
}

// ListSlots produces the finite sequence of candidate start times for a
// doctor on the given day, stepping from working-hours start to end by the
// slot duration. Each slot is evaluated with the same rules ValidateBooking
// applies, so a slot marked available will pass validation against the same
// inputs.
func ListSlots(doctorID string, day time.Time, cfg *settings.ClinicSettings, existing []Appointment, now time.Time) ([]Slot, error) {
	r, err := compileRules(cfg)
	if err != nil {
		return nil, err
	}

	base := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	step := int(r.slot / time.Minute)
	if step <= 0 {
		step = settings.DefaultSlotMinutes
	}

	var slots []Slot
	for minute := r.hours.start; minute < r.hours.end; minute += step {
		at := base.Add(time.Duration(minute) * time.Minute)
		slot := Slot{Time: at, Available: true}

		switch {
		case r.breakWin.contains(minute):
			slot.Available = false
			slot.Reason = ReasonBreak
		case at.Before(now):
			slot.Available = false
			slot.Reason = ReasonPast
		case conflicts(doctorID, at, existing, r.slot):
			slot.Available = false
			slot.Reason = ReasonBooked
		}

		slots = append(slots, slot)
	}
	return slots, nil
}
