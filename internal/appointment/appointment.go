// Package appointment defines the raw appointment records produced by the
// booking backend and the canonical intervals the day view is built from.
package appointment

import (
	"encoding/json"
	"errors"
)

// Fallbacks used when a record does not carry enough information.
const (
	DefaultDurationMinutes = 30
	UnknownStaffLabel      = "Unknown Staff"
	UntitledLabel          = "Untitled"
)

// Parse errors.
var (
	ErrUnrecognizedTime = errors.New("unrecognized time format")
	ErrEmptySlot        = errors.New("slot is empty")
	ErrMalformedSlot    = errors.New("slot must be a single time or a start - end pair")
	ErrPastMidnight     = errors.New("appointment runs past midnight")
)

// Record errors.
var (
	ErrUnknownRecordShape = errors.New("record has neither slot nor timeSlot/appointmentTime")
	ErrInvalidJSON        = errors.New("invalid JSON")
	ErrNotArray           = errors.New("records payload must be a JSON array")
	ErrInvalidDate        = errors.New("invalid appointment date")
)

// Kind discriminates the raw record variants.
type Kind int

const (
	KindUnknown Kind = iota
	KindSlot         // {date, slot, service, staff, customer}
	KindEpoch        // {appointmentTime, timeSlot, staffId, customerName}
)

// String returns the variant name used in logs.
func (k Kind) String() string {
	switch k {
	case KindSlot:
		return "slot"
	case KindEpoch:
		return "epoch"
	default:
		return "unknown"
	}
}

// Record is one raw appointment as delivered by a backend endpoint.
// Exactly one of Slot or Epoch is set, matching Kind.
type Record struct {
	Kind  Kind
	Slot  *SlotRecord
	Epoch *EpochRecord

	// Raw is the payload the record was decoded from.
	Raw json.RawMessage
}

// ID returns the record identifier regardless of variant.
func (r Record) ID() string {
	switch {
	case r.Slot != nil:
		return r.Slot.ID
	case r.Epoch != nil:
		return r.Epoch.ID
	default:
		return ""
	}
}

// SlotRecord is the booking-screen shape: a calendar date plus a free-form
// slot such as "7:30 PM - 8:00 PM", "8.00 PM" or "10:30 AM".
type SlotRecord struct {
	ID       string
	Date     string
	Slot     string
	Service  *Service
	Staff    *Staff
	Customer *Customer
	Color    string
}

// Service is the booked service.
type Service struct {
	Name            string
	DurationMinutes int
}

// Staff identifies the staff member an appointment is assigned to.
type Staff struct {
	ID   string
	Name string
}

// Customer is the person the appointment is for.
type Customer struct {
	Name string
}

// EpochRecord is the dashboard shape: an epoch-millis timestamp and a
// 24-hour "HH:MM-HH:MM" slot.
type EpochRecord struct {
	ID              string
	AppointmentTime int64 // epoch milliseconds
	TimeSlot        string
	StaffID         string
	CustomerName    string
	Color           string
}

// StaffDirectory resolves staff ids to display names.
type StaffDirectory map[string]string

// Interval is a normalized appointment: a half-open [Start, End) range of
// decimal hours on a calendar date.
type Interval struct {
	ID         string
	Title      string
	StaffLabel string
	Date       string // YYYY-MM-DD
	Start      float64
	End        float64
	Color      string // presentation hint, passed through untouched
}

// DurationMinutes returns the interval length in whole minutes.
func (iv Interval) DurationMinutes() int {
	return int((iv.End-iv.Start)*60 + 0.5)
}

// Overlaps reports whether two intervals are on the same date and their
// time ranges intersect. Touching ranges do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	if iv.Date != other.Date {
		return false
	}
	return HoursOverlap(iv.Start, iv.End, other.Start, other.End)
}

// HoursOverlap returns true if two decimal-hour ranges overlap.
// Two ranges overlap if: start1 < end2 AND start2 < end1
func HoursOverlap(start1, end1, start2, end2 float64) bool {
	return start1 < end2 && start2 < end1
}
