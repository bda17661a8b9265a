package appointment

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/dateutil"
)

// Normalizer turns raw records into Intervals. The zero value is usable and
// applies the package defaults.
type Normalizer struct {
	// Staff resolves staff ids to display names.
	Staff StaffDirectory
	// DefaultDurationMinutes applies when neither the slot nor the service
	// gives an end time.
	DefaultDurationMinutes int
	// Location is used to take the calendar date and wall-clock time of
	// epoch timestamps. Nil means time.Local.
	Location *time.Location

	UnknownStaff string
	Untitled     string

	Logger *zap.Logger
}

// Normalize returns one Interval per valid record, in input order. Records
// that cannot be parsed are logged and dropped.
func (n *Normalizer) Normalize(records []Record) []Interval {
	out := make([]Interval, 0, len(records))
	for _, r := range records {
		iv, err := n.NormalizeRecord(r)
		if err != nil {
			n.logger().Warn("dropping appointment",
				zap.String("id", r.ID()),
				zap.Stringer("kind", r.Kind),
				zap.Error(err),
			)
			continue
		}
		out = append(out, iv)
	}
	return out
}

// NormalizeRecord normalizes a single record.
func (n *Normalizer) NormalizeRecord(r Record) (Interval, error) {
	switch {
	case r.Kind == KindSlot && r.Slot != nil:
		return n.fromSlot(r.Slot)
	case r.Kind == KindEpoch && r.Epoch != nil:
		return n.fromEpoch(r.Epoch)
	default:
		return Interval{}, ErrUnknownRecordShape
	}
}

func (n *Normalizer) fromSlot(r *SlotRecord) (Interval, error) {
	date, err := dateutil.CanonicalDate(r.Date)
	if err != nil {
		return Interval{}, fmt.Errorf("%w %q", ErrInvalidDate, r.Date)
	}

	duration := n.defaultDuration()
	if r.Service != nil && r.Service.DurationMinutes > 0 {
		duration = r.Service.DurationMinutes
	}

	start, end, err := ParseSlot(r.Slot, duration)
	if err != nil {
		return Interval{}, err
	}

	return Interval{
		ID:         r.ID,
		Title:      n.slotTitle(r),
		StaffLabel: n.slotStaff(r.Staff),
		Date:       date,
		Start:      start,
		End:        end,
		Color:      r.Color,
	}, nil
}

func (n *Normalizer) fromEpoch(r *EpochRecord) (Interval, error) {
	var start, end float64
	if r.TimeSlot == "" {
		// No slot: the timestamp itself is the start.
		at := dateutil.FromMillis(r.AppointmentTime, n.Location)
		start = DecimalHour(at.Hour(), at.Minute())
		end = start + float64(n.defaultDuration())/60
		if end >= 24 {
			end = lastMinute
		}
		if end <= start {
			return Interval{}, ErrPastMidnight
		}
	} else {
		var err error
		start, end, err = ParseSlot(r.TimeSlot, n.defaultDuration())
		if err != nil {
			return Interval{}, err
		}
	}

	title := r.CustomerName
	if title == "" {
		title = n.untitled()
	}

	return Interval{
		ID:         r.ID,
		Title:      title,
		StaffLabel: n.resolveStaff(r.StaffID),
		Date:       dateutil.DateOfMillis(r.AppointmentTime, n.Location),
		Start:      start,
		End:        end,
		Color:      r.Color,
	}, nil
}

func (n *Normalizer) slotTitle(r *SlotRecord) string {
	if r.Service != nil && r.Service.Name != "" {
		return r.Service.Name
	}
	if r.Customer != nil && r.Customer.Name != "" {
		return r.Customer.Name
	}
	return n.untitled()
}

func (n *Normalizer) slotStaff(s *Staff) string {
	if s == nil {
		return n.unknownStaff()
	}
	if s.Name != "" {
		return s.Name
	}
	return n.resolveStaff(s.ID)
}

// resolveStaff looks id up in the directory, falling back to the raw id and
// then to the unknown-staff label.
func (n *Normalizer) resolveStaff(id string) string {
	if name := n.Staff[id]; id != "" && name != "" {
		return name
	}
	if id != "" {
		return id
	}
	return n.unknownStaff()
}

func (n *Normalizer) defaultDuration() int {
	if n.DefaultDurationMinutes > 0 {
		return n.DefaultDurationMinutes
	}
	return DefaultDurationMinutes
}

func (n *Normalizer) unknownStaff() string {
	if n.UnknownStaff != "" {
		return n.UnknownStaff
	}
	return UnknownStaffLabel
}

func (n *Normalizer) untitled() string {
	if n.Untitled != "" {
		return n.Untitled
	}
	return UntitledLabel
}

func (n *Normalizer) logger() *zap.Logger {
	if n.Logger == nil {
		return zap.NewNop()
	}
	return n.Logger
}
