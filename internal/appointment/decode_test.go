package appointment

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDecodeRecord_Slot(t *testing.T) {
	data := []byte(`{
		"id": "a1",
		"date": "2025-01-15",
		"slot": "7:30 PM - 8:00 PM",
		"service": {"name": "Haircut", "duration_minutes": 45},
		"staff": {"id": "s1", "name": "Maya"},
		"customer": {"name": "Lee"},
		"color": "#ffaa00"
	}`)

	rec, err := DecodeRecord(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Kind != KindSlot || rec.Slot == nil || rec.Epoch != nil {
		t.Fatalf("Kind = %v, want slot record only", rec.Kind)
	}

	s := rec.Slot
	if s.ID != "a1" || s.Date != "2025-01-15" || s.Slot != "7:30 PM - 8:00 PM" || s.Color != "#ffaa00" {
		t.Errorf("unexpected scalar fields: %+v", s)
	}
	if s.Service == nil || s.Service.Name != "Haircut" || s.Service.DurationMinutes != 45 {
		t.Errorf("Service = %+v, want Haircut/45", s.Service)
	}
	if s.Staff == nil || s.Staff.ID != "s1" || s.Staff.Name != "Maya" {
		t.Errorf("Staff = %+v, want s1/Maya", s.Staff)
	}
	if s.Customer == nil || s.Customer.Name != "Lee" {
		t.Errorf("Customer = %+v, want Lee", s.Customer)
	}
	if string(rec.Raw) != string(data) {
		t.Error("Raw should hold the original payload")
	}
}

func TestDecodeRecord_SlotStaffShapes(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		wantID string
	}{
		{name: "string staff", data: `{"id":"1","date":"2025-01-15","slot":"9 AM","staff":"s9"}`, wantID: "s9"},
		{name: "numeric staff", data: `{"id":"1","date":"2025-01-15","slot":"9 AM","staff":42}`, wantID: "42"},
		{name: "staff_id field", data: `{"id":"1","date":"2025-01-15","slot":"9 AM","staff_id":"s3"}`, wantID: "s3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := DecodeRecord([]byte(tt.data))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Slot.Staff == nil || rec.Slot.Staff.ID != tt.wantID {
				t.Errorf("Staff = %+v, want id %q", rec.Slot.Staff, tt.wantID)
			}
		})
	}

	rec, err := DecodeRecord([]byte(`{"id":"1","date":"2025-01-15","slot":"9 AM"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Slot.Staff != nil {
		t.Errorf("Staff = %+v, want nil when absent", rec.Slot.Staff)
	}
}

func TestDecodeRecord_Epoch(t *testing.T) {
	data := []byte(`{"id": 17, "appointmentTime": 1736935200000, "timeSlot": "10:00-10:45", "staffId": "s2", "customerName": "Ana"}`)

	rec, err := DecodeRecord(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Kind != KindEpoch || rec.Epoch == nil || rec.Slot != nil {
		t.Fatalf("Kind = %v, want epoch record only", rec.Kind)
	}

	e := rec.Epoch
	if e.ID != "17" {
		t.Errorf("ID = %q, want %q", e.ID, "17")
	}
	if e.AppointmentTime != 1736935200000 {
		t.Errorf("AppointmentTime = %d, want %d", e.AppointmentTime, int64(1736935200000))
	}
	if e.TimeSlot != "10:00-10:45" || e.StaffID != "s2" || e.CustomerName != "Ana" {
		t.Errorf("unexpected fields: %+v", e)
	}
}

func TestDecodeRecord_FallbackIDIsStable(t *testing.T) {
	data := []byte(`{"date":"2025-01-15","slot":"9 AM"}`)

	first, err := DecodeRecord(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := DecodeRecord(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID() == "" {
		t.Fatal("expected a generated id")
	}
	if first.ID() != second.ID() {
		t.Errorf("generated ids differ: %q vs %q", first.ID(), second.ID())
	}

	other, _ := DecodeRecord([]byte(`{"date":"2025-01-15","slot":"10 AM"}`))
	if other.ID() == first.ID() {
		t.Error("different payloads should get different ids")
	}
}

func TestDecodeRecord_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "invalid json", data: `{"slot":`, wantErr: ErrInvalidJSON},
		{name: "array", data: `[1,2]`, wantErr: ErrUnknownRecordShape},
		{name: "no time fields", data: `{"id":"x","date":"2025-01-15"}`, wantErr: ErrUnknownRecordShape},
		{name: "timeSlot without timestamp", data: `{"id":"x","timeSlot":"10:00-11:00"}`, wantErr: ErrUnknownRecordShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecord([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodeRecord(%s) error = %v, want %v", tt.data, err, tt.wantErr)
			}
		})
	}
}

func TestDecodeRecords(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)

	data := []byte(`[
		{"id":"a","date":"2025-01-15","slot":"9 AM"},
		{"id":"b"},
		{"id":"c","appointmentTime":1736935200000,"timeSlot":"10:00-11:00"}
	]`)

	records, err := DecodeRecords(data, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].ID() != "a" || records[1].ID() != "c" {
		t.Errorf("ids = %q, %q, want a, c", records[0].ID(), records[1].ID())
	}

	skipped := logs.FilterMessage("skipping undecodable appointment record").All()
	if len(skipped) != 1 {
		t.Fatalf("logged skips = %d, want 1", len(skipped))
	}
	if got := skipped[0].ContextMap()["index"]; got != int64(1) {
		t.Errorf("skip index = %v, want 1", got)
	}
}

func TestDecodeRecords_Envelope(t *testing.T) {
	records, err := DecodeRecords([]byte(`{"data":[{"id":"a","date":"2025-01-15","slot":"9 AM"}]}`), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("len(records) = %d, want 1", len(records))
	}
}

func TestDecodeRecords_Errors(t *testing.T) {
	if _, err := DecodeRecords([]byte(`nope`), nil); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("invalid payload error = %v, want %v", err, ErrInvalidJSON)
	}
	if _, err := DecodeRecords([]byte(`{"id":"a"}`), nil); !errors.Is(err, ErrNotArray) {
		t.Errorf("object payload error = %v, want %v", err, ErrNotArray)
	}

	records, err := DecodeRecords([]byte(`[]`), nil)
	if err != nil {
		t.Fatalf("empty array unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}
