package appointment

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// DecodeRecord decodes one raw appointment object. The variant is chosen by
// which fields are present: "slot" selects KindSlot, "appointmentTime"
// selects KindEpoch.
func DecodeRecord(data []byte) (Record, error) {
	if !gjson.ValidBytes(data) {
		return Record{}, ErrInvalidJSON
	}
	obj := gjson.ParseBytes(data)
	if !obj.IsObject() {
		return Record{}, ErrUnknownRecordShape
	}

	raw := json.RawMessage(append([]byte(nil), data...))
	id := obj.Get("id").String()
	if id == "" {
		id = fallbackID(raw)
	}

	switch {
	case obj.Get("slot").Exists():
		return Record{Kind: KindSlot, Slot: decodeSlot(obj, id), Raw: raw}, nil
	case obj.Get("appointmentTime").Exists():
		return Record{Kind: KindEpoch, Epoch: decodeEpoch(obj, id), Raw: raw}, nil
	default:
		return Record{}, ErrUnknownRecordShape
	}
}

func decodeSlot(obj gjson.Result, id string) *SlotRecord {
	r := &SlotRecord{
		ID:    id,
		Date:  obj.Get("date").String(),
		Slot:  obj.Get("slot").String(),
		Color: obj.Get("color").String(),
	}

	if svc := obj.Get("service"); svc.IsObject() {
		r.Service = &Service{
			Name:            svc.Get("name").String(),
			DurationMinutes: int(svc.Get("duration_minutes").Int()),
		}
	}

	staff := obj.Get("staff")
	switch {
	case staff.IsObject():
		r.Staff = &Staff{ID: staff.Get("id").String(), Name: staff.Get("name").String()}
	case staff.Type == gjson.String || staff.Type == gjson.Number:
		r.Staff = &Staff{ID: staff.String()}
	case obj.Get("staff_id").Exists():
		r.Staff = &Staff{ID: obj.Get("staff_id").String()}
	}

	customer := obj.Get("customer")
	switch {
	case customer.IsObject():
		r.Customer = &Customer{Name: customer.Get("name").String()}
	case customer.Type == gjson.String:
		r.Customer = &Customer{Name: customer.String()}
	}

	return r
}

func decodeEpoch(obj gjson.Result, id string) *EpochRecord {
	return &EpochRecord{
		ID:              id,
		AppointmentTime: obj.Get("appointmentTime").Int(),
		TimeSlot:        obj.Get("timeSlot").String(),
		StaffID:         obj.Get("staffId").String(),
		CustomerName:    obj.Get("customerName").String(),
		Color:           obj.Get("color").String(),
	}
}

// fallbackID derives a stable id from the payload for producers that omit
// one, so repeated normalization of the same snapshot yields the same ids.
func fallbackID(raw []byte) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, raw).String()
}

// DecodeRecords decodes a JSON array of raw appointments. A {"data": [...]}
// envelope is unwrapped. Elements that cannot be decoded are logged and
// skipped; only a malformed payload as a whole is an error.
func DecodeRecords(data []byte, logger *zap.Logger) ([]Record, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}

	list := gjson.ParseBytes(data)
	if list.IsObject() && list.Get("data").IsArray() {
		list = list.Get("data")
	}
	if !list.IsArray() {
		return nil, ErrNotArray
	}

	var records []Record
	var index int
	list.ForEach(func(_, value gjson.Result) bool {
		rec, err := DecodeRecord([]byte(value.Raw))
		if err != nil {
			logger.Warn("skipping undecodable appointment record",
				zap.Int("index", index),
				zap.Error(err),
			)
		} else {
			records = append(records, rec)
		}
		index++
		return true
	})

	return records, nil
}
