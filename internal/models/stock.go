package models

import "time"

// Record event types published when the remote collection is mutated
const (
	EventRecordCreated = "RECORD_CREATED"
	EventRecordUpdated = "RECORD_UPDATED"
	EventRecordDeleted = "RECORD_DELETED"
)

// StockEvent represents a Kafka event for stock record changes
type StockEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Source    string       `json:"source"`
	RecordID  string       `json:"record_id"`
	Record    *StockRecord `json:"record,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// StockRecord is one daily price row held by the remote API.
// Every value is kept as text exactly as the API returns it.
type StockRecord struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	TradeCode string `json:"trade_code"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Open      string `json:"open"`
	Close     string `json:"close"`
	Volume    string `json:"volume"`
}

// StockFields are the editable fields of a record sent on create and update
type StockFields struct {
	TradeCode string `json:"trade_code"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Open      string `json:"open"`
	Close     string `json:"close"`
	Volume    string `json:"volume"`
}

// Fields returns the editable subset of the record
func (r StockRecord) Fields() StockFields {
	return StockFields{
		TradeCode: r.TradeCode,
		High:      r.High,
		Low:       r.Low,
		Open:      r.Open,
		Close:     r.Close,
		Volume:    r.Volume,
	}
}

// WithFields returns a copy of the record with its editable fields replaced.
// ID and Date are left untouched.
func (r StockRecord) WithFields(f StockFields) StockRecord {
	r.TradeCode = f.TradeCode
	r.High = f.High
	r.Low = f.Low
	r.Open = f.Open
	r.Close = f.Close
	r.Volume = f.Volume
	return r
}

// Set assigns a field by its JSON name. It reports false for unknown names.
func (f *StockFields) Set(name, value string) bool {
	switch name {
	case "trade_code":
		f.TradeCode = value
	case "high":
		f.High = value
	case "low":
		f.Low = value
	case "open":
		f.Open = value
	case "close":
		f.Close = value
	case "volume":
		f.Volume = value
	default:
		return false
	}
	return true
}

// IsEmpty reports whether every field is blank
func (f StockFields) IsEmpty() bool {
	return f == StockFields{}
}
