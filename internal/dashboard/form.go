package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

var (
	// ErrFormBusy is returned while a submit is in flight
	ErrFormBusy = errors.New("form is already submitting")
	// ErrFormNotLoaded is returned when an edit form is submitted before its record loaded
	ErrFormNotLoaded = errors.New("form has no loaded record")
	// ErrUnknownField is returned by SetField for names outside the editable set
	ErrUnknownField = errors.New("unknown form field")
)

// FormStatus is the lifecycle of a form
type FormStatus int

const (
	StatusEditing FormStatus = iota
	StatusLoading
	StatusSubmitting
	StatusSuccess
)

func (s FormStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusEditing:
		return "editing"
	case StatusSubmitting:
		return "submitting"
	case StatusSuccess:
		return "success"
	default:
		return fmt.Sprintf("FormStatus(%d)", int(s))
	}
}

// MarshalText renders the status by name in JSON
func (s FormStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name
func (s *FormStatus) UnmarshalText(text []byte) error {
	for _, status := range []FormStatus{StatusEditing, StatusLoading, StatusSubmitting, StatusSuccess} {
		if status.String() == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown form status %q", text)
}

// FormState is a snapshot of a form
type FormState struct {
	ID     string             `json:"id,omitempty"`
	Status FormStatus         `json:"status"`
	Fields models.StockFields `json:"fields"`
	Error  string             `json:"error,omitempty"`
}

// form is the field editing and submit bookkeeping shared by both forms
type form struct {
	mu     sync.Mutex
	status FormStatus
	fields models.StockFields
	errMsg string
}

func (f *form) setField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == StatusSubmitting {
		return ErrFormBusy
	}
	if !f.fields.Set(name, value) {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if f.status == StatusSuccess {
		f.status = StatusEditing
	}
	return nil
}

func (f *form) setFields(fields models.StockFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == StatusSubmitting {
		return ErrFormBusy
	}
	f.fields = fields
	if f.status == StatusSuccess {
		f.status = StatusEditing
	}
	return nil
}

// begin moves to Submitting and returns the fields to send
func (f *form) begin() (models.StockFields, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == StatusSubmitting {
		return models.StockFields{}, ErrFormBusy
	}
	f.status = StatusSubmitting
	f.errMsg = ""
	return f.fields, nil
}

// fail returns to Editing with the fields intact
func (f *form) fail(err error) {
	f.mu.Lock()
	f.status = StatusEditing
	f.errMsg = err.Error()
	f.mu.Unlock()
}

// CreateForm collects the fields of a new record
type CreateForm struct {
	form
	collection Collection
	publisher  Publisher
	navigate   Navigator
}

// NewCreateForm creates an empty CreateForm. navigate may be nil.
func NewCreateForm(collection Collection, navigate Navigator, opts ...Option) *CreateForm {
	o := buildOptions(opts)
	return &CreateForm{
		collection: collection,
		publisher:  o.publisher,
		navigate:   navigate,
	}
}

// SetField sets one field by its JSON name
func (f *CreateForm) SetField(name, value string) error { return f.setField(name, value) }

// SetFields replaces all fields
func (f *CreateForm) SetFields(fields models.StockFields) error { return f.setFields(fields) }

// State returns a snapshot of the form
func (f *CreateForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FormState{Status: f.status, Fields: f.fields, Error: f.errMsg}
}

// Submit creates the record. On success the fields are cleared and the
// navigator runs; on failure the fields are kept and the error is recorded.
func (f *CreateForm) Submit(ctx context.Context) (models.StockRecord, error) {
	fields, err := f.begin()
	if err != nil {
		return models.StockRecord{}, err
	}

	record, err := f.collection.Create(ctx, fields)
	if err != nil {
		err = fmt.Errorf("failed to create stock record: %w", err)
		f.fail(err)
		log.Error().Err(err).Str("trade_code", fields.TradeCode).Msg("Create form submit failed")
		return models.StockRecord{}, err
	}

	f.mu.Lock()
	f.fields = models.StockFields{}
	f.status = StatusSuccess
	f.mu.Unlock()

	log.Info().Str("id", record.ID).Str("trade_code", record.TradeCode).Msg("Stock record created")

	if f.publisher != nil {
		if err := f.publisher.PublishRecordCreated(ctx, record); err != nil {
			log.Warn().Err(err).Str("id", record.ID).Msg("Failed to publish record created event")
		}
	}
	if f.navigate != nil {
		f.navigate(ctx)
	}
	return record, nil
}

// EditForm edits the fields of an existing record
type EditForm struct {
	form
	collection Collection
	publisher  Publisher
	navigate   Navigator

	id     string
	record *models.StockRecord
}

// NewEditForm creates an EditForm. Call Load before Submit. navigate may be nil.
func NewEditForm(collection Collection, navigate Navigator, opts ...Option) *EditForm {
	o := buildOptions(opts)
	return &EditForm{
		form:       form{status: StatusLoading},
		collection: collection,
		publisher:  o.publisher,
		navigate:   navigate,
	}
}

// Load fetches record id and fills the editable fields from it
func (f *EditForm) Load(ctx context.Context, id string) error {
	f.mu.Lock()
	if f.status == StatusSubmitting {
		f.mu.Unlock()
		return ErrFormBusy
	}
	f.id = id
	f.record = nil
	f.status = StatusLoading
	f.errMsg = ""
	f.mu.Unlock()

	record, err := f.collection.GetByID(ctx, id)
	if err != nil {
		err = fmt.Errorf("failed to load stock record %s: %w", id, err)
		f.mu.Lock()
		f.errMsg = err.Error()
		f.mu.Unlock()
		log.Error().Err(err).Str("id", id).Msg("Edit form load failed")
		return err
	}

	f.mu.Lock()
	f.record = &record
	f.fields = record.Fields()
	f.status = StatusEditing
	f.mu.Unlock()
	return nil
}

// SetField sets one field by its JSON name
func (f *EditForm) SetField(name, value string) error { return f.setField(name, value) }

// SetFields replaces all fields
func (f *EditForm) SetFields(fields models.StockFields) error { return f.setFields(fields) }

// State returns a snapshot of the form
func (f *EditForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FormState{ID: f.id, Status: f.status, Fields: f.fields, Error: f.errMsg}
}

// beginEdit checks that a record is loaded and moves to Submitting in one
// step, returning the id, record and fields to send
func (f *EditForm) beginEdit() (string, models.StockRecord, models.StockFields, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == StatusSubmitting {
		return "", models.StockRecord{}, models.StockFields{}, ErrFormBusy
	}
	if f.record == nil {
		return "", models.StockRecord{}, models.StockFields{}, ErrFormNotLoaded
	}
	f.status = StatusSubmitting
	f.errMsg = ""
	return f.id, *f.record, f.fields, nil
}

// Submit sends the full field set as an update of the loaded record
func (f *EditForm) Submit(ctx context.Context) error {
	id, record, fields, err := f.beginEdit()
	if err != nil {
		return err
	}

	if err := f.collection.Update(ctx, id, fields); err != nil {
		err = fmt.Errorf("failed to update stock record %s: %w", id, err)
		f.fail(err)
		log.Error().Err(err).Str("id", id).Msg("Edit form submit failed")
		return err
	}

	updated := record.WithFields(fields)
	f.mu.Lock()
	f.record = &updated
	f.status = StatusSuccess
	f.mu.Unlock()

	log.Info().Str("id", id).Msg("Stock record updated")

	if f.publisher != nil {
		if err := f.publisher.PublishRecordUpdated(ctx, updated); err != nil {
			log.Warn().Err(err).Str("id", id).Msg("Failed to publish record updated event")
		}
	}
	if f.navigate != nil {
		f.navigate(ctx)
	}
	return nil
}
