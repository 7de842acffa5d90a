package activity

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the layout of Record.Date.
const DateLayout = "2006-01-02"

// Value bounds for the numeric fields.
const (
	MinHeat         = 1
	MaxHeat         = 100
	MinParticipants = 10
	MaxParticipants = 1000
)

// Columns lists the attribute names in data-model order.
// It is the header of every tabular export and the key set of the JSON export.
var Columns = []string{"id", "name", "type", "date", "location", "organizer", "heat", "participants"}

// Record is one synthetic campus activity.
type Record struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Type         Type      `json:"type"`
	Date         string    `json:"date"` // YYYY-MM-DD
	Location     Location  `json:"location"`
	Organizer    Organizer `json:"organizer"`
	Heat         int       `json:"heat"`
	Participants int       `json:"participants"`
}

// Values returns the record as a row of strings in Columns order.
func (r Record) Values() []string {
	return []string{
		strconv.Itoa(r.ID),
		r.Name,
		string(r.Type),
		r.Date,
		string(r.Location),
		string(r.Organizer),
		strconv.Itoa(r.Heat),
		strconv.Itoa(r.Participants),
	}
}

// Validate checks every field constraint that does not depend on the
// generation time. The date window is checked by the generator's tests.
func (r Record) Validate() error {
	if r.ID < 1 {
		return &FieldError{Field: "id", Message: fmt.Sprintf("must be positive, got %d", r.ID)}
	}
	if r.Name == "" {
		return &FieldError{Field: "name", Message: "must not be empty"}
	}
	if !r.Type.valid() {
		return &FieldError{Field: "type", Message: fmt.Sprintf("unknown value %q", r.Type)}
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return &FieldError{Field: "date", Message: fmt.Sprintf("not a %s date: %q", DateLayout, r.Date)}
	}
	if !r.Location.valid() {
		return &FieldError{Field: "location", Message: fmt.Sprintf("unknown value %q", r.Location)}
	}
	if !r.Organizer.valid() {
		return &FieldError{Field: "organizer", Message: fmt.Sprintf("unknown value %q", r.Organizer)}
	}
	if r.Heat < MinHeat || r.Heat > MaxHeat {
		return &FieldError{Field: "heat", Message: fmt.Sprintf("%d outside [%d,%d]", r.Heat, MinHeat, MaxHeat)}
	}
	if r.Participants < MinParticipants || r.Participants > MaxParticipants {
		return &FieldError{Field: "participants", Message: fmt.Sprintf("%d outside [%d,%d]", r.Participants, MinParticipants, MaxParticipants)}
	}
	return nil
}

// FieldError reports a record field that violates its constraint.
type FieldError struct {
	ID      int // record id, 0 when unknown
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	if e.ID > 0 {
		return fmt.Sprintf("record %d: %s: %s", e.ID, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FromValues builds a record from a row in Columns order, as read back from a
// tabular export. Categories are parsed against their closed sets.
func FromValues(row []string) (Record, error) {
	if len(row) != len(Columns) {
		return Record{}, fmt.Errorf("row has %d fields, want %d", len(row), len(Columns))
	}

	var (
		r   Record
		err error
	)
	if r.ID, err = atoi("id", row[0]); err != nil {
		return Record{}, err
	}
	r.Name = row[1]
	if r.Type, err = ParseType(row[2]); err != nil {
		return Record{}, err
	}
	r.Date = row[3]
	if r.Location, err = ParseLocation(row[4]); err != nil {
		return Record{}, err
	}
	if r.Organizer, err = ParseOrganizer(row[5]); err != nil {
		return Record{}, err
	}
	if r.Heat, err = atoi("heat", row[6]); err != nil {
		return Record{}, err
	}
	if r.Participants, err = atoi("participants", row[7]); err != nil {
		return Record{}, err
	}
	return r, nil
}

func atoi(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &FieldError{Field: field, Message: fmt.Sprintf("not an integer: %q", s)}
	}
	return n, nil
}
