package core

import (
	"cmp"
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// DateLayout is the ISO 8601 calendar date layout used on every boundary.
	DateLayout = "2006-01-02"

	maxDescriptionLen = 200
)

type (
	Date struct {
		time.Time
	}

	Expense struct {
		ID          string   `json:"id"`
		Amount      Money    `json:"amount"`
		Category    Category `json:"category"`
		Description string   `json:"description"`
		Date        Date     `json:"date"`
	}

	// ExpenseInput is an expense that has not been assigned an ID yet.
	ExpenseInput struct {
		Amount      Money    `json:"amount"`
		Category    Category `json:"category"`
		Description string   `json:"description"`
		Date        Date     `json:"date"`
	}

	// ExpensePatch carries the fields to change on an existing expense.
	// Nil fields are left untouched.
	ExpensePatch struct {
		Amount      *Money    `json:"amount,omitempty"`
		Category    *Category `json:"category,omitempty"`
		Description *string   `json:"description,omitempty"`
		Date        *Date     `json:"date,omitempty"`
	}
)

var (
	ErrNotFound           = errors.New("expense not found")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidCurrency    = errors.New("invalid currency")
	ErrNegativeBudget     = errors.New("budget must be non-negative")
	ErrDuplicateID        = errors.New("duplicate expense id")
)

// ValidationError reports which field of a record was rejected.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a date string in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Compare orders two dates at day granularity. Any time of day is ignored.
func (d Date) Compare(o Date) int {
	y1, m1, d1 := d.Time.Date()
	y2, m2, d2 := o.Time.Date()
	if c := cmp.Compare(y1, y2); c != 0 {
		return c
	}
	if c := cmp.Compare(m1, m2); c != 0 {
		return c
	}
	return cmp.Compare(d1, d2)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON shadows the RFC 3339 encoding promoted from time.Time.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ErrInvalidDate
	}
	return d.UnmarshalText([]byte(s[1 : len(s)-1]))
}

func validateDescription(desc string) error {
	if len(strings.TrimSpace(desc)) == 0 {
		return ErrEmptyDescription
	}
	if utf8.RuneCountInString(desc) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}

func (in ExpenseInput) Validate() error {
	if err := in.Amount.Validate(); err != nil {
		return invalid("amount", err)
	}
	if !in.Category.IsValid() {
		return invalid("category", ErrInvalidCategory)
	}
	if err := validateDescription(in.Description); err != nil {
		return invalid("description", err)
	}
	if err := in.Date.Validate(); err != nil {
		return invalid("date", err)
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return invalid("id", errors.New("empty id"))
	}
	return e.Input().Validate()
}

// Input strips the identity from e.
func (e Expense) Input() ExpenseInput {
	return ExpenseInput{
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date,
	}
}

// WithID attaches an identity to the input.
func (in ExpenseInput) WithID(id string) Expense {
	return Expense{
		ID:          id,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
	}
}

// Apply returns e with the patch merged in. The ID never changes.
func (p ExpensePatch) Apply(e Expense) Expense {
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	return e
}

// IsEmpty reports whether the patch changes nothing.
func (p ExpensePatch) IsEmpty() bool {
	return p.Amount == nil && p.Category == nil && p.Description == nil && p.Date == nil
}
