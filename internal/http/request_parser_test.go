package http

import (
	"errors"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"expensetracker/internal/core"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name      string
		query     url.Values
		wantStart string
		wantEnd   string
		wantCat   string
		wantField string
	}{
		{
			name:  "empty query matches everything",
			query: url.Values{},
		},
		{
			name:      "all values provided",
			query:     url.Values{"start": {"2024-01-01"}, "end": {"2024-01-31"}, "category": {"bills"}},
			wantStart: "2024-01-01",
			wantEnd:   "2024-01-31",
			wantCat:   "Bills",
		},
		{
			name:  "blank values are ignored",
			query: url.Values{"start": {"  "}, "category": {""}},
		},
		{
			name:      "invalid start",
			query:     url.Values{"start": {"2024-13-01"}},
			wantField: "start",
		},
		{
			name:      "invalid end",
			query:     url.Values{"end": {"tomorrow"}},
			wantField: "end",
		},
		{
			name:      "unknown category",
			query:     url.Values{"category": {"Travel"}},
			wantField: "category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFilter(tt.query)
			if tt.wantField != "" {
				var verr *core.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected validation error, got %v", err)
				}
				if verr.Field != tt.wantField {
					t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := dateOrEmpty(f.Start); got != tt.wantStart {
				t.Errorf("Start = %q, want %q", got, tt.wantStart)
			}
			if got := dateOrEmpty(f.End); got != tt.wantEnd {
				t.Errorf("End = %q, want %q", got, tt.wantEnd)
			}
			var cat string
			if f.Category != nil {
				cat = f.Category.String()
			}
			if cat != tt.wantCat {
				t.Errorf("Category = %q, want %q", cat, tt.wantCat)
			}
		})
	}
}

func dateOrEmpty(d *core.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid object", `{"amount":1}`, false},
		{"empty body", ``, true},
		{"truncated", `{"amount":`, true},
		{"unknown field", `{"price":1}`, true},
		{"trailing object", `{"amount":1}{"amount":2}`, true},
		{"wrong type", `{"description":5}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			var v expenseRequest
			err := decodeJSON(req, &v)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedBody) {
					t.Errorf("expected ErrMalformedBody, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func strPtr(s string) *string { return &s }

func TestExpenseRequestToInput(t *testing.T) {
	today := core.NewDate(2024, 6, 1)

	req := expenseRequest{
		Amount:      []byte(`"19.99"`),
		Category:    strPtr(" health "),
		Description: strPtr("  Vitamins\x00 "),
	}
	in, err := req.toInput(today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Amount.Cents != 1999 {
		t.Errorf("Amount = %d cents, want 1999", in.Amount.Cents)
	}
	if in.Category != core.Health {
		t.Errorf("Category = %v, want Health", in.Category)
	}
	if in.Description != "Vitamins" {
		t.Errorf("Description = %q, want Vitamins", in.Description)
	}
	if in.Date != today {
		t.Errorf("Date = %s, want %s", in.Date, today)
	}

	req.Date = strPtr("2024-05-20")
	in, err = req.toInput(today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Date != core.NewDate(2024, 5, 20) {
		t.Errorf("Date = %s, want 2024-05-20", in.Date)
	}
}

func TestExpenseRequestToInputRejects(t *testing.T) {
	today := core.NewDate(2024, 6, 1)
	tests := []struct {
		name  string
		req   expenseRequest
		field string
	}{
		{"missing amount", expenseRequest{Category: strPtr("Food"), Description: strPtr("x")}, "amount"},
		{"null amount", expenseRequest{Amount: []byte("null"), Category: strPtr("Food"), Description: strPtr("x")}, "amount"},
		{"negative amount", expenseRequest{Amount: []byte("-1"), Category: strPtr("Food"), Description: strPtr("x")}, "amount"},
		{"missing category", expenseRequest{Amount: []byte("1"), Description: strPtr("x")}, "category"},
		{"missing description", expenseRequest{Amount: []byte("1"), Category: strPtr("Food")}, "description"},
		{"bad date", expenseRequest{Amount: []byte("1"), Category: strPtr("Food"), Description: strPtr("x"), Date: strPtr("2024-02-30")}, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.toInput(today)
			var verr *core.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestExpenseRequestToPatch(t *testing.T) {
	if _, err := (expenseRequest{}).toPatch(); !errors.Is(err, ErrEmptyPatch) {
		t.Fatalf("expected ErrEmptyPatch, got %v", err)
	}

	p, err := expenseRequest{Category: strPtr("Education")}.toPatch()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Category == nil || *p.Category != core.Education {
		t.Errorf("Category not set: %+v", p)
	}
	if p.Amount != nil || p.Description != nil || p.Date != nil {
		t.Errorf("absent fields must stay nil: %+v", p)
	}

	if _, err := (expenseRequest{Amount: []byte(`"ten"`)}).toPatch(); err == nil {
		t.Error("expected error for bad amount")
	}
}

func TestSettingsRequestToPatch(t *testing.T) {
	dark := true
	p, err := settingsRequest{MonthlyBudget: []byte(`"1500.25"`), DarkMode: &dark}.toPatch()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.MonthlyBudget == nil || p.MonthlyBudget.Cents != 150025 {
		t.Errorf("MonthlyBudget = %+v", p.MonthlyBudget)
	}
	if p.Currency != nil {
		t.Errorf("Currency should be nil")
	}

	_, err = settingsRequest{MonthlyBudget: []byte(`true`)}.toPatch()
	var verr *core.ValidationError
	if !errors.As(err, &verr) || verr.Field != "monthlyBudget" {
		t.Errorf("expected monthlyBudget validation error, got %v", err)
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  hello  ", "hello"},
		{"tab\there", "tab\there"},
		{"bell\x07", "bell"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
