// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data:
// filter query parameters and JSON bodies for expenses and settings.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"expensetracker/internal/aggregate"
	"expensetracker/internal/core"
)

const maxBodyBytes = 1 << 20

var (
	// ErrMalformedBody is returned for bodies that are not a single JSON object.
	ErrMalformedBody = errors.New("malformed request body")
	// ErrEmptyPatch is returned when an update names no fields.
	ErrEmptyPatch = errors.New("no fields to update")
)

// ParseFilter reads the optional start, end and category query parameters.
// Blank parameters do not constrain.
func ParseFilter(query url.Values) (aggregate.Filter, error) {
	var f aggregate.Filter

	if v := strings.TrimSpace(query.Get("start")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return aggregate.Filter{}, &core.ValidationError{Field: "start", Err: err}
		}
		f.Start = &d
	}
	if v := strings.TrimSpace(query.Get("end")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return aggregate.Filter{}, &core.ValidationError{Field: "end", Err: err}
		}
		f.End = &d
	}
	if v := strings.TrimSpace(query.Get("category")); v != "" {
		c, err := core.ParseCategory(v)
		if err != nil {
			return aggregate.Filter{}, &core.ValidationError{Field: "category", Err: err}
		}
		f.Category = &c
	}

	return f, nil
}

// decodeJSON reads exactly one JSON object into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", ErrMalformedBody)
	}
	return nil
}

// expenseRequest is the body of create and update calls. Amount is kept raw
// so a bad value is reported against its field.
type expenseRequest struct {
	Amount      json.RawMessage `json:"amount"`
	Category    *string         `json:"category"`
	Description *string         `json:"description"`
	Date        *string         `json:"date"`
}

func (req expenseRequest) amount() (*core.Money, error) {
	if len(req.Amount) == 0 || string(req.Amount) == "null" {
		return nil, nil
	}
	var m core.Money
	if err := m.UnmarshalJSON(req.Amount); err != nil {
		return nil, &core.ValidationError{Field: "amount", Err: core.ErrInvalidAmount}
	}
	return &m, nil
}

func (req expenseRequest) category() (*core.Category, error) {
	if req.Category == nil {
		return nil, nil
	}
	c, err := core.ParseCategory(*req.Category)
	if err != nil {
		return nil, &core.ValidationError{Field: "category", Err: err}
	}
	return &c, nil
}

func (req expenseRequest) date() (*core.Date, error) {
	if req.Date == nil || strings.TrimSpace(*req.Date) == "" {
		return nil, nil
	}
	d, err := core.ParseDate(*req.Date)
	if err != nil {
		return nil, &core.ValidationError{Field: "date", Err: err}
	}
	return &d, nil
}

// toInput builds a new expense. A missing date defaults to today.
func (req expenseRequest) toInput(today core.Date) (core.ExpenseInput, error) {
	amount, err := req.amount()
	if err != nil {
		return core.ExpenseInput{}, err
	}
	if amount == nil {
		return core.ExpenseInput{}, &core.ValidationError{Field: "amount", Err: core.ErrInvalidAmount}
	}

	category, err := req.category()
	if err != nil {
		return core.ExpenseInput{}, err
	}
	if category == nil {
		return core.ExpenseInput{}, &core.ValidationError{Field: "category", Err: core.ErrInvalidCategory}
	}

	date, err := req.date()
	if err != nil {
		return core.ExpenseInput{}, err
	}
	if date == nil {
		date = &today
	}

	var desc string
	if req.Description != nil {
		desc = sanitizeInput(*req.Description)
	}

	in := core.ExpenseInput{
		Amount:      *amount,
		Category:    *category,
		Description: desc,
		Date:        *date,
	}
	return in, in.Validate()
}

// toPatch builds a partial update from the fields present in the body.
func (req expenseRequest) toPatch() (core.ExpensePatch, error) {
	var (
		p   core.ExpensePatch
		err error
	)
	if p.Amount, err = req.amount(); err != nil {
		return core.ExpensePatch{}, err
	}
	if p.Category, err = req.category(); err != nil {
		return core.ExpensePatch{}, err
	}
	if p.Date, err = req.date(); err != nil {
		return core.ExpensePatch{}, err
	}
	if req.Description != nil {
		desc := sanitizeInput(*req.Description)
		p.Description = &desc
	}
	if p.IsEmpty() {
		return core.ExpensePatch{}, ErrEmptyPatch
	}
	return p, nil
}

type settingsRequest struct {
	Currency      *string         `json:"currency"`
	MonthlyBudget json.RawMessage `json:"monthlyBudget"`
	DarkMode      *bool           `json:"darkMode"`
}

func (req settingsRequest) toPatch() (core.SettingsPatch, error) {
	p := core.SettingsPatch{
		Currency: req.Currency,
		DarkMode: req.DarkMode,
	}
	if len(req.MonthlyBudget) > 0 && string(req.MonthlyBudget) != "null" {
		var m core.Money
		if err := m.UnmarshalJSON(req.MonthlyBudget); err != nil {
			return core.SettingsPatch{}, &core.ValidationError{Field: "monthlyBudget", Err: core.ErrInvalidAmount}
		}
		p.MonthlyBudget = &m
	}
	if p.IsEmpty() {
		return core.SettingsPatch{}, ErrEmptyPatch
	}
	return p, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
