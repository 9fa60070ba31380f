// Package model defines the core domain types shared across the application.
package model

import (
	"errors"
	"math"
	"strings"
	"time"
)

// DateLayout is the calendar-date format every transaction date is stored in.
// There is no time-of-day or timezone component.
const DateLayout = "2006-01-02"

// DefaultCategory is assigned when the caller leaves the category blank.
const DefaultCategory = "General"

// TransactionType indicates whether a transaction is money in or money out.
type TransactionType string

const (
	// TypeIncome represents money coming in.
	TypeIncome TransactionType = "income"
	// TypeExpense represents money going out.
	TypeExpense TransactionType = "expense"
)

// Validation errors returned by Transaction.Validate.
var (
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidType      = errors.New("invalid transaction type")
)

// Transaction represents one recorded income or expense event.
//
// The JSON field names are a compatibility contract with the persisted blob
// format; changing them would orphan existing ledgers. Amount is always a
// non-negative magnitude: the sign shown to users is derived from Type.
type Transaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
}

// Validate checks that every field holds a value the ledger can accept.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) || t.Amount < 0 {
		return ErrInvalidAmount
	}
	if _, err := ParseDate(t.Date); err != nil {
		return ErrInvalidDate
	}
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return ErrInvalidType
	}
	return nil
}

// SignedAmount returns the amount with the sign implied by the transaction
// type: positive for income, negative for expense. Display concern only; the
// stored magnitude never carries a sign.
func (t Transaction) SignedAmount() float64 {
	if t.Type == TypeExpense {
		return -t.Amount
	}
	return t.Amount
}

// ParseDate parses a stored YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
