package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

// Possible transaction type values
const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// RecurringFrequency describes how often a recurring transaction repeats.
type RecurringFrequency string

// Possible recurring frequency values
const (
	RecurringDaily   RecurringFrequency = "daily"
	RecurringWeekly  RecurringFrequency = "weekly"
	RecurringMonthly RecurringFrequency = "monthly"
	RecurringYearly  RecurringFrequency = "yearly"
)

// Transaction-specific validation errors
var (
	ErrTransactionIDEmpty          = errors.New("transaction ID cannot be empty")
	ErrTransactionTypeInvalid      = errors.New("invalid transaction type")
	ErrTransactionCategoryEmpty    = errors.New("transaction category cannot be empty")
	ErrTransactionDateZero         = errors.New("transaction date cannot be zero")
	ErrTransactionFrequencyInvalid = errors.New("invalid recurring frequency")
)

// Transaction represents a single income or expense movement. ClientID and
// ProjectID are plain references; their existence is not validated here.
type Transaction struct {
	ID                 uuid.UUID          `json:"id"`
	Type               TransactionType    `json:"type"`
	Category           string             `json:"category"`
	Amount             Amount             `json:"amount"`
	Currency           Currency           `json:"currency"`
	Date               time.Time          `json:"date"`
	Description        string             `json:"description"`
	ClientID           *uuid.UUID         `json:"client_id,omitempty"`
	ProjectID          *uuid.UUID         `json:"project_id,omitempty"`
	IsRecurring        bool               `json:"is_recurring"`
	RecurringFrequency RecurringFrequency `json:"recurring_frequency,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	DeletedAt          *time.Time         `json:"deleted_at,omitempty"`
}

// NewTransaction creates a new Transaction with a fresh UUID and UTC timestamps.
// Returns an error if validation fails.
func NewTransaction(
	txType TransactionType,
	category string,
	amount Amount,
	currency Currency,
	date time.Time,
	description string,
) (*Transaction, error) {
	now := time.Now().UTC()
	tx := &Transaction{
		ID:          uuid.New(),
		Type:        txType,
		Category:    category,
		Amount:      amount,
		Currency:    currency,
		Date:        date,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	return tx, nil
}

// Validate checks if the Transaction has valid data.
// Returns an error if any field fails validation.
func (t *Transaction) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTransactionIDEmpty
	}

	if !isValidTransactionType(t.Type) {
		return ErrTransactionTypeInvalid
	}

	if t.Category == "" {
		return ErrTransactionCategoryEmpty
	}

	if !isValidCurrency(t.Currency) {
		return ErrInvalidCurrency
	}

	if t.Date.IsZero() {
		return ErrTransactionDateZero
	}

	if t.IsRecurring && !isValidRecurringFrequency(t.RecurringFrequency) {
		return ErrTransactionFrequencyInvalid
	}

	return nil
}

// LinkClient attaches a client reference and bumps the updated timestamp.
func (t *Transaction) LinkClient(clientID uuid.UUID) {
	t.ClientID = &clientID
	t.UpdatedAt = time.Now().UTC()
}

// LinkProject attaches a project reference and bumps the updated timestamp.
func (t *Transaction) LinkProject(projectID uuid.UUID) {
	t.ProjectID = &projectID
	t.UpdatedAt = time.Now().UTC()
}

// SetRecurring marks the transaction recurring with the given frequency.
// Returns an error if the frequency is not in the allowed set.
func (t *Transaction) SetRecurring(freq RecurringFrequency) error {
	if !isValidRecurringFrequency(freq) {
		return ErrTransactionFrequencyInvalid
	}

	t.IsRecurring = true
	t.RecurringFrequency = freq
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// SoftDelete marks the transaction deleted without touching its references.
// Client and project links stay readable on the soft-deleted row.
func (t *Transaction) SoftDelete() {
	now := time.Now().UTC()
	t.DeletedAt = &now
	t.UpdatedAt = now
}

// IsDeleted reports whether the transaction has been soft-deleted.
func (t *Transaction) IsDeleted() bool {
	return t.DeletedAt != nil
}

// isValidTransactionType checks if the given type is a valid TransactionType.
func isValidTransactionType(tt TransactionType) bool {
	switch tt {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}

// isValidRecurringFrequency checks if the given frequency is a valid RecurringFrequency.
func isValidRecurringFrequency(f RecurringFrequency) bool {
	switch f {
	case RecurringDaily, RecurringWeekly, RecurringMonthly, RecurringYearly:
		return true
	default:
		return false
	}
}
