package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvaldez/cadence-api/internal/domain"
	"github.com/pvaldez/cadence-api/internal/service"
	"github.com/pvaldez/cadence-api/internal/store"
)

// mockTransactionStore is a hand-written store.TransactionStore backed by a map.
type mockTransactionStore struct {
	txs map[uuid.UUID]*domain.Transaction
}

func newMockTransactionStore() *mockTransactionStore {
	return &mockTransactionStore{txs: make(map[uuid.UUID]*domain.Transaction)}
}

func (m *mockTransactionStore) Create(_ context.Context, tx *domain.Transaction) error {
	m.txs[tx.ID] = tx
	return nil
}

func (m *mockTransactionStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Transaction, error) {
	tx, ok := m.txs[id]
	if !ok || tx.DeletedAt != nil {
		return nil, store.ErrTransactionNotFound
	}
	return tx, nil
}

func (m *mockTransactionStore) List(_ context.Context) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for _, tx := range m.txs {
		if tx.DeletedAt == nil {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *mockTransactionStore) ListByProject(_ context.Context, projectID uuid.UUID) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for _, tx := range m.txs {
		if tx.ProjectID != nil && *tx.ProjectID == projectID && tx.DeletedAt == nil {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *mockTransactionStore) Update(_ context.Context, tx *domain.Transaction) error {
	if _, ok := m.txs[tx.ID]; !ok {
		return store.ErrTransactionNotFound
	}
	m.txs[tx.ID] = tx
	return nil
}

func (m *mockTransactionStore) Delete(_ context.Context, id uuid.UUID) error {
	tx, ok := m.txs[id]
	if !ok || tx.DeletedAt != nil {
		return store.ErrTransactionNotFound
	}
	tx.SoftDelete()
	return nil
}

func (m *mockTransactionStore) WithTx(_ *sql.Tx) store.TransactionStore { return m }

// mockInvoiceStore is a hand-written store.InvoiceStore backed by a map.
type mockInvoiceStore struct {
	invoices map[uuid.UUID]*domain.Invoice
}

func newMockInvoiceStore() *mockInvoiceStore {
	return &mockInvoiceStore{invoices: make(map[uuid.UUID]*domain.Invoice)}
}

func (m *mockInvoiceStore) Create(_ context.Context, invoice *domain.Invoice) error {
	for _, existing := range m.invoices {
		if existing.InvoiceNumber == invoice.InvoiceNumber {
			return store.ErrInvoiceNumberExists
		}
	}
	m.invoices[invoice.ID] = invoice
	return nil
}

func (m *mockInvoiceStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Invoice, error) {
	invoice, ok := m.invoices[id]
	if !ok {
		return nil, store.ErrInvoiceNotFound
	}
	return invoice, nil
}

func (m *mockInvoiceStore) GetByInvoiceNumber(_ context.Context, number string) (*domain.Invoice, error) {
	for _, invoice := range m.invoices {
		if invoice.InvoiceNumber == number {
			return invoice, nil
		}
	}
	return nil, store.ErrInvoiceNotFound
}

func (m *mockInvoiceStore) ListByClient(_ context.Context, clientID uuid.UUID) ([]*domain.Invoice, error) {
	var out []*domain.Invoice
	for _, invoice := range m.invoices {
		if invoice.ClientID == clientID {
			out = append(out, invoice)
		}
	}
	return out, nil
}

func (m *mockInvoiceStore) Update(_ context.Context, invoice *domain.Invoice) error {
	if _, ok := m.invoices[invoice.ID]; !ok {
		return store.ErrInvoiceNotFound
	}
	m.invoices[invoice.ID] = invoice
	return nil
}

func (m *mockInvoiceStore) WithTx(_ *sql.Tx) store.InvoiceStore { return m }

type financeFixture struct {
	svc      service.FinanceService
	mock     sqlmock.Sqlmock
	txs      *mockTransactionStore
	invoices *mockInvoiceStore
	projects *mockProjectStore
	entries  *mockTimeEntryStore
	project  *domain.Project
}

func newFinanceFixture(t *testing.T) *financeFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	txs := newMockTransactionStore()
	invoices := newMockInvoiceStore()
	projects := newMockProjectStore()
	entries := newMockTimeEntryStore()

	budget, err := domain.NewAmountFromFloat(10000)
	require.NoError(t, err)
	project, err := domain.NewProject("consulting", budget, domain.CurrencyUSD, 160)
	require.NoError(t, err)
	require.NoError(t, projects.Create(context.Background(), project))

	svc, err := service.NewFinanceService(db, txs, invoices, projects, entries, nil)
	require.NoError(t, err)

	return &financeFixture{
		svc: svc, mock: mock,
		txs: txs, invoices: invoices, projects: projects, entries: entries,
		project: project,
	}
}

func TestCreateIncomeTransaction(t *testing.T) {
	t.Parallel()

	f := newFinanceFixture(t)

	tx, err := f.svc.CreateTransaction(context.Background(), service.CreateTransactionCommand{
		Type:               "income",
		Category:           "retainer",
		Amount:             decimal.NewFromInt(3000),
		Currency:           "USD",
		Date:               time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		RecurringFrequency: "monthly",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionTypeIncome, tx.Type)
	assert.True(t, tx.IsRecurring)
	assert.Equal(t, domain.RecurringMonthly, tx.RecurringFrequency)

	// Income never runs the expense path, so no database transaction happened.
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateExpenseTransactionIncrementsSpent(t *testing.T) {
	t.Parallel()

	f := newFinanceFixture(t)
	ctx := context.Background()

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	tx, err := f.svc.CreateTransaction(ctx, service.CreateTransactionCommand{
		Type:      "expense",
		Category:  "hosting",
		Amount:    decimal.NewFromFloat(250.50),
		Currency:  "USD",
		Date:      time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		ProjectID: &f.project.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, tx.ProjectID)

	project, err := f.projects.GetByID(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, "250.50", project.Spent.StringFixed())
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateExpenseWithoutProjectSkipsSpent(t *testing.T) {
	t.Parallel()

	f := newFinanceFixture(t)

	_, err := f.svc.CreateTransaction(context.Background(), service.CreateTransactionCommand{
		Type:     "expense",
		Category: "office",
		Amount:   decimal.NewFromInt(100),
		Currency: "USD",
		Date:     time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	project, err := f.projects.GetByID(context.Background(), f.project.ID)
	require.NoError(t, err)
	assert.True(t, project.Spent.Decimal().IsZero())
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateTransactionRejections(t *testing.T) {
	t.Parallel()

	f := newFinanceFixture(t)
	ctx := context.Background()
	date := time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC)

	_, err := f.svc.CreateTransaction(ctx, service.CreateTransactionCommand{
		Type:     "income",
		Category: "retainer",
		Amount:   decimal.NewFromInt(-1),
		Currency: "USD",
		Date:     date,
	})
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)

	_, err = f.svc.CreateTransaction(ctx, service.CreateTransactionCommand{
		Type:               "income",
		Category:           "retainer",
		Amount:             decimal.NewFromInt(1),
		Currency:           "USD",
		Date:               date,
		RecurringFrequency: "hourly",
	})
	assert.ErrorIs(t, err, domain.ErrTransactionFrequencyInvalid)
}

func TestDeleteTransactionKeepsReferences(t *testing.T) {
	t.Parallel()

	f := newFinanceFixture(t)
	ctx := context.Background()

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	tx, err := f.svc.CreateTransaction(ctx, service.CreateTransactionCommand{
		Type:      "expense",
		Category:  "software",
		Amount:    decimal.NewFromInt(40),
		Currency:  "USD",
		Date:      time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
		ProjectID: &f.project.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteTransaction(ctx, tx.ID))

	listed, err := f.svc.ListProjectTransactions(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	// The soft-deleted row still holds its project reference.
	raw := f.txs.txs[tx.ID]
	require.NotNil(t, raw.DeletedAt)
	require.NotNil(t, raw.ProjectID)
	assert.Equal(t, f.project.ID, *raw.ProjectID)

	err = f.svc.DeleteTransaction(ctx, tx.ID)
	assert.ErrorIs(t, err, store.ErrTransactionNotFound)
}

func newInvoiceCommand(number string) service.CreateInvoiceCommand {
	issue := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	return service.CreateInvoiceCommand{
		InvoiceNumber: number,
		ClientID:      uuid.New(),
		Amount:        decimal.NewFromInt(1000),
		Tax:           decimal.NewFromInt(160),
		IssueDate:     issue,
		DueDate:       issue.AddDate(0, 1, 0),
	}
}

func TestCreateInvoice(t *testing.T) {
	t.Parallel()

	f := newFinanceFixture(t)
	ctx := context.Background()

	cmd := newInvoiceCommand("INV-2026-001")
	cmd.Items = []service.InvoiceItemInput{
		{Description: "development", Quantity: 4, UnitPrice: decimal.NewFromInt(250)},
	}

	invoice, err := f.svc.CreateInvoice(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "1160.00", invoice.Total().StringFixed())
	assert.Len(t, invoice.Items, 1)

	_, err = f.svc.CreateInvoice(ctx, newInvoiceCommand("INV-2026-001"))
	assert.ErrorIs(t, err, store.ErrInvoiceNumberExists)
}

func TestUpdateInvoiceAmounts(t *testing.T) {
	t.Parallel()

	f := newFinanceFixture(t)
	ctx := context.Background()

	invoice, err := f.svc.CreateInvoice(ctx, newInvoiceCommand("INV-2026-002"))
	require.NoError(t, err)

	updated, err := f.svc.UpdateInvoiceAmounts(ctx, invoice.ID, decimal.NewFromInt(2000), decimal.NewFromInt(320))
	require.NoError(t, err)
	assert.Equal(t, "2320.00", updated.Total().StringFixed())

	_, err = f.svc.UpdateInvoiceAmounts(ctx, invoice.ID, decimal.NewFromInt(-1), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestMarkInvoicePaid(t *testing.T) {
	t.Parallel()

	f := newFinanceFixture(t)
	ctx := context.Background()

	invoice, err := f.svc.CreateInvoice(ctx, newInvoiceCommand("INV-2026-003"))
	require.NoError(t, err)

	paidDate := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	paid, err := f.svc.MarkInvoicePaid(ctx, invoice.ID, paidDate)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidDate)
	assert.Equal(t, paidDate, *paid.PaidDate)

	// Paid is terminal; amounts are frozen.
	_, err = f.svc.UpdateInvoiceAmounts(ctx, invoice.ID, decimal.NewFromInt(1), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvoiceFinalized)
}

func TestIdealHourlyRateFromProject(t *testing.T) {
	t.Parallel()

	f := newFinanceFixture(t)

	// 10000 budget over 160 planned hours.
	rate, err := f.svc.IdealHourlyRate(context.Background(), f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, "62.5", rate.String())

	_, err = f.svc.IdealHourlyRate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrProjectNotFound)
}

func TestIndividualSalaryFromLoggedHours(t *testing.T) {
	t.Parallel()

	f := newFinanceFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	entry, err := domain.NewTimeEntry(uuid.New(), userID, 40, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)
	require.NoError(t, f.entries.Create(ctx, entry))

	salary, err := f.svc.IndividualSalary(ctx, f.project.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "2500", salary.String())
}
