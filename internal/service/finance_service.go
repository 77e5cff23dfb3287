package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pvaldez/cadence-api/internal/domain"
	"github.com/pvaldez/cadence-api/internal/domain/metrics"
	"github.com/pvaldez/cadence-api/internal/platform/logger"
	"github.com/pvaldez/cadence-api/internal/store"
)

// CreateTransactionCommand carries the input for creating a financial
// transaction. Plain data, no behavior; resolvers build it from validated
// request DTOs.
type CreateTransactionCommand struct {
	Type               string
	Category           string
	Amount             decimal.Decimal
	Currency           string
	Date               time.Time
	Description        string
	ClientID           *uuid.UUID
	ProjectID          *uuid.UUID
	RecurringFrequency string // empty means not recurring
}

// CreateInvoiceCommand carries the input for creating an invoice.
type CreateInvoiceCommand struct {
	InvoiceNumber string
	ClientID      uuid.UUID
	ProjectID     *uuid.UUID
	Amount        decimal.Decimal
	Tax           decimal.Decimal
	IssueDate     time.Time
	DueDate       time.Time
	Notes         string
	Items         []InvoiceItemInput
}

// InvoiceItemInput is one billed line of a CreateInvoiceCommand.
type InvoiceItemInput struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// FinanceService provides transaction, invoice, and rate operations.
type FinanceService interface {
	// CreateTransaction stores a new transaction. An expense referencing a
	// project also increments that project's spent total; both writes happen
	// in a single database transaction.
	CreateTransaction(ctx context.Context, cmd CreateTransactionCommand) (*domain.Transaction, error)

	// DeleteTransaction soft-deletes a transaction. References on the stored
	// row are preserved; project spent is not rolled back.
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	// ListProjectTransactions returns the non-deleted transactions of a project.
	ListProjectTransactions(ctx context.Context, projectID uuid.UUID) ([]*domain.Transaction, error)

	// CreateInvoice stores a new draft invoice with a unique invoice number.
	CreateInvoice(ctx context.Context, cmd CreateInvoiceCommand) (*domain.Invoice, error)

	// UpdateInvoiceAmounts replaces an invoice's amount and tax. The total is
	// derived, so it follows automatically.
	UpdateInvoiceAmounts(ctx context.Context, invoiceID uuid.UUID, amount, tax decimal.Decimal) (*domain.Invoice, error)

	// MarkInvoicePaid moves an invoice to paid with the given payment date.
	MarkInvoicePaid(ctx context.Context, invoiceID uuid.UUID, paidDate time.Time) (*domain.Invoice, error)

	// IdealHourlyRate returns the project's budget divided by its planned
	// hours, zero when no hours are planned.
	IdealHourlyRate(ctx context.Context, projectID uuid.UUID) (decimal.Decimal, error)

	// IndividualSalary returns the fair pay for a user's logged hours on a
	// project: worked hours times the project's ideal hourly rate.
	IndividualSalary(ctx context.Context, projectID, userID uuid.UUID) (decimal.Decimal, error)
}

// financeServiceImpl implements the FinanceService interface.
type financeServiceImpl struct {
	db           *sql.DB
	transactions store.TransactionStore
	invoices     store.InvoiceStore
	projects     store.ProjectStore
	timeEntries  store.TimeEntryStore
	logger       *slog.Logger
}

// NewFinanceService creates a new FinanceService.
// It returns an error if any of the required dependencies are nil.
func NewFinanceService(
	db *sql.DB,
	transactions store.TransactionStore,
	invoices store.InvoiceStore,
	projects store.ProjectStore,
	timeEntries store.TimeEntryStore,
	log *slog.Logger,
) (FinanceService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if transactions == nil {
		return nil, domain.NewValidationError("transactions", "cannot be nil", domain.ErrValidation)
	}
	if invoices == nil {
		return nil, domain.NewValidationError("invoices", "cannot be nil", domain.ErrValidation)
	}
	if projects == nil {
		return nil, domain.NewValidationError("projects", "cannot be nil", domain.ErrValidation)
	}
	if timeEntries == nil {
		return nil, domain.NewValidationError("timeEntries", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &financeServiceImpl{
		db:           db,
		transactions: transactions,
		invoices:     invoices,
		projects:     projects,
		timeEntries:  timeEntries,
		logger:       log.With(slog.String("component", "finance_service")),
	}, nil
}

// CreateTransaction implements FinanceService.CreateTransaction.
func (s *financeServiceImpl) CreateTransaction(
	ctx context.Context,
	cmd CreateTransactionCommand,
) (*domain.Transaction, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	amount, err := domain.NewAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}

	currency, err := domain.ParseCurrency(cmd.Currency)
	if err != nil {
		return nil, err
	}

	tx, err := domain.NewTransaction(
		domain.TransactionType(cmd.Type),
		cmd.Category,
		amount,
		currency,
		cmd.Date,
		cmd.Description,
	)
	if err != nil {
		return nil, err
	}

	if cmd.ClientID != nil {
		tx.LinkClient(*cmd.ClientID)
	}
	if cmd.ProjectID != nil {
		tx.LinkProject(*cmd.ProjectID)
	}
	if cmd.RecurringFrequency != "" {
		if err := tx.SetRecurring(domain.RecurringFrequency(cmd.RecurringFrequency)); err != nil {
			return nil, err
		}
	}

	// Expenses linked to a project increment the project's spent total in the
	// same database transaction, so an observer never sees one without the other.
	if tx.Type == domain.TransactionTypeExpense && tx.ProjectID != nil {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, dbTx *sql.Tx) error {
			txStore := s.transactions.WithTx(dbTx)
			projectStore := s.projects.WithTx(dbTx)

			if err := txStore.Create(ctx, tx); err != nil {
				return NewServiceError("finance", "create_transaction", "failed to save transaction", err)
			}

			project, err := projectStore.GetByID(ctx, *tx.ProjectID)
			if err != nil {
				return NewServiceError("finance", "create_transaction", "failed to load project", err)
			}

			if err := project.AddSpent(tx.Amount.Decimal()); err != nil {
				return err
			}

			if err := projectStore.Update(ctx, project); err != nil {
				return NewServiceError("finance", "create_transaction", "failed to update project spent", err)
			}

			return nil
		})
		if err != nil {
			log.Error("failed to create expense transaction",
				slog.String("error", err.Error()),
				slog.String("project_id", tx.ProjectID.String()))
			return nil, err
		}

		log.Info("expense transaction created and project spent updated",
			slog.String("transaction_id", tx.ID.String()),
			slog.String("project_id", tx.ProjectID.String()),
			slog.String("amount", tx.Amount.StringFixed()))
		return tx, nil
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		log.Error("failed to create transaction",
			slog.String("error", err.Error()),
			slog.String("transaction_id", tx.ID.String()))
		return nil, NewServiceError("finance", "create_transaction", "failed to save transaction", err)
	}

	log.Info("transaction created",
		slog.String("transaction_id", tx.ID.String()),
		slog.String("type", string(tx.Type)))
	return tx, nil
}

// DeleteTransaction implements FinanceService.DeleteTransaction.
func (s *financeServiceImpl) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.transactions.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return NewServiceError("finance", "delete_transaction", "transaction not found", store.ErrTransactionNotFound)
		}
		return NewServiceError("finance", "delete_transaction", "failed to delete transaction", err)
	}

	log.Info("transaction soft-deleted", slog.String("transaction_id", id.String()))
	return nil
}

// ListProjectTransactions implements FinanceService.ListProjectTransactions.
func (s *financeServiceImpl) ListProjectTransactions(
	ctx context.Context,
	projectID uuid.UUID,
) ([]*domain.Transaction, error) {
	txs, err := s.transactions.ListByProject(ctx, projectID)
	if err != nil {
		return nil, NewServiceError("finance", "list_transactions", "failed to list transactions", err)
	}
	return txs, nil
}

// CreateInvoice implements FinanceService.CreateInvoice.
func (s *financeServiceImpl) CreateInvoice(
	ctx context.Context,
	cmd CreateInvoiceCommand,
) (*domain.Invoice, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	amount, err := domain.NewAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}

	tax, err := domain.NewAmount(cmd.Tax)
	if err != nil {
		return nil, err
	}

	invoice, err := domain.NewInvoice(cmd.InvoiceNumber, cmd.ClientID, amount, tax, cmd.IssueDate, cmd.DueDate)
	if err != nil {
		return nil, err
	}

	invoice.ProjectID = cmd.ProjectID
	invoice.Notes = cmd.Notes

	for _, item := range cmd.Items {
		unitPrice, err := domain.NewAmount(item.UnitPrice)
		if err != nil {
			return nil, err
		}
		if err := invoice.AddItem(domain.InvoiceItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
		}); err != nil {
			return nil, err
		}
	}

	if err := s.invoices.Create(ctx, invoice); err != nil {
		if store.IsDuplicateError(err) {
			return nil, NewServiceError("finance", "create_invoice", "invoice number already taken", store.ErrInvoiceNumberExists)
		}
		return nil, NewServiceError("finance", "create_invoice", "failed to save invoice", err)
	}

	log.Info("invoice created",
		slog.String("invoice_id", invoice.ID.String()),
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.String("total", invoice.Total().StringFixed()))
	return invoice, nil
}

// UpdateInvoiceAmounts implements FinanceService.UpdateInvoiceAmounts.
func (s *financeServiceImpl) UpdateInvoiceAmounts(
	ctx context.Context,
	invoiceID uuid.UUID,
	amount, tax decimal.Decimal,
) (*domain.Invoice, error) {
	newAmount, err := domain.NewAmount(amount)
	if err != nil {
		return nil, err
	}

	newTax, err := domain.NewAmount(tax)
	if err != nil {
		return nil, err
	}

	invoice, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewServiceError("finance", "update_invoice", "invoice not found", store.ErrInvoiceNotFound)
		}
		return nil, NewServiceError("finance", "update_invoice", "failed to load invoice", err)
	}

	if err := invoice.SetAmounts(newAmount, newTax); err != nil {
		return nil, err
	}

	if err := s.invoices.Update(ctx, invoice); err != nil {
		return nil, NewServiceError("finance", "update_invoice", "failed to update invoice", err)
	}

	return invoice, nil
}

// MarkInvoicePaid implements FinanceService.MarkInvoicePaid.
func (s *financeServiceImpl) MarkInvoicePaid(
	ctx context.Context,
	invoiceID uuid.UUID,
	paidDate time.Time,
) (*domain.Invoice, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	invoice, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewServiceError("finance", "mark_invoice_paid", "invoice not found", store.ErrInvoiceNotFound)
		}
		return nil, NewServiceError("finance", "mark_invoice_paid", "failed to load invoice", err)
	}

	if err := invoice.MarkPaid(paidDate); err != nil {
		return nil, err
	}

	if err := s.invoices.Update(ctx, invoice); err != nil {
		return nil, NewServiceError("finance", "mark_invoice_paid", "failed to update invoice", err)
	}

	log.Info("invoice marked paid",
		slog.String("invoice_id", invoice.ID.String()),
		slog.String("invoice_number", invoice.InvoiceNumber))
	return invoice, nil
}

// IdealHourlyRate implements FinanceService.IdealHourlyRate.
func (s *financeServiceImpl) IdealHourlyRate(
	ctx context.Context,
	projectID uuid.UUID,
) (decimal.Decimal, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return decimal.Zero, NewServiceError("finance", "ideal_hourly_rate", "project not found", store.ErrProjectNotFound)
		}
		return decimal.Zero, NewServiceError("finance", "ideal_hourly_rate", "failed to load project", err)
	}

	return metrics.IdealHourlyRate(project.Budget.Decimal(), project.TotalHoursPlanned), nil
}

// IndividualSalary implements FinanceService.IndividualSalary.
func (s *financeServiceImpl) IndividualSalary(
	ctx context.Context,
	projectID, userID uuid.UUID,
) (decimal.Decimal, error) {
	rate, err := s.IdealHourlyRate(ctx, projectID)
	if err != nil {
		return decimal.Zero, err
	}

	hours, err := s.timeEntries.SumHoursByUserAndProject(ctx, userID, projectID)
	if err != nil {
		return decimal.Zero, NewServiceError("finance", "individual_salary", "failed to sum worked hours", err)
	}

	return metrics.IndividualSalary(hours, rate), nil
}
