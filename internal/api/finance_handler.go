package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pvaldez/cadence-api/internal/api/shared"
	"github.com/pvaldez/cadence-api/internal/service"
)

// CreateTransactionRequest represents the request body for creating a transaction.
type CreateTransactionRequest struct {
	Type               string     `json:"type"     validate:"required,oneof=income expense"`
	Category           string     `json:"category" validate:"required,min=1"`
	Amount             float64    `json:"amount"   validate:"gte=0"`
	Currency           string     `json:"currency" validate:"required"`
	Date               time.Time  `json:"date"     validate:"required"`
	Description        string     `json:"description"`
	ClientID           *uuid.UUID `json:"client_id,omitempty"`
	ProjectID          *uuid.UUID `json:"project_id,omitempty"`
	RecurringFrequency string     `json:"recurring_frequency,omitempty" validate:"omitempty,oneof=daily weekly monthly yearly"`
}

// InvoiceItemRequest is one billed line of a CreateInvoiceRequest.
type InvoiceItemRequest struct {
	Description string  `json:"description" validate:"required,min=1"`
	Quantity    int     `json:"quantity"    validate:"gt=0"`
	UnitPrice   float64 `json:"unit_price"  validate:"gte=0"`
}

// CreateInvoiceRequest represents the request body for creating an invoice.
type CreateInvoiceRequest struct {
	InvoiceNumber string               `json:"invoice_number" validate:"required,min=1"`
	ClientID      uuid.UUID            `json:"client_id"      validate:"required"`
	ProjectID     *uuid.UUID           `json:"project_id,omitempty"`
	Amount        float64              `json:"amount"         validate:"gte=0"`
	Tax           float64              `json:"tax"            validate:"gte=0"`
	IssueDate     time.Time            `json:"issue_date"     validate:"required"`
	DueDate       time.Time            `json:"due_date"       validate:"required"`
	Notes         string               `json:"notes"`
	Items         []InvoiceItemRequest `json:"items,omitempty" validate:"dive"`
}

// UpdateInvoiceAmountsRequest represents the request body for replacing an
// invoice's amount and tax.
type UpdateInvoiceAmountsRequest struct {
	Amount float64 `json:"amount" validate:"gte=0"`
	Tax    float64 `json:"tax"    validate:"gte=0"`
}

// MarkInvoicePaidRequest represents the request body for marking an invoice paid.
type MarkInvoicePaidRequest struct {
	PaidDate time.Time `json:"paid_date" validate:"required"`
}

// RateResponse carries a single monetary rate or total.
type RateResponse struct {
	Value string `json:"value"`
}

// FinanceHandler handles transaction, invoice, and rate HTTP requests.
type FinanceHandler struct {
	financeService service.FinanceService
	validator      *validator.Validate
}

// NewFinanceHandler creates a new FinanceHandler.
func NewFinanceHandler(financeService service.FinanceService) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
		validator:      validator.New(),
	}
}

// CreateTransaction handles POST /api/transactions requests.
func (h *FinanceHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	tx, err := h.financeService.CreateTransaction(r.Context(), service.CreateTransactionCommand{
		Type:               req.Type,
		Category:           req.Category,
		Amount:             decimal.NewFromFloat(req.Amount),
		Currency:           req.Currency,
		Date:               req.Date,
		Description:        req.Description,
		ClientID:           req.ClientID,
		ProjectID:          req.ProjectID,
		RecurringFrequency: req.RecurringFrequency,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, tx)
}

// DeleteTransaction handles DELETE /api/transactions/{transactionID} requests.
func (h *FinanceHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, err := urlParamUUID(r, "transactionID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	if err := h.financeService.DeleteTransaction(r.Context(), transactionID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListProjectTransactions handles GET /api/projects/{projectID}/transactions requests.
func (h *FinanceHandler) ListProjectTransactions(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlParamUUID(r, "projectID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid project ID")
		return
	}

	txs, err := h.financeService.ListProjectTransactions(r.Context(), projectID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, txs)
}

// CreateInvoice handles POST /api/invoices requests.
func (h *FinanceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req CreateInvoiceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	cmd := service.CreateInvoiceCommand{
		InvoiceNumber: req.InvoiceNumber,
		ClientID:      req.ClientID,
		ProjectID:     req.ProjectID,
		Amount:        decimal.NewFromFloat(req.Amount),
		Tax:           decimal.NewFromFloat(req.Tax),
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Notes:         req.Notes,
	}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, service.InvoiceItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   decimal.NewFromFloat(item.UnitPrice),
		})
	}

	invoice, err := h.financeService.CreateInvoice(r.Context(), cmd)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, invoice)
}

// UpdateInvoiceAmounts handles PUT /api/invoices/{invoiceID}/amounts requests.
func (h *FinanceHandler) UpdateInvoiceAmounts(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := urlParamUUID(r, "invoiceID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	var req UpdateInvoiceAmountsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	invoice, err := h.financeService.UpdateInvoiceAmounts(
		r.Context(),
		invoiceID,
		decimal.NewFromFloat(req.Amount),
		decimal.NewFromFloat(req.Tax),
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, invoice)
}

// MarkInvoicePaid handles POST /api/invoices/{invoiceID}/pay requests.
func (h *FinanceHandler) MarkInvoicePaid(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := urlParamUUID(r, "invoiceID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	var req MarkInvoicePaidRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	invoice, err := h.financeService.MarkInvoicePaid(r.Context(), invoiceID, req.PaidDate)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, invoice)
}

// GetIdealHourlyRate handles GET /api/projects/{projectID}/rate requests.
func (h *FinanceHandler) GetIdealHourlyRate(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlParamUUID(r, "projectID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid project ID")
		return
	}

	rate, err := h.financeService.IdealHourlyRate(r.Context(), projectID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RateResponse{Value: rate.StringFixed(2)})
}

// GetIndividualSalary handles GET /api/projects/{projectID}/salary/{userID} requests.
func (h *FinanceHandler) GetIndividualSalary(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlParamUUID(r, "projectID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid project ID")
		return
	}

	userID, err := urlParamUUID(r, "userID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}

	salary, err := h.financeService.IndividualSalary(r.Context(), projectID, userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RateResponse{Value: salary.StringFixed(2)})
}
