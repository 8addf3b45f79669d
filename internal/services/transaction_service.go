package services

import (
	"context"
	"strings"
	"time"

	"github.com/Valentin6743/LS/internal/aggregate"
	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultCurrency = "EUR"

type TransactionFilter struct {
	OwnerID  *uuid.UUID
	Type     *models.TransactionType
	Category *string
	Date     Range
}

type CreateTransactionRequest struct {
	OwnerID         uuid.UUID              `json:"owner_id"`
	Type            models.TransactionType `json:"type"`
	Category        string                 `json:"category"`
	Amount          float64                `json:"amount"`
	Currency        string                 `json:"currency"`
	Description     *string                `json:"description"`
	TransactionDate *time.Time             `json:"transaction_date"`
	PaymentMethod   *string                `json:"payment_method"`
	Tags            []string               `json:"tags"`
}

type UpdateTransactionRequest struct {
	Type            *models.TransactionType `json:"type"`
	Category        *string                 `json:"category"`
	Amount          *float64                `json:"amount"`
	Currency        *string                 `json:"currency"`
	Description     *string                 `json:"description"`
	TransactionDate *time.Time              `json:"transaction_date"`
	PaymentMethod   *string                 `json:"payment_method"`
	Tags            *[]string               `json:"tags"`
}

type TransactionService struct {
	db *gorm.DB
}

func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{db: db}
}

func checkCurrency(c string) error {
	if len(c) != 3 {
		return apperr.Invalid("currency", "must be a three letter code")
	}
	return nil
}

func (s *TransactionService) List(ctx context.Context, f TransactionFilter) ([]models.Transaction, error) {
	if err := models.CheckOptional("type", f.Type); err != nil {
		return nil, err
	}
	return find[models.Transaction](ctx, s.db, "list transactions", "transaction_date DESC",
		eq("owner_id", f.OwnerID), eq("type", f.Type), eq("category", f.Category), f.Date.on("transaction_date"))
}

func (s *TransactionService) ByCategory(ctx context.Context, category string, window Range) ([]models.Transaction, error) {
	return s.List(ctx, TransactionFilter{Category: &category, Date: window})
}

func (s *TransactionService) ByType(ctx context.Context, t models.TransactionType, window Range) ([]models.Transaction, error) {
	return s.List(ctx, TransactionFilter{Type: &t, Date: window})
}

// SummaryByCategory totals the transactions dated inside [from, to].
func (s *TransactionService) SummaryByCategory(ctx context.Context, from, to time.Time) (map[string]aggregate.CategorySummary, error) {
	txs, err := s.List(ctx, TransactionFilter{Date: Range{From: &from, To: &to}})
	if err != nil {
		return nil, err
	}
	return aggregate.SummarizeByCategory(txs), nil
}

func (s *TransactionService) Get(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	return first[models.Transaction](ctx, s.db, "get transaction", byID(id))
}

func (s *TransactionService) Create(ctx context.Context, req CreateTransactionRequest) (*models.Transaction, error) {
	if err := models.Check("type", req.Type); err != nil {
		return nil, err
	}
	if err := required("category", req.Category); err != nil {
		return nil, err
	}
	if err := requiredID("owner_id", req.OwnerID); err != nil {
		return nil, err
	}
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = defaultCurrency
	}
	if err := checkCurrency(currency); err != nil {
		return nil, err
	}
	date := time.Now().UTC()
	if req.TransactionDate != nil {
		date = req.TransactionDate.UTC()
	}

	tx := models.Transaction{
		OwnerID:         req.OwnerID,
		Type:            req.Type,
		Category:        req.Category,
		Amount:          req.Amount,
		Currency:        currency,
		Description:     req.Description,
		TransactionDate: date,
		PaymentMethod:   req.PaymentMethod,
		Tags:            dedupe(req.Tags),
	}
	if err := create(ctx, s.db, "create transaction", &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *TransactionService) Update(ctx context.Context, id uuid.UUID, req UpdateTransactionRequest) (*models.Transaction, error) {
	if err := models.CheckOptional("type", req.Type); err != nil {
		return nil, err
	}
	if req.Currency != nil {
		c := strings.ToUpper(*req.Currency)
		if err := checkCurrency(c); err != nil {
			return nil, err
		}
		req.Currency = &c
	}

	tx, err := mustGet[models.Transaction](ctx, s.db, "update transaction", "transaction", id)
	if err != nil {
		return nil, err
	}
	set(&tx.Type, req.Type)
	set(&tx.Category, req.Category)
	set(&tx.Amount, req.Amount)
	set(&tx.Currency, req.Currency)
	setOpt(&tx.Description, req.Description)
	if req.TransactionDate != nil {
		tx.TransactionDate = req.TransactionDate.UTC()
	}
	setOpt(&tx.PaymentMethod, req.PaymentMethod)
	if req.Tags != nil {
		tx.Tags = dedupe(*req.Tags)
	}

	if err := save(ctx, s.db, "update transaction", tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *TransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete[models.Transaction](ctx, s.db, "delete transaction", id)
}
