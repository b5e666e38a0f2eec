package service

import (
	"go-collector-ledger/internal/model"
	"go-collector-ledger/internal/repository"
	"go-collector-ledger/pkg/parse"
	"go-collector-ledger/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LedgerEntryInput carries the raw values for a manual ledger entry.
type LedgerEntryInput struct {
	EntryDate   string `json:"entry_date"`
	Description string `json:"description" validate:"required"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
}

type LedgerService interface {
	Add(input *LedgerEntryInput) (uuid.UUID, error)
	List() ([]model.LedgerEntry, error)
	Delete(id uuid.UUID) error
}

type ledgerService struct {
	ledger repository.LedgerRepository
	log    *zap.Logger
}

func NewLedgerService(ledger repository.LedgerRepository, log *zap.Logger) LedgerService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ledgerService{ledger: ledger, log: log}
}

func (s *ledgerService) Add(input *LedgerEntryInput) (uuid.UUID, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return uuid.Nil, validationErr(errs)
	}

	entryDate, err := parse.DateOrToday(input.EntryDate)
	if err != nil {
		return uuid.Nil, err
	}
	amount, err := parse.Money(input.Amount)
	if err != nil {
		return uuid.Nil, err
	}

	entry := &model.LedgerEntry{
		EntryDate:   entryDate,
		Description: input.Description,
		Amount:      amount,
		Category:    input.Category,
	}
	if err := s.ledger.Create(nil, entry); err != nil {
		return uuid.Nil, err
	}

	s.log.Info("ledger entry added",
		zap.String("id", entry.ID.String()),
		zap.String("amount", entry.Amount.String()),
		zap.String("category", entry.Category),
	)
	return entry.ID, nil
}

func (s *ledgerService) List() ([]model.LedgerEntry, error) {
	return s.ledger.FindAll()
}

func (s *ledgerService) Delete(id uuid.UUID) error {
	return s.ledger.Delete(id)
}
