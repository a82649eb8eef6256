// Package stamps implements the append-only stamp economy.
// Balances are always recomputed from the transaction ledger.
package stamps

import (
	"context"
	"strings"

	"github.com/feral-file/world-conquest/internal/adapter"
	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/store"
	"github.com/feral-file/world-conquest/internal/store/schema"
)

// Repository is the part of the record store the stamp economy needs
type Repository interface {
	GetStudentByID(ctx context.Context, id string) (*schema.Student, error)
	AppendStampTransaction(ctx context.Context, input store.AppendStampInput) (*schema.StampTransaction, bool, error)
	ListStampTransactions(ctx context.Context, studentID string) ([]schema.StampTransaction, error)
}

// AwardInput is a stamp award or penalty
type AwardInput struct {
	StudentID string
	ClassID   string
	// Amount is positive for an award and negative for a penalty
	Amount         int
	Reason         string
	IdempotencyKey string
}

// Account is a student's derived balance with its history, newest first
type Account struct {
	StudentID    string                    `json:"student_id"`
	Balance      int                       `json:"balance"`
	Transactions []schema.StampTransaction `json:"transactions"`
}

// Service awards stamps and derives balances
type Service struct {
	repo  Repository
	clock adapter.Clock
}

// NewService creates a stamp service
func NewService(repo Repository, clock adapter.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

// Sum reduces transactions to a balance
func Sum(transactions []schema.StampTransaction) int {
	total := 0
	for _, tx := range transactions {
		total += tx.Amount
	}
	return total
}

// Validate checks the required fields of an award
func Validate(input AwardInput) error {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(input.StudentID) == "" {
		verr.Add("student_id", "student_id is required")
	}
	if strings.TrimSpace(input.ClassID) == "" {
		verr.Add("class_id", "class_id is required")
	}
	if strings.TrimSpace(input.Reason) == "" {
		verr.Add("reason", "reason is required")
	}
	return verr.OrNil()
}

// Award appends exactly one transaction. Retrying with the same idempotency key
// returns the original transaction with created = false.
func (s *Service) Award(ctx context.Context, input AwardInput) (*schema.StampTransaction, bool, error) {
	if err := Validate(input); err != nil {
		return nil, false, err
	}

	student, err := s.repo.GetStudentByID(ctx, input.StudentID)
	if err != nil {
		return nil, false, domain.NewPersistenceError("get student", err)
	}
	if student == nil {
		return nil, false, domain.NewNotFoundError("student", input.StudentID)
	}
	if student.ClassID != input.ClassID {
		return nil, false, domain.NewValidationError("class_id", "student does not belong to this class")
	}

	var key *string
	if k := strings.TrimSpace(input.IdempotencyKey); k != "" {
		key = &k
	}

	tx, created, err := s.repo.AppendStampTransaction(ctx, store.AppendStampInput{
		StudentID:      input.StudentID,
		ClassID:        input.ClassID,
		Amount:         input.Amount,
		Reason:         strings.TrimSpace(input.Reason),
		IdempotencyKey: key,
		Timestamp:      s.clock.Now(),
	})
	if err != nil {
		return nil, false, domain.NewPersistenceError("append stamp transaction", err)
	}

	return tx, created, nil
}

// Account returns the balance and history of a student
func (s *Service) Account(ctx context.Context, studentID string) (*Account, error) {
	student, err := s.repo.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, domain.NewPersistenceError("get student", err)
	}
	if student == nil {
		return nil, domain.NewNotFoundError("student", studentID)
	}

	transactions, err := s.repo.ListStampTransactions(ctx, studentID)
	if err != nil {
		return nil, domain.NewPersistenceError("list stamp transactions", err)
	}
	if transactions == nil {
		transactions = []schema.StampTransaction{}
	}

	return &Account{
		StudentID:    studentID,
		Balance:      Sum(transactions),
		Transactions: transactions,
	}, nil
}
