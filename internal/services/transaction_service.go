package services

import (
	"context"
	"fmt"

	"codama/internal/logger"
	"codama/internal/models"
	"codama/internal/storage"
	"codama/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Transaction, error)
	List(ctx context.Context, q models.ListQuery, ownerID *uuid.UUID) ([]models.Transaction, int, error)
	ListAll(ctx context.Context, q models.ListQuery) ([]models.Transaction, error)
	Update(ctx context.Context, tx *models.Transaction) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	ForceDelete(ctx context.Context, id uuid.UUID) error
}

type TransactionService struct {
	transactions TransactionStore
	disk         storage.Disk
	log          logger.Logger
}

func NewTransactionService(transactions TransactionStore, disk storage.Disk, log logger.Logger) *TransactionService {
	return &TransactionService{transactions: transactions, disk: disk, log: log}
}

type TransactionRequest struct {
	UserID     *string          `json:"user_id"`
	CategoryID *string          `json:"category_id"`
	ColorID    *string          `json:"color_id"`
	DesignID   *string          `json:"design_id"`
	Quantity   *int             `json:"quantity"`
	Amount     *decimal.Decimal `json:"amount"`
	Status     *string          `json:"status"`
	Notes      *string          `json:"notes"`
}

// List returns transactions. Non-admins only see their own.
func (s *TransactionService) List(ctx context.Context, actor Actor, q models.ListQuery) (*models.Page[models.Transaction], error) {
	if err := prepareList(actor, &q); err != nil {
		return nil, err
	}
	var ownerID *uuid.UUID
	if !actor.IsAdmin() {
		ownerID = &actor.ID
	}
	txs, total, err := s.transactions.List(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	return models.NewPage(txs, q, total), nil
}

func (s *TransactionService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id, actor.IsAdmin())
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: transaction %s", ErrNotFound, id)
	}
	if !actor.IsAdmin() && !actor.Owns(tx.UserID) {
		return nil, forbidden("you do not have access to this transaction")
	}
	return tx, nil
}

func (s *TransactionService) Create(ctx context.Context, actor Actor, req TransactionRequest) (*models.Transaction, error) {
	if req.CategoryID == nil || req.ColorID == nil {
		return nil, validationError("category_id and color_id are required")
	}
	if req.Quantity == nil {
		return nil, validationError("quantity is required")
	}
	if req.Amount == nil {
		return nil, validationError("amount is required")
	}

	tx := &models.Transaction{UserID: actor.ID, Status: models.TransactionStatusPending}
	if err := s.apply(actor, tx, req); err != nil {
		return nil, err
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, translate(err)
	}
	return s.reload(ctx, tx)
}

// Update edits a transaction. Only admins change the status or the owner.
func (s *TransactionService) Update(ctx context.Context, actor Actor, id uuid.UUID, req TransactionRequest) (*models.Transaction, error) {
	tx, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(actor, tx, req); err != nil {
		return nil, err
	}
	tx.Prepare()
	if err := s.transactions.Update(ctx, tx); err != nil {
		return nil, translate(err)
	}
	return s.reload(ctx, tx)
}

func (s *TransactionService) apply(actor Actor, tx *models.Transaction, req TransactionRequest) error {
	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return validationError("invalid category_id")
		}
		tx.CategoryID = id
	}
	if req.ColorID != nil {
		id, err := uuid.Parse(*req.ColorID)
		if err != nil {
			return validationError("invalid color_id")
		}
		tx.ColorID = id
	}
	if req.DesignID != nil {
		id, err := utils.ParseOptionalUUID(req.DesignID)
		if err != nil {
			return validationError("invalid design_id")
		}
		tx.DesignID = id
	}
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			return validationError("quantity must be at least 1")
		}
		tx.Quantity = *req.Quantity
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return validationError("amount cannot be negative")
		}
		tx.Amount = *req.Amount
	}
	if req.Notes != nil {
		tx.Notes = req.Notes
	}
	if req.Status != nil && *req.Status != tx.Status {
		if !actor.IsAdmin() {
			return forbidden("only admins can change a transaction's status")
		}
		if !models.IsValidTransactionStatus(*req.Status) {
			return validationError("invalid status %q", *req.Status)
		}
		tx.Status = *req.Status
	}
	if req.UserID != nil && *req.UserID != tx.UserID.String() {
		if !actor.IsAdmin() {
			return forbidden("only admins can assign transactions to other users")
		}
		id, err := uuid.Parse(*req.UserID)
		if err != nil {
			return validationError("invalid user_id")
		}
		tx.UserID = id
	}
	return nil
}

// AttachProof stores a payment proof for the transaction, replacing any
// previous one.
func (s *TransactionService) AttachProof(ctx context.Context, actor Actor, id uuid.UUID, proof *Upload) (*models.Transaction, error) {
	if proof == nil {
		return nil, validationError("file is required")
	}
	tx, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	proofPath, err := store(s.disk, ProofDir, proof, append([]string{".pdf"}, imageExtensions...))
	if err != nil {
		return nil, err
	}
	oldPath := tx.ProofPath
	tx.ProofPath = &proofPath

	if err := s.transactions.Update(ctx, tx); err != nil {
		s.discard(proofPath)
		return nil, translate(err)
	}
	if oldPath != nil {
		s.discard(*oldPath)
	}
	return tx, nil
}

func (s *TransactionService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return translate(s.transactions.SoftDelete(ctx, id))
}

func (s *TransactionService) Restore(ctx context.Context, actor Actor, id uuid.UUID) (*models.Transaction, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.transactions.Restore(ctx, id); err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, actor, id)
}

// ForceDelete removes the transaction and its payment proof.
func (s *TransactionService) ForceDelete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	tx, err := s.transactions.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if tx == nil {
		return fmt.Errorf("%w: transaction %s", ErrNotFound, id)
	}
	if err := s.transactions.ForceDelete(ctx, id); err != nil {
		return translate(err)
	}
	if tx.ProofPath != nil {
		s.discard(*tx.ProofPath)
	}
	return nil
}

// Export returns every transaction matching the filters of q for a report.
func (s *TransactionService) Export(ctx context.Context, actor Actor, q models.ListQuery) ([]models.Transaction, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	q.Normalize()
	return s.transactions.ListAll(ctx, q)
}

func (s *TransactionService) reload(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	fresh, err := s.transactions.GetByID(ctx, tx.ID, true)
	if err != nil || fresh == nil {
		return tx, err
	}
	return fresh, nil
}

func (s *TransactionService) discard(p string) {
	if err := s.disk.Delete(p); err != nil {
		s.log.Warn(fmt.Sprintf("failed to delete stored file %s: %v", p, err))
	}
}
