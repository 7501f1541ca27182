package services

import (
	"context"
	"strings"
	"testing"

	"codama/internal/logger"
	"codama/internal/models"
	"codama/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransactionStore struct {
	txs map[uuid.UUID]*models.Transaction
}

func (s *fakeTransactionStore) Create(ctx context.Context, tx *models.Transaction) error {
	tx.Prepare()
	cp := *tx
	s.txs[tx.ID] = &cp
	return nil
}

func (s *fakeTransactionStore) GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Transaction, error) {
	tx, ok := s.txs[id]
	if !ok || (!withTrashed && tx.DeletedAt != nil) {
		return nil, nil
	}
	cp := *tx
	return &cp, nil
}

func (s *fakeTransactionStore) List(ctx context.Context, q models.ListQuery, ownerID *uuid.UUID) ([]models.Transaction, int, error) {
	var out []models.Transaction
	for _, tx := range s.txs {
		if ownerID == nil || tx.UserID == *ownerID {
			out = append(out, *tx)
		}
	}
	return out, len(out), nil
}

func (s *fakeTransactionStore) ListAll(ctx context.Context, q models.ListQuery) ([]models.Transaction, error) {
	out, _, err := s.List(ctx, q, nil)
	return out, err
}

func (s *fakeTransactionStore) Update(ctx context.Context, tx *models.Transaction) error {
	if _, ok := s.txs[tx.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *tx
	s.txs[tx.ID] = &cp
	return nil
}

func (s *fakeTransactionStore) SoftDelete(ctx context.Context, id uuid.UUID) error { return nil }
func (s *fakeTransactionStore) Restore(ctx context.Context, id uuid.UUID) error    { return nil }

func (s *fakeTransactionStore) ForceDelete(ctx context.Context, id uuid.UUID) error {
	delete(s.txs, id)
	return nil
}

func newTestTransactionService(t *testing.T) *TransactionService {
	t.Helper()
	store := &fakeTransactionStore{txs: map[uuid.UUID]*models.Transaction{}}
	return NewTransactionService(store, newTestDisk(t, nil), logger.NewConsoleLogger("error"))
}

func validTransactionRequest() TransactionRequest {
	qty := 2
	amount := decimal.RequireFromString("15.00")
	return TransactionRequest{
		CategoryID: strPtr(uuid.NewString()),
		ColorID:    strPtr(uuid.NewString()),
		Quantity:   &qty,
		Amount:     &amount,
	}
}

func TestTransactionService_Create(t *testing.T) {
	svc := newTestTransactionService(t)
	owner := Actor{ID: uuid.New(), Role: models.RoleUser}

	tx, err := svc.Create(context.Background(), owner, validTransactionRequest())
	require.NoError(t, err)
	assert.Equal(t, owner.ID, tx.UserID)
	assert.Equal(t, models.TransactionStatusPending, tx.Status)
	assert.Equal(t, "30.00", tx.Total().StringFixed(2))
}

func TestTransactionService_Create_Validation(t *testing.T) {
	svc := newTestTransactionService(t)
	owner := Actor{ID: uuid.New(), Role: models.RoleUser}

	req := validTransactionRequest()
	zero := 0
	req.Quantity = &zero
	_, err := svc.Create(context.Background(), owner, req)
	assert.ErrorIs(t, err, ErrValidation)

	req = validTransactionRequest()
	negative := decimal.RequireFromString("-1")
	req.Amount = &negative
	_, err = svc.Create(context.Background(), owner, req)
	assert.ErrorIs(t, err, ErrValidation)

	req = validTransactionRequest()
	req.ColorID = nil
	_, err = svc.Create(context.Background(), owner, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTransactionService_StatusAndOwnership(t *testing.T) {
	svc := newTestTransactionService(t)
	ctx := context.Background()
	owner := Actor{ID: uuid.New(), Role: models.RoleUser}
	stranger := Actor{ID: uuid.New(), Role: models.RoleUser}
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	req := validTransactionRequest()
	req.Status = strPtr(models.TransactionStatusPaid)
	_, err := svc.Create(ctx, owner, req)
	assert.ErrorIs(t, err, ErrForbidden)

	tx, err := svc.Create(ctx, owner, validTransactionRequest())
	require.NoError(t, err)

	_, err = svc.Get(ctx, stranger, tx.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(ctx, owner, tx.ID, TransactionRequest{Status: strPtr(models.TransactionStatusPaid)})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(ctx, admin, tx.ID, TransactionRequest{Status: strPtr("refunded")})
	assert.ErrorIs(t, err, ErrValidation)

	paid, err := svc.Update(ctx, admin, tx.ID, TransactionRequest{Status: strPtr(models.TransactionStatusPaid)})
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusPaid, paid.Status)

	_, err = svc.Export(ctx, owner, models.ListQuery{})
	assert.ErrorIs(t, err, ErrForbidden)
	rows, err := svc.Export(ctx, admin, models.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestTransactionService_AttachProof(t *testing.T) {
	svc := newTestTransactionService(t)
	ctx := context.Background()
	owner := Actor{ID: uuid.New(), Role: models.RoleUser}

	tx, err := svc.Create(ctx, owner, validTransactionRequest())
	require.NoError(t, err)

	first, err := svc.AttachProof(ctx, owner, tx.ID, &Upload{Filename: "receipt.jpg", Body: strings.NewReader("jpg")})
	require.NoError(t, err)
	require.NotNil(t, first.ProofPath)
	firstPath := *first.ProofPath
	assert.True(t, svc.disk.Exists(firstPath))

	second, err := svc.AttachProof(ctx, owner, tx.ID, &Upload{Filename: "receipt.pdf", Body: strings.NewReader("pdf")})
	require.NoError(t, err)
	assert.True(t, svc.disk.Exists(*second.ProofPath))
	assert.False(t, svc.disk.Exists(firstPath))

	_, err = svc.AttachProof(ctx, owner, tx.ID, &Upload{Filename: "receipt.docx", Body: strings.NewReader("doc")})
	assert.ErrorIs(t, err, ErrValidation)
}
