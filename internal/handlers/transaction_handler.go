package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"codama/internal/models"
	"codama/internal/responses"
	"codama/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Export formats
const (
	ExportXLSX = "xlsx"
	ExportCSV  = "csv"
)

type TransactionManager interface {
	ResourceService[models.Transaction, services.TransactionRequest]
	AttachProof(ctx context.Context, actor services.Actor, id uuid.UUID, proof *services.Upload) (*models.Transaction, error)
	Export(ctx context.Context, actor services.Actor, q models.ListQuery) ([]models.Transaction, error)
}

type TransactionHandler struct {
	*ResourceHandler[models.Transaction, services.TransactionRequest]
	transactions TransactionManager
}

func NewTransactionHandler(transactions TransactionManager) *TransactionHandler {
	return &TransactionHandler{
		ResourceHandler: NewResourceHandler[models.Transaction, services.TransactionRequest](transactions, "Transaction"),
		transactions:    transactions,
	}
}

// AttachProof handles POST /api/v1/transactions/:id/proof
func (h *TransactionHandler) AttachProof(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	proof, closeFile, err := formUpload(c, "file")
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid upload")
		return
	}
	defer closeFile()

	tx, err := h.transactions.AttachProof(c.Request.Context(), actor, id, proof)
	if err != nil {
		fail(c, err, "Failed to attach payment proof")
		return
	}

	responses.Success(c, http.StatusOK, tx, "Payment proof attached successfully")
}

// Export handles GET /api/v1/transactions/export?format=xlsx|csv. The list
// filters apply, paging does not.
func (h *TransactionHandler) Export(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", ExportXLSX)
	var (
		write       func(io.Writer, []models.Transaction) error
		contentType string
	)
	switch format {
	case ExportXLSX:
		write = services.WriteTransactionsXLSX
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ExportCSV:
		write = services.WriteTransactionsCSV
		contentType = "text/csv; charset=utf-8"
	default:
		responses.Fail(c, http.StatusBadRequest, nil, "format must be xlsx or csv")
		return
	}

	q := listQuery(c)
	delete(q.Filters, "format")

	txs, err := h.transactions.Export(c.Request.Context(), actor, q)
	if err != nil {
		fail(c, err, "Failed to export transactions")
		return
	}

	filename := fmt.Sprintf("transactions-%s.%s", time.Now().Format("20060102"), format)
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Status(http.StatusOK)
	if err := write(c.Writer, txs); err != nil {
		_ = c.Error(err)
	}
}
