package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"codama/internal/models"

	"github.com/xuri/excelize/v2"
)

const transactionSheet = "Transactions"

var transactionHeaders = []string{
	"ID", "Date", "Customer", "Category", "Color", "Quantity", "Amount", "Total", "Status", "Notes",
}

func notesOf(tx models.Transaction) string {
	if tx.Notes == nil {
		return ""
	}
	return *tx.Notes
}

func transactionRow(tx models.Transaction) []string {
	return []string{
		tx.ID.String(),
		tx.CreatedAt.Format(time.DateOnly),
		tx.UserName,
		tx.CategoryName,
		tx.ColorName,
		strconv.Itoa(tx.Quantity),
		tx.Amount.StringFixed(2),
		tx.Total().StringFixed(2),
		tx.Status,
		notesOf(tx),
	}
}

// WriteTransactionsCSV writes txs as CSV with a header row.
func WriteTransactionsCSV(w io.Writer, txs []models.Transaction) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(transactionHeaders); err != nil {
		return err
	}
	for _, tx := range txs {
		if err := writer.Write(transactionRow(tx)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteTransactionsXLSX writes txs as a single-sheet workbook. Quantity,
// amount and total are stored as numbers.
func WriteTransactionsXLSX(w io.Writer, txs []models.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", transactionSheet); err != nil {
		return err
	}

	for i, h := range transactionHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(transactionSheet, cell, h); err != nil {
			return err
		}
	}

	for idx, tx := range txs {
		row := idx + 2
		values := []interface{}{
			tx.ID.String(),
			tx.CreatedAt.Format(time.DateOnly),
			tx.UserName,
			tx.CategoryName,
			tx.ColorName,
			tx.Quantity,
			tx.Amount.InexactFloat64(),
			tx.Total().InexactFloat64(),
			tx.Status,
			notesOf(tx),
		}
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(transactionSheet, cell, &values); err != nil {
			return err
		}
	}

	f.SetColWidth(transactionSheet, "A", "A", 38)
	f.SetColWidth(transactionSheet, "B", "B", 12)
	f.SetColWidth(transactionSheet, "C", "E", 18)
	f.SetColWidth(transactionSheet, "J", "J", 30)

	return f.Write(w)
}
