package services

import (
	"fmt"
	"os"
	"path/filepath"

	"registration-module/models"

	"github.com/jung-kurt/gofpdf"
)

// GenerateReceipt creates a PDF payment receipt for a successful registration
// and returns the file path. The caller removes the file after use.
func GenerateReceipt(reg *models.Registration) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Payment Receipt")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 10, fmt.Sprintf("Dear %s,", reg.Name))
	pdf.Ln(12)
	pdf.Cell(40, 10, "Your registration payment was received.")
	pdf.Ln(12)
	pdf.Cell(40, 10, fmt.Sprintf("Transaction ID: %s", reg.TxnID))
	pdf.Ln(12)
	pdf.Cell(40, 10, fmt.Sprintf("Amount: %s", reg.Amount))
	pdf.Ln(12)
	pdf.Cell(40, 10, fmt.Sprintf("Email: %s", reg.Email))
	pdf.Ln(12)
	pdf.Cell(40, 10, "Best regards,")
	pdf.Ln(12)
	pdf.Cell(40, 10, "ISML Team")

	fileName := filepath.Join(os.TempDir(), fmt.Sprintf("receipt_%s.pdf", reg.TxnID))
	if err := pdf.OutputFileAndClose(fileName); err != nil {
		return "", fmt.Errorf("error generating receipt PDF: %w", err)
	}

	return fileName, nil
}
