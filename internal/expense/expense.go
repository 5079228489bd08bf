package expense

import (
	"encoding/base64"

	"github.com/shopspring/decimal"
)

// Status is the review state of an expense record.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ReceiptFile is the receipt embedded in a record. Content is base64-encoded
// for transport and immutable once read from the source file.
type ReceiptFile struct {
	Name     string `json:"name"`
	MIMEType string `json:"type"`
	Content  string `json:"content"`
}

// NewReceiptFile builds a ReceiptFile from raw file bytes.
func NewReceiptFile(name, mimeType string, data []byte) ReceiptFile {
	return ReceiptFile{
		Name:     name,
		MIMEType: mimeType,
		Content:  base64.StdEncoding.EncodeToString(data),
	}
}

// Bytes decodes the receipt content back into the original file bytes.
func (f ReceiptFile) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(f.Content)
}

// Expense is a finalized, reviewable expense record. EmployeeName is the
// comma-joined display string of every employee on the trip. Status is the
// only field mutated after creation, and only by the review flow.
type Expense struct {
	ID            string          `json:"id"`
	EmployeeName  string          `json:"employee_name"`
	TripName      string          `json:"trip_name"`
	TripStartDate string          `json:"trip_start_date"`
	TripEndDate   string          `json:"trip_end_date"`
	Vendor        string          `json:"vendor"`
	Date          string          `json:"date"` // YYYY-MM-DD
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Category      string          `json:"category"`
	ReceiptFile   ReceiptFile     `json:"receipt_file"`
	Status        Status          `json:"status"`
}
