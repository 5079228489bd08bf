package expense

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/RNRequiem/Contabilidad/internal/extraction"
)

// ErrValidation marks a submission that failed local validation. No record
// is created and no network call is made for these.
var ErrValidation = errors.New("invalid submission")

// Submission holds the transient state of a batch submission: the session
// metadata entered by the user plus the extractions currently held (possibly
// hand-edited after extraction).
type Submission struct {
	EmployeeNames []string            `json:"employee_names"`
	TripName      string              `json:"trip_name"`
	TripStartDate string              `json:"trip_start_date"`
	TripEndDate   string              `json:"trip_end_date"`
	Extractions   []extraction.Result `json:"extractions"`
}

// Validate checks every submission precondition and returns a descriptive
// ErrValidation on the first violation. A declared-but-blank employee slot
// rejects the whole submission rather than being silently dropped; that is
// deliberate product behavior, not an accident.
func (s Submission) Validate() error {
	if len(s.EmployeeNames) == 0 {
		return validationError("at least one employee name is required")
	}
	for _, name := range s.EmployeeNames {
		if strings.TrimSpace(name) == "" {
			return validationError("employee names cannot be blank")
		}
	}
	if strings.TrimSpace(s.TripName) == "" {
		return validationError("trip name is required")
	}
	if strings.TrimSpace(s.TripStartDate) == "" {
		return validationError("trip start date is required")
	}
	if strings.TrimSpace(s.TripEndDate) == "" {
		return validationError("trip end date is required")
	}
	if len(s.Extractions) == 0 {
		return validationError("at least one extracted receipt is required")
	}
	return nil
}

func validationError(msg string) error {
	return &validationErr{msg: msg}
}

type validationErr struct {
	msg string
}

func (e *validationErr) Error() string {
	return e.msg
}

func (e *validationErr) Is(target error) bool {
	return target == ErrValidation
}

// JoinedEmployeeNames returns the comma-separated display string stored on
// every record of the batch.
func (s Submission) JoinedEmployeeNames() string {
	names := make([]string, 0, len(s.EmployeeNames))
	for _, name := range s.EmployeeNames {
		names = append(names, strings.TrimSpace(name))
	}
	return strings.Join(names, ", ")
}

// Assemble turns the held extractions into Pending expense records, one per
// extraction, each with a fresh unique ID. No deduplication is performed:
// submitting the same extraction twice produces two distinct records.
func (s Submission) Assemble(ids extraction.IDGenerator) ([]*Expense, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	joined := s.JoinedEmployeeNames()
	records := make([]*Expense, 0, len(s.Extractions))
	for _, ext := range s.Extractions {
		records = append(records, &Expense{
			ID:            ids.Generate(),
			EmployeeName:  joined,
			TripName:      s.TripName,
			TripStartDate: s.TripStartDate,
			TripEndDate:   s.TripEndDate,
			Vendor:        ext.Fields.Vendor,
			Date:          ext.Fields.Date,
			Amount:        decimal.NewFromFloat(ext.Fields.TotalAmount),
			Currency:      ext.Fields.Currency,
			Category:      ext.Fields.Category,
			ReceiptFile:   NewReceiptFile(ext.File.Name, ext.File.MIMEType, ext.File.Data),
			Status:        StatusPending,
		})
	}
	return records, nil
}
