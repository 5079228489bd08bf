package expense

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/RNRequiem/Contabilidad/internal/extraction"
)

var (
	// ErrNotFound indicates no record with the given ID exists.
	ErrNotFound = errors.New("expense record not found")

	// ErrNotPending indicates a status transition on a record that already
	// left the Pending state. The only valid transitions are
	// Pending→Approved and Pending→Rejected.
	ErrNotPending = errors.New("expense record is not pending")

	// ErrInvalidStatus indicates a transition target outside
	// {Approved, Rejected}.
	ErrInvalidStatus = errors.New("invalid target status")
)

// Service drives the extraction, submission and review flows over a record
// store and the extraction seam.
type Service struct {
	store     Store
	extractor extraction.Extractor
	ids       extraction.IDGenerator
}

// NewService creates a Service with the default UUID generator.
func NewService(store Store, extractor extraction.Extractor) *Service {
	return NewServiceWithDeps(store, extractor, extraction.UUIDGenerator{})
}

// NewServiceWithDeps creates a Service with a custom ID generator for testing.
func NewServiceWithDeps(store Store, extractor extraction.Extractor, ids extraction.IDGenerator) *Service {
	return &Service{
		store:     store,
		extractor: extractor,
		ids:       ids,
	}
}

// ExtractReceipts runs a settle-all batch extraction over the selected files.
// Partial failure keeps whichever extractions succeeded; per-file failures
// are logged and reported in the result, never raised as a hard stop.
func (s *Service) ExtractReceipts(files []extraction.File) (*extraction.BatchResult, error) {
	result, err := extraction.ExtractAll(s.extractor, s.ids, files)
	if err != nil {
		return nil, err
	}
	for _, failure := range result.Failures {
		slog.Error("Failed to extract receipt",
			"file", failure.File,
			"reason", failure.Reason,
			"error", failure.Err,
		)
	}
	if n := result.FailedCount(); n > 0 {
		slog.Warn("Batch extraction finished with failures",
			"failed", n,
			"succeeded", len(result.Extractions),
		)
	}
	return result, nil
}

// SubmitExpenses validates the submission, assembles one Pending record per
// held extraction and prepends the batch to the collection, newest first.
func (s *Service) SubmitExpenses(sub Submission) ([]*Expense, error) {
	batch, err := sub.Assemble(s.ids)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.List()
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	records := make([]*Expense, 0, len(batch)+len(existing))
	records = append(records, batch...)
	records = append(records, existing...)

	if err := s.store.ReplaceAll(records); err != nil {
		return nil, fmt.Errorf("saving expenses: %w", err)
	}

	slog.Info("Submitted expense batch",
		"records", len(batch),
		"trip", sub.TripName,
		"employees", sub.JoinedEmployeeNames(),
	)
	return batch, nil
}

// ListExpenses returns the records satisfying the filter along with their
// monetary total.
func (s *Service) ListExpenses(f Filter) ([]*Expense, error) {
	records, err := s.store.List()
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	return Apply(records, f), nil
}

// GetExpense retrieves one record by ID.
func (s *Service) GetExpense(id string) (*Expense, error) {
	records, err := s.store.List()
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	for _, e := range records {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, ErrNotFound
}

// SetStatus applies an Approved/Rejected decision to exactly one record.
// The Pending precondition is enforced here, not trusted to the caller; all
// other records and the collection order are untouched.
func (s *Service) SetStatus(id string, status Status) (*Expense, error) {
	if status != StatusApproved && status != StatusRejected {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	records, err := s.store.List()
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	var updated *Expense
	for i, e := range records {
		if e.ID != id {
			continue
		}
		if e.Status != StatusPending {
			return nil, fmt.Errorf("%w: %s is %s", ErrNotPending, id, e.Status)
		}
		changed := *e
		changed.Status = status
		records[i] = &changed
		updated = &changed
		break
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	if err := s.store.ReplaceAll(records); err != nil {
		return nil, fmt.Errorf("saving expenses: %w", err)
	}

	slog.Info("Updated expense status", "id", id, "status", status)
	return updated, nil
}

// FilterOptions returns the distinct employee and trip names derived fresh
// from the current record collection.
func (s *Service) FilterOptions() (employees []string, trips []string, err error) {
	records, err := s.store.List()
	if err != nil {
		return nil, nil, fmt.Errorf("listing expenses: %w", err)
	}
	return EmployeeNames(records), TripNames(records), nil
}

// ReceiptPreview renders the receipt of a record as an inline-displayable
// PNG (see preview.go).
func (s *Service) ReceiptPreview(id string) ([]byte, string, error) {
	e, err := s.GetExpense(id)
	if err != nil {
		return nil, "", err
	}
	return RenderPreview(e.ReceiptFile)
}
