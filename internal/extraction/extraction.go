package extraction

import "github.com/google/uuid"

// File is a receipt file as selected by the user. Data holds the raw bytes;
// encoding/json transports them base64-encoded.
type File struct {
	Name     string `json:"name"`
	MIMEType string `json:"type"`
	Data     []byte `json:"content"`
}

// Fields contains the structured information extracted from a receipt.
// Unavailable fields come back as empty strings, or 0 for the amount. The
// user may hand-edit any field before submission.
type Fields struct {
	Vendor      string  `json:"vendor"`
	Date        string  `json:"date"` // YYYY-MM-DD
	TotalAmount float64 `json:"totalAmount"`
	Currency    string  `json:"currency"`
	Category    string  `json:"category"`
}

// Result pairs a successful extraction with its originating file. The ID is
// assigned by the batch orchestrator so the extraction can be referenced and
// edited before submission.
type Result struct {
	ID     string `json:"id"`
	File   File   `json:"file"`
	Fields Fields `json:"fields"`
}

// Extractor defines the single external-I/O seam of the system.
type Extractor interface {
	// Extract analyzes one receipt file and returns the extracted fields.
	// Failures are classified by ClassifyError.
	Extract(file File) (*Fields, error)
	// Close releases client resources.
	Close() error
}

// IDGenerator generates unique IDs for extractions and expense records.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator generates random UUID identities.
type UUIDGenerator struct{}

func (UUIDGenerator) Generate() string {
	return uuid.NewString()
}

// unconfigured is the extractor wired when no API credential is present.
// Every call reports the missing credential instead of crashing the process.
type unconfigured struct{}

// Unconfigured returns an Extractor that fails every extraction with
// ErrMissingCredential.
func Unconfigured() Extractor {
	return unconfigured{}
}

func (unconfigured) Extract(File) (*Fields, error) {
	return nil, ErrMissingCredential
}

func (unconfigured) Close() error {
	return nil
}
