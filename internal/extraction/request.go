package extraction

import (
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// extractionPrompt is the fixed instruction sent with every receipt. The
// model is also constrained by a response schema (see gemini.go), so the
// JSON-only rule here is belt and suspenders.
const extractionPrompt = `Analyze the receipt image or text and extract the following information as JSON.
- The vendor or store name.
- The transaction date in YYYY-MM-DD format.
- The total transaction amount as a number.
- The currency symbol or code (e.g. $, MXN, USD).
- A suggested category for the expense (e.g. Food, Transport, Lodging, Other).

If any piece of information is not available, use an empty string, or 0 for the amount.
Make sure the result is only the JSON object.`

const pdfPromptPrefix = "This file is a PDF, treat it as an image. "

const xmlPromptPrefix = "Analyze the following XML invoice content and extract the required information.\n\n"

// SupportedType reports whether a MIME type can be dispatched by the request
// builder. The accepted-extension list on the upload surface is advisory;
// this dispatch is the authoritative gate.
func SupportedType(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	return strings.HasPrefix(mimeType, "image/") ||
		mimeType == "application/pdf" ||
		mimeType == "application/xml" ||
		mimeType == "text/xml"
}

// buildParts produces the content parts for the generation call based on the
// file's MIME type. Unsupported types are rejected locally, before any
// network activity.
func buildParts(f File) ([]genai.Part, error) {
	mimeType := strings.ToLower(strings.TrimSpace(f.MIMEType))

	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return []genai.Part{
			genai.Blob{MIMEType: mimeType, Data: f.Data},
			genai.Text(extractionPrompt),
		}, nil
	case mimeType == "application/pdf":
		return []genai.Part{
			genai.Blob{MIMEType: mimeType, Data: f.Data},
			genai.Text(pdfPromptPrefix + extractionPrompt),
		}, nil
	case mimeType == "application/xml" || mimeType == "text/xml":
		return []genai.Part{
			genai.Text(xmlPromptPrefix + string(f.Data) + "\n\n" + extractionPrompt),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, f.MIMEType)
	}
}
