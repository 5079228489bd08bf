package expense

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
)

// ErrNoPreview indicates a receipt whose type cannot be rendered inline.
var ErrNoPreview = errors.New("receipt type cannot be previewed")

// RenderPreview produces an inline-displayable version of a receipt.
// Browser-native image types pass through unchanged; PDFs are rasterized to
// a PNG of their first page and HEIC photos are decoded to PNG. XML invoices
// and anything else have no preview, only a file-name placeholder client
// side.
func RenderPreview(file ReceiptFile) ([]byte, string, error) {
	data, err := file.Bytes()
	if err != nil {
		return nil, "", fmt.Errorf("decoding receipt content: %w", err)
	}

	mimeType := strings.ToLower(strings.TrimSpace(file.MIMEType))
	switch {
	case mimeType == "image/heic" || mimeType == "image/heif":
		pngData, err := heicToPNG(data)
		if err != nil {
			return nil, "", err
		}
		return pngData, "image/png", nil
	case strings.HasPrefix(mimeType, "image/"):
		return data, mimeType, nil
	case mimeType == "application/pdf":
		pngData, err := pdfToPNG(data)
		if err != nil {
			return nil, "", err
		}
		return pngData, "image/png", nil
	default:
		return nil, "", fmt.Errorf("%w: %s", ErrNoPreview, file.MIMEType)
	}
}

// pdfToPNG rasterizes the first page of a PDF. Receipts are almost always
// single page.
func pdfToPNG(pdfData []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF page: %w", err)
	}
	return encodePNG(img)
}

// heicToPNG decodes an HEIC/HEIF photo into PNG for browsers that cannot
// display the format natively.
func heicToPNG(data []byte) ([]byte, error) {
	img, err := heic.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding HEIC image: %w", err)
	}
	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}
