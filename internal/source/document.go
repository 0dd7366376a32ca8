package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"code.sajari.com/docconv"
	"github.com/dslipak/pdf"
)

// Document is the raw text recovered from a binary document.
type Document struct {
	Text  string
	Pages int
}

// DocumentExtractor recovers text from a binary document. Implementations
// classify failures with ErrCorruptedDocument or ErrEncryptedDocument where
// they can.
type DocumentExtractor interface {
	ExtractText(ctx context.Context, data []byte) (Document, error)
}

// PDFExtractor reads PDF documents.
type PDFExtractor struct{}

func (PDFExtractor) ExtractText(ctx context.Context, data []byte) (Document, error) {
	return runBounded(ctx, func() (Document, error) {
		return readPDF(data)
	})
}

func readPDF(data []byte) (Document, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Document{}, classifyPDFError(err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return Document{}, classifyPDFError(err)
	}

	text, err := io.ReadAll(plain)
	if err != nil {
		return Document{}, classifyPDFError(err)
	}

	return Document{Text: string(text), Pages: reader.NumPage()}, nil
}

func classifyPDFError(err error) error {
	if errors.Is(err, pdf.ErrInvalidPassword) {
		return fmt.Errorf("%w: %v", ErrEncryptedDocument, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "password"), strings.Contains(msg, "encrypt"):
		return fmt.Errorf("%w: %v", ErrEncryptedDocument, err)
	case strings.Contains(msg, "malformed"), strings.Contains(msg, "invalid"),
		strings.Contains(msg, "not a pdf"), strings.Contains(msg, "missing"):
		return fmt.Errorf("%w: %v", ErrCorruptedDocument, err)
	default:
		return err
	}
}

// DocxExtractor reads Office Open XML documents. Page count is not known.
type DocxExtractor struct{}

func (DocxExtractor) ExtractText(ctx context.Context, data []byte) (Document, error) {
	return runBounded(ctx, func() (Document, error) {
		text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
		if err != nil {
			return Document{}, fmt.Errorf("%w: %v", ErrCorruptedDocument, err)
		}
		return Document{Text: text}, nil
	})
}

type extraction struct {
	doc Document
	err error
}

// runBounded runs fn in its own goroutine so that a slow parser cannot hold
// the caller past its context deadline. The goroutine is left to finish on
// its own when the context wins. Parser panics are reported as corruption.
func runBounded(ctx context.Context, fn func() (Document, error)) (Document, error) {
	done := make(chan extraction, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- extraction{err: fmt.Errorf("%w: %v", ErrCorruptedDocument, r)}
			}
		}()
		doc, err := fn()
		done <- extraction{doc: doc, err: err}
	}()

	select {
	case <-ctx.Done():
		return Document{}, ctx.Err()
	case res := <-done:
		return res.doc, res.err
	}
}
