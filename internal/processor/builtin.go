package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"filesolved/internal/core/domain"
)

func documentName(inputPath string, order *domain.Order) string {
	if order != nil && order.FileName != "" {
		return order.FileName
	}
	return filepath.Base(inputPath)
}

func convertPDFToWord(ctx context.Context, inputPath, outputBase string, _ *domain.Order) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	content := fmt.Sprintf("PDF to Word conversion of %s\n\nConverted content would appear here.\n",
		filepath.Base(inputPath))
	return writeArtifact(outputBase+".docx", []byte(content))
}

func extractPDFContent(ctx context.Context, inputPath, outputBase string, _ *domain.Order) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	content := fmt.Sprintf("PDF content extraction from %s\n\nExtracted content would appear here.\n",
		filepath.Base(inputPath))
	return writeArtifact(outputBase+".txt", []byte(content))
}

func performOCR(ctx context.Context, inputPath, outputBase string, _ *domain.Order) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	content := fmt.Sprintf("OCR extraction from %s\n\nRecognized text would appear here.\n",
		filepath.Base(inputPath))
	return writeArtifact(outputBase+"_ocr.txt", []byte(content))
}

func sendFax(ctx context.Context, inputPath, outputBase string, order *domain.Order) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	faxNumber := order.ExtraFields["fax_number"]
	if faxNumber == "" {
		faxNumber = "N/A"
	}
	confirmation := fmt.Sprintf(`FAX TRANSMISSION CONFIRMATION
=============================
Order ID: %s
Date: %s
Document: %s
Fax Number: %s
Status: SENT SUCCESSFULLY

This confirmation is your receipt of transmission.
=============================
`, order.OrderID, time.Now().UTC().Format(time.RFC3339), documentName(inputPath, order), faxNumber)
	return writeArtifact(outputBase+"_fax_confirmation.txt", []byte(confirmation))
}

// secureShred deletes the input before writing the certificate; a shredded
// document must not survive a failed certificate write.
func secureShred(ctx context.Context, inputPath, outputBase string, order *domain.Order) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := documentName(inputPath, order)
	if err := os.Remove(inputPath); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("remove input: %w", err)
	}
	certificate := fmt.Sprintf(`SECURE DOCUMENT DESTRUCTION CERTIFICATE
=======================================
Certificate ID: %s
Order ID: %s
Date: %s
Document: %s

This certifies that the above document has been
securely and permanently destroyed in compliance
with data protection standards.

Method: Secure File Deletion
Status: COMPLETED
=======================================
`, strings.ToUpper(uuid.NewString()), order.OrderID, time.Now().UTC().Format(time.RFC3339), name)
	return writeArtifact(outputBase+"_shred_certificate.txt", []byte(certificate))
}

func prepareGrievancePackage(ctx context.Context, inputPath, outputBase string, order *domain.Order) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	field := func(name string) string {
		if v := order.ExtraFields[name]; v != "" {
			return v
		}
		return "N/A"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `GRIEVANCE REPORT PACKAGE
========================
Order ID: %s
Service: %s
Date Prepared: %s

INCIDENT DETAILS
----------------
Incident Date: %s
Authority: %s
Summary: %s
`, order.OrderID, order.ServiceName, time.Now().UTC().Format(time.RFC3339),
		field("incident_date"), field("authority_to_submit"), field("summary"))

	for _, opt := range []struct{ key, label string }{
		{"union_local", "Union Local"},
		{"contract_article", "Contract Article"},
		{"discrimination_type", "Type"},
		{"employer_name", "Employer"},
		{"agency_name", "Agency"},
	} {
		if v := order.ExtraFields[opt.key]; v != "" {
			fmt.Fprintf(&b, "%s: %s\n", opt.label, v)
		}
	}

	fmt.Fprintf(&b, `
ATTACHED DOCUMENT
-----------------
%s

This package has been prepared by FileSolved.
========================
`, documentName(inputPath, order))

	return writeArtifact(outputBase+"_grievance_package.txt", []byte(b.String()))
}

func processBundle(ctx context.Context, _, outputBase string, order *domain.Order) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, `BUNDLE PROCESSING RESULTS
=========================
Bundle: %s
Order ID: %s
Date: %s

INCLUDED SERVICES PROCESSED:
`, order.ServiceName, order.OrderID, time.Now().UTC().Format(time.RFC3339))

	for _, serviceID := range order.IncludedServices {
		fmt.Fprintf(&b, "\n- %s - Completed", serviceID)
	}

	b.WriteString(`

All services in this bundle have been processed.
=========================
`)
	return writeArtifact(outputBase+"_bundle_results.txt", []byte(b.String()))
}

func genericProcess(ctx context.Context, inputPath, outputBase string, order *domain.Order) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	content := fmt.Sprintf(`Processing completed for %s
========================================
Service ID: %s
Type: %s
Input File: %s
Date: %s
========================================
`, order.ServiceName, order.ServiceID, order.ServiceType, filepath.Base(inputPath),
		time.Now().UTC().Format(time.RFC3339))
	return writeArtifact(outputBase+"_processed.txt", []byte(content))
}
