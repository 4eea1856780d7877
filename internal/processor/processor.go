package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"filesolved/internal/core/domain"
)

// Processor produces the output artifact for one order. inputPath is the
// uploaded file on disk; outputBase is the path prefix the artifact must be
// written under (the processor appends its own suffix and extension). It
// returns the full path of the artifact it wrote.
type Processor interface {
	Execute(ctx context.Context, inputPath, outputBase string, order *domain.Order) (string, error)
}

// Func adapts a plain function to the Processor interface.
type Func func(ctx context.Context, inputPath, outputBase string, order *domain.Order) (string, error)

func (f Func) Execute(ctx context.Context, inputPath, outputBase string, order *domain.Order) (string, error) {
	return f(ctx, inputPath, outputBase, order)
}

// Registry maps service ids to processors. Unknown ids resolve to a generic
// passthrough so new catalog entries degrade gracefully instead of failing.
type Registry struct {
	byService map[string]Processor
	fallback  Processor
}

func NewRegistry() *Registry {
	return &Registry{
		byService: make(map[string]Processor),
		fallback:  Func(genericProcess),
	}
}

// Register binds a processor to one or more service ids.
func (r *Registry) Register(p Processor, serviceIDs ...string) {
	for _, id := range serviceIDs {
		r.byService[id] = p
	}
}

// Resolve returns the processor for a service id, falling back to the
// generic processor when no specific one is registered.
func (r *Registry) Resolve(serviceID string) Processor {
	if p, ok := r.byService[serviceID]; ok {
		return p
	}
	return r.fallback
}

// Builtin returns a registry with every production processor wired.
func Builtin() *Registry {
	r := NewRegistry()

	r.Register(Func(convertPDFToWord), "pdf_to_word")
	r.Register(copyTo(".pdf"), "word_to_pdf", "jpg_to_pdf", "excel_to_pdf")
	r.Register(Func(extractPDFContent), "pdf_to_jpg")
	r.Register(copyTo("_compressed.pdf"), "pdf_compress")
	r.Register(copyTo("_merged.pdf"), "pdf_merge")
	r.Register(copyTo("_split.pdf"), "pdf_split")
	r.Register(copyTo("_rotated.pdf"), "pdf_rotate")
	r.Register(copyTo("_protected.pdf"), "pdf_password_protect")
	r.Register(copyTo("_watermarked.pdf"), "watermark_add")

	r.Register(Func(performOCR), "ocr_pdf", "ocr_image")
	r.Register(Func(cleanupScan), "document_scan_cleanup")

	r.Register(Func(resizeImage), "image_resize")
	r.Register(Func(compressImage), "image_compress")

	r.Register(Func(sendFax), "fax_domestic", "fax_international", "fax_hipaa", "fax_legal")
	r.Register(Func(secureShred), "secure_shred_basic", "secure_shred_gdpr", "secure_shred_hipaa")
	r.Register(Func(prepareGrievancePackage),
		"grievance_report", "grievance_union", "eeoc_complaint", "foia_request")
	r.Register(Func(processBundle),
		"emergency_bundle_basic", "emergency_bundle_pro",
		"legal_bundle", "medical_bundle", "business_bundle")

	return r
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

// writeArtifact writes data to a temp file in the target directory and
// renames it into place, so an interrupted write never leaves a partial
// artifact at the final path.
func writeArtifact(path string, data []byte) (string, error) {
	if err := ensureDir(path); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp artifact: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("chmod artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("publish artifact: %w", err)
	}
	return path, nil
}

func copyArtifact(inputPath, outputPath string) (string, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return writeArtifact(outputPath, data)
}

// copyTo builds a processor that copies the input to outputBase+suffix.
func copyTo(suffix string) Processor {
	return Func(func(ctx context.Context, inputPath, outputBase string, _ *domain.Order) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return copyArtifact(inputPath, outputBase+suffix)
	})
}
