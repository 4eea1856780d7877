package processor

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"filesolved/internal/core/domain"
)

const (
	defaultResizeWidth  = 1024
	compressJPEGQuality = 70
)

func resizeImage(ctx context.Context, inputPath, outputBase string, order *domain.Order) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	img, err := imaging.Open(inputPath, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}

	width := extraInt(order, "width")
	height := extraInt(order, "height")
	if width == 0 && height == 0 {
		width = defaultResizeWidth
	}
	img = imaging.Resize(img, width, height, imaging.Lanczos)

	outputPath := outputBase + "_resized" + outputExt(inputPath)
	if err := saveImage(img, outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}

func compressImage(ctx context.Context, inputPath, outputBase string, _ *domain.Order) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	img, err := imaging.Open(inputPath, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}

	outputPath := outputBase + "_compressed.jpg"
	if err := saveImage(img, outputPath, imaging.JPEGQuality(compressJPEGQuality)); err != nil {
		return "", err
	}
	return outputPath, nil
}

// cleanupScan straightens and sharpens a scanned page. Inputs that are not
// decodable images (scanned PDFs) are passed through unchanged.
func cleanupScan(ctx context.Context, inputPath, outputBase string, _ *domain.Order) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	outputPath := outputBase + "_cleaned.png"

	img, err := imaging.Open(inputPath, imaging.AutoOrientation(true))
	if err != nil {
		return copyArtifact(inputPath, outputPath)
	}

	img = imaging.Grayscale(img)
	img = imaging.AdjustContrast(img, 15)
	img = imaging.Sharpen(img, 0.8)

	if err := saveImage(img, outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}

// saveImage encodes to a temp file beside the target and renames it into
// place, same discipline as writeArtifact.
func saveImage(img image.Image, path string, opts ...imaging.EncodeOption) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("image format for %s: %w", filepath.Base(path), err)
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp image: %w", err)
	}
	if err := imaging.Encode(tmp, img, format, opts...); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encode image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close image: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("chmod image: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publish image: %w", err)
	}
	return nil
}

func extraInt(order *domain.Order, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(order.ExtraFields[key]))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func outputExt(inputPath string) string {
	ext := strings.ToLower(filepath.Ext(inputPath))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".tif", ".tiff", ".bmp":
		return ext
	default:
		return ".png"
	}
}
