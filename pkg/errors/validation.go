package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateRadii validates a sequence of circle radii before packing.
// Zero is a valid radius; negative, NaN, and infinite values are rejected.
// The index of the first offending value is included in the message.
func ValidateRadii(radii []float64) error {
	for i, r := range radii {
		if math.IsNaN(r) {
			return New(ErrCodeInvalidRadius, "radius at index %d is NaN", i)
		}
		if math.IsInf(r, 0) {
			return New(ErrCodeInvalidRadius, "radius at index %d is infinite", i)
		}
		if r < 0 {
			return New(ErrCodeInvalidRadius, "radius at index %d is negative: %v", i, r)
		}
	}
	return nil
}

// ValidateSectorName validates a sector name for safety and correctness.
// Sector names end up in file paths (exports) and SVG text, so control
// characters and path separators are rejected.
func ValidateSectorName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDataset, "sector name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidDataset, "sector name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "sector name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidDataset, "sector name cannot contain path separators")
	}

	return nil
}

// ValidateDatasetPath validates a dataset file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateDatasetPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "dataset path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateOutputPath validates an output file path for rendering or export.
// The same character rules as ValidateDatasetPath apply, plus the path must
// not name a directory (it must have a final path element).
func ValidateOutputPath(path string) error {
	if err := ValidateDatasetPath(path); err != nil {
		return err
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path cannot be a directory: %q", path)
	}
	return nil
}
