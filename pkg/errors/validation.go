package errors

import (
	"math"
	"strings"
	"unicode"

	"github.com/matzehuels/flowbreak/pkg/elastic"
)

// ValidateSequence checks a sequence before it is handed to a breaker.
//
// Rules:
//   - at least one element
//   - no negative box or glue widths, no negative shrink
//   - footnote bodies only on boxes, with the same rules applied inside
//
// Negative stretch is allowed; ragged-right patterns depend on it.
func ValidateSequence(elems []elastic.Element) error {
	if len(elems) == 0 {
		return New(ErrCodeInvalidSequence, "sequence is empty")
	}
	return validateElements(elems, "element")
}

func validateElements(elems []elastic.Element, what string) error {
	for i, e := range elems {
		switch e.Kind {
		case elastic.KindBox, elastic.KindGlue, elastic.KindPenalty:
		default:
			return New(ErrCodeInvalidSequence, "%s %d has unknown kind %d", what, i, int(e.Kind))
		}
		if e.Kind != elastic.KindPenalty && e.Width < 0 {
			return New(ErrCodeInvalidSequence, "%s %d (%s) has negative width", what, i, e)
		}
		if e.Shrink < 0 {
			return New(ErrCodeInvalidSequence, "%s %d (%s) has negative shrink", what, i, e)
		}
		if len(e.Footnotes) == 0 {
			continue
		}
		if !e.IsBox() {
			return New(ErrCodeInvalidSequence, "%s %d (%s) cites footnotes but is not a box", what, i, e)
		}
		for _, body := range e.Footnotes {
			if err := validateElements(body, "footnote element"); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateThreshold checks an adjustment ratio threshold. It must be a
// finite number of at least zero.
func ValidateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return New(ErrCodeInvalidInput, "threshold must be a finite number")
	}
	if threshold < 0 {
		return New(ErrCodeInvalidInput, "threshold must not be negative (got %g)", threshold)
	}
	return nil
}

// ValidateWidth checks a line width.
func ValidateWidth(width int) error {
	if width <= 0 {
		return New(ErrCodeInvalidInput, "width must be positive (got %d)", width)
	}
	return nil
}

// ValidatePage checks one page description: a positive height and a
// non-negative inline size and column count.
func ValidatePage(height, width, columns int) error {
	if height <= 0 {
		return New(ErrCodeInvalidGeometry, "page height must be positive (got %d)", height)
	}
	if width < 0 {
		return New(ErrCodeInvalidGeometry, "page width must not be negative (got %d)", width)
	}
	if columns < 0 {
		return New(ErrCodeInvalidGeometry, "column count must not be negative (got %d)", columns)
	}
	return nil
}

// ValidateKey validates a cache key or namespace for safety. Keys end up in
// file names and database keys, so path components are rejected.
//
// Validation rules:
//   - Key cannot be empty
//   - Maximum length of 256 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..) or separators
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "key cannot be empty")
	}

	const maxKeyLength = 256
	if len(key) > maxKeyLength {
		return New(ErrCodeInvalidKey, "key too long (max %d characters)", maxKeyLength)
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "key contains invalid characters")
		}
	}

	if strings.Contains(key, "..") {
		return New(ErrCodeInvalidKey, "key cannot contain path traversal sequences (..)")
	}
	if strings.ContainsAny(key, "/\\") {
		return New(ErrCodeInvalidKey, "key cannot contain path separators")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL uses one of the allowed schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use one of the schemes %s", strings.Join(schemes, ", "))
}
