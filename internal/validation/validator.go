package validation

import (
	"strings"

	"navprep/internal/domain"
)

// Limits bound the accepted request shape. They come from configuration;
// zero values fall back to the defaults below.
type Limits struct {
	MaterialMinLength int
	MaterialMaxLength int
	MaxCount          int
}

const (
	defaultMaterialMin = 100
	defaultMaterialMax = 50000
	defaultMaxCount    = 50
)

// Validator provides request validation functionality
type Validator struct {
	limits Limits
}

// NewValidator creates a new validator instance
func NewValidator(limits Limits) *Validator {
	if limits.MaterialMinLength <= 0 {
		limits.MaterialMinLength = defaultMaterialMin
	}
	if limits.MaterialMaxLength <= 0 {
		limits.MaterialMaxLength = defaultMaterialMax
	}
	if limits.MaxCount <= 0 {
		limits.MaxCount = defaultMaxCount
	}
	return &Validator{limits: limits}
}

// MaterialTooLarge reports whether the material exceeds the hard size cap.
// Oversized payloads get their own 413-style error instead of a field
// validation failure.
func (v *Validator) MaterialTooLarge(material string) *domain.DomainError {
	if len(material) > v.limits.MaterialMaxLength {
		return domain.NewContentTooLargeError(len(material), v.limits.MaterialMaxLength)
	}
	return nil
}

// ValidateGenerateRequest validates the generation request fields.
// Runs before any network call so invalid requests fail fast.
func (v *Validator) ValidateGenerateRequest(title, material, contentType string, count int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(title) == "" {
		errors = append(errors, domain.NewMissingFieldError("title"))
	} else if len(title) > 200 {
		errors = append(errors, domain.NewOutOfRangeError("title", len(title), 1, 200))
	}

	if strings.TrimSpace(material) == "" {
		errors = append(errors, domain.NewMissingFieldError("material"))
	} else if len(material) < v.limits.MaterialMinLength {
		errors = append(errors, domain.NewOutOfRangeError("material", len(material),
			v.limits.MaterialMinLength, v.limits.MaterialMaxLength))
	}

	if !domain.ContentType(contentType).IsValid() {
		errors = append(errors, domain.NewInvalidFormatError("type", contentType))
	}

	if count < 0 || count > v.limits.MaxCount {
		errors = append(errors, domain.NewOutOfRangeError("count", count, 1, v.limits.MaxCount))
	}

	return errors
}

// ValidateTextRequest validates NAVADMIN formatting and summarization input.
func (v *Validator) ValidateTextRequest(material string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(material) == "" {
		errors = append(errors, domain.NewMissingFieldError("material"))
	}
	return errors
}
