package glyphforge

import (
	"errors"
	"fmt"

	"github.com/gogpu/glyphforge/internal/stroke"
	"github.com/gogpu/glyphforge/rng"
	"github.com/gogpu/glyphforge/skeleton"
	"github.com/gogpu/glyphforge/style"
	"github.com/gogpu/glyphforge/template"
)

// Errors raised by the pipeline stages, re-exported so callers can match
// them with errors.Is without importing the stage packages.
var (
	ErrInvalidDomainPath           = rng.ErrInvalidDomainPath
	ErrUnknownTemplateID           = template.ErrUnknownTemplateID
	ErrInvalidTemplate             = template.ErrInvalidTemplate
	ErrDegenerateSkeleton          = skeleton.ErrDegenerateSkeleton
	ErrSkeletonGenerationExhausted = skeleton.ErrSkeletonGenerationExhausted
	ErrUnresolvedSelfIntersection  = stroke.ErrUnresolvedSelfIntersection
	ErrInvalidConfig               = style.ErrInvalidConfig
)

// ErrAlphabetGenerationFailed is matched by every
// AlphabetGenerationFailedError.
var ErrAlphabetGenerationFailed = errors.New("glyphforge: alphabet generation failed")

// AlphabetGenerationFailedError reports the letter that could not be built.
type AlphabetGenerationFailedError struct {
	Letter   string
	Attempts int
	Cause    error
}

func (e *AlphabetGenerationFailedError) Error() string {
	return fmt.Sprintf("glyphforge: letter %s failed after %d attempt(s): %v", e.Letter, e.Attempts, e.Cause)
}

// Unwrap exposes both ErrAlphabetGenerationFailed and the cause.
func (e *AlphabetGenerationFailedError) Unwrap() []error {
	return []error{ErrAlphabetGenerationFailed, e.Cause}
}

// retryable reports whether a letter attempt may be repeated with fresh
// draws.
func retryable(err error) bool {
	return errors.Is(err, ErrUnresolvedSelfIntersection) ||
		errors.Is(err, ErrSkeletonGenerationExhausted)
}
