package correction

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResponse is wrapped by ModelInvocationError when the model answered
// without any content.
var ErrEmptyResponse = errors.New("model returned no content")

// ErrInvalidInput is returned before any model call when the submission cannot
// produce a meaningful prompt.
var ErrInvalidInput = errors.New("invalid correction input")

// ModelInvocationError means the model call itself failed: transport, auth,
// quota, timeout or an empty answer. It is fatal for the request.
type ModelInvocationError struct {
	Provider string
	Err      error
}

func (e *ModelInvocationError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("model invocation failed: %v", e.Err)
	}
	return fmt.Sprintf("model invocation failed (%s): %v", e.Provider, e.Err)
}

func (e *ModelInvocationError) Unwrap() error { return e.Err }

// MalformedResponseError means the model content is not parseable JSON. It is
// fatal for the request and no attempt is recorded.
type MalformedResponseError struct {
	Excerpt string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// SchemaValidationError lists every rule a candidate analysis breaks. It is
// recovered internally by repair or default and never reaches callers of
// Corrector.Correct.
type SchemaValidationError struct {
	Issues []string
}

func (e *SchemaValidationError) Error() string {
	return "analysis does not match schema: " + strings.Join(e.Issues, "; ")
}
