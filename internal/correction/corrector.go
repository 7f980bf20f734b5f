package correction

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Request is what an Invoker sends to the model.
type Request struct {
	System     string
	User       string
	SchemaName string
	Schema     map[string]any
}

// Invoker performs exactly one model call and returns the raw content.
// Implementations must not retry.
type Invoker interface {
	Invoke(ctx context.Context, req Request) (string, error)
}

// Outcome tells which branch produced the analysis.
type Outcome string

const (
	OutcomeStrict   Outcome = "strict"
	OutcomeRepaired Outcome = "repaired"
	OutcomeDefault  Outcome = "default"
)

// Resolution is a valid analysis together with how it was obtained. Issues
// holds the strict validation problems when the outcome is not strict.
type Resolution struct {
	Analysis Analysis
	Outcome  Outcome
	Issues   []string
	Raw      string
}

// Resolve runs parse, strict validation, repair and default in that order.
// The only error it returns is *MalformedResponseError.
func Resolve(raw string) (Resolution, error) {
	doc, err := Parse(raw)
	if err != nil {
		return Resolution{}, err
	}

	analysis, err := Validate(doc)
	if err == nil {
		return Resolution{Analysis: analysis, Outcome: OutcomeStrict, Raw: raw}, nil
	}

	var issues []string
	var sve *SchemaValidationError
	if errors.As(err, &sve) {
		issues = sve.Issues
	}

	if repaired, rerr := Validate(Repair(doc)); rerr == nil {
		return Resolution{Analysis: repaired, Outcome: OutcomeRepaired, Issues: issues, Raw: raw}, nil
	}
	return Resolution{Analysis: DefaultAnalysis(), Outcome: OutcomeDefault, Issues: issues, Raw: raw}, nil
}

// Corrector wires the prompt builder, one model call and Resolve.
type Corrector struct {
	invoker Invoker
	timeout time.Duration
}

// NewCorrector returns a Corrector. A zero timeout leaves the call bounded by
// the caller's context only.
func NewCorrector(invoker Invoker, timeout time.Duration) *Corrector {
	return &Corrector{invoker: invoker, timeout: timeout}
}

// Correct analyses one submission. Errors are ErrInvalidInput,
// *ModelInvocationError or *MalformedResponseError.
func (c *Corrector) Correct(ctx context.Context, in PromptInput) (Resolution, error) {
	if err := in.Validate(); err != nil {
		return Resolution{}, err
	}
	prompts := BuildPrompts(in)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	raw, err := c.invoker.Invoke(ctx, Request{
		System:     prompts.System,
		User:       prompts.User,
		SchemaName: SchemaName,
		Schema:     ResponseSchema(),
	})
	if err != nil {
		var mie *ModelInvocationError
		if errors.As(err, &mie) {
			return Resolution{}, err
		}
		return Resolution{}, &ModelInvocationError{Err: err}
	}
	if strings.TrimSpace(raw) == "" {
		return Resolution{}, &ModelInvocationError{Err: ErrEmptyResponse}
	}
	return Resolve(raw)
}
