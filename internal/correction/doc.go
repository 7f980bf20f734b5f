// Package correction turns a student's dictation copy into a structured
// analysis: it builds the prompts, calls a schema-constrained model through
// an Invoker, then validates the reply strictly, repairs it heuristically, or
// falls back to a fixed default. Every step is pure except the Invoker call.
package correction
