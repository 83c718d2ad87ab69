package ports

import "context"

// ResponseGenerator produces free-form reply text from a prompt. Failures
// here are always recoverable: the responder substitutes a fixed fallback
// and never surfaces the error to the caller.
type ResponseGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
