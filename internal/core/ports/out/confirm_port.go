package out

import "context"

// ConfirmPort answers a blocking yes/no prompt before a destructive action.
type ConfirmPort interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to ConfirmPort.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}
