package mutation

import (
	"context"
	"net/http"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/estaraht/admin-dashboard/internal/core/services/listview"
)

// CallFunc is one backend mutation.
type CallFunc func(ctx context.Context) (out.Result, error)

// Dispatcher issues mutations against one repository of T and keeps the
// owning list of R in step: a full re-fetch after success, or a local
// patch plus a stale mark for optimistic updates. R differs from T when
// the list shows joined rows.
type Dispatcher[T, R any] struct {
	repo   out.Repository[T]
	list   *listview.Controller[R]
	logger out.LoggerPort
}

func New[T, R any](repo out.Repository[T], list *listview.Controller[R], logger out.LoggerPort) *Dispatcher[T, R] {
	return &Dispatcher[T, R]{
		repo: repo,
		list: list,
		logger: logger.WithModule("Mutation").WithFields(out.LogFields{
			"resource": repo.Resource(),
		}),
	}
}

func (d *Dispatcher[T, R]) Create(ctx context.Context, body interface{}) ([]R, error) {
	return d.Run(ctx, "create", func(ctx context.Context) (out.Result, error) {
		return d.repo.Create(ctx, body)
	})
}

func (d *Dispatcher[T, R]) Update(ctx context.Context, id string, body interface{}) ([]R, error) {
	return d.Run(ctx, "update", func(ctx context.Context) (out.Result, error) {
		return d.repo.Update(ctx, id, body)
	})
}

// Delete asks for confirmation first; a refusal makes no backend call.
func (d *Dispatcher[T, R]) Delete(ctx context.Context, id, prompt string, confirm out.ConfirmPort) ([]R, error) {
	if confirm == nil || !confirm.Confirm(ctx, prompt) {
		d.logger.Debug("mutation.delete.not_confirmed", out.LogFields{
			"id": id,
		})
		return nil, domain.ErrNotConfirmed
	}

	return d.Run(ctx, "delete", func(ctx context.Context) (out.Result, error) {
		return d.repo.Delete(ctx, id)
	})
}

// Run performs call and re-fetches the list after it succeeds. A failed
// re-fetch is logged; the mutation itself still counts as done.
func (d *Dispatcher[T, R]) Run(ctx context.Context, name string, call CallFunc) ([]R, error) {
	if err := d.call(ctx, name, call); err != nil {
		return nil, err
	}

	if err := d.list.Load(ctx); err != nil {
		d.logger.Error("mutation.refetch.failed", out.LogFields{
			"operation": name,
			"error":     err.Error(),
		})
	}
	return d.list.Items(), nil
}

// UpdateOptimistic patches the matching local record as soon as the
// backend accepts the update, then marks the list stale so the next read
// re-fetches in the background of the user's flow.
func (d *Dispatcher[T, R]) UpdateOptimistic(ctx context.Context, id string, body interface{}, match func(R) bool, apply func(*R)) ([]R, error) {
	err := d.call(ctx, "update", func(ctx context.Context) (out.Result, error) {
		return d.repo.Update(ctx, id, body)
	})
	if err != nil {
		return nil, err
	}

	if !d.list.Patch(match, apply) {
		d.logger.Warn("mutation.patch.missing", out.LogFields{
			"id": id,
		})
	}
	d.list.Invalidate()
	return d.list.Items(), nil
}

func (d *Dispatcher[T, R]) call(ctx context.Context, name string, call CallFunc) error {
	result, err := call(ctx)
	if err != nil {
		d.logger.Error("mutation.failed", out.LogFields{
			"operation": name,
			"error":     err.Error(),
		})
		return err
	}

	if !result.OK() {
		message := Rejection(result, name)
		d.logger.Error("mutation.rejected", out.LogFields{
			"operation": name,
			"message":   message,
		})
		return domain.NewHTTPError(http.StatusUnprocessableEntity, message)
	}

	d.logger.Info("mutation.success", out.LogFields{
		"operation": name,
	})
	return nil
}

// Rejection is the user-facing message of an envelope with success=false.
func Rejection(result out.Result, operation string) string {
	if result.Message != "" {
		return result.Message
	}
	if result.Error != "" {
		return result.Error
	}
	return "Failed to " + operation
}
