package exec

import "github.com/vinayprograms/asynckit/errors"

// Bundle is an immutable snapshot of an action plus its callbacks and
// delivery context. It is built once before launch and never mutated; the
// engine only reads from it until it drops its own references after a
// terminal state.
type Bundle[T any] struct {
	action      Action[T]
	onCompleted func(T)
	onError     func(error)
	deliverer   Deliverer
}

// NewBundle assembles a bundle. The action is required. Either callback
// may be nil, which means that outcome is silently dropped after the
// cancellation check. A nil deliverer selects the inline default.
func NewBundle[T any](action Action[T], onCompleted func(T), onError func(error), deliverer Deliverer) (Bundle[T], error) {
	if action == nil {
		return Bundle[T]{}, errors.InvalidConfig("nil action is not allowed")
	}
	if deliverer == nil {
		deliverer = Inline()
	}
	return Bundle[T]{
		action:      action,
		onCompleted: onCompleted,
		onError:     onError,
		deliverer:   deliverer,
	}, nil
}
