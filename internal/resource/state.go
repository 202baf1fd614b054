package resource

import (
	"context"
	"encoding/json"
)

const defaultErrorMessage = "An error occurred"

// State is the observable result of an operation. Once Loading is false
// exactly one of Data and Error is set.
type State[T any] struct {
	Data    *T
	Loading bool
	Error   string
}

// Operation performs one remote read. It reports failures through
// State.Error instead of panicking or blocking forever.
type Operation[T any] func(ctx context.Context) State[T]

func Pending[T any]() State[T] {
	return State[T]{Loading: true}
}

func Success[T any](data T) State[T] {
	return State[T]{Data: &data}
}

func Failure[T any](err error) State[T] {
	msg := defaultErrorMessage
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return State[T]{Error: msg}
}

func (s State[T]) Ready() bool {
	return !s.Loading && s.Data != nil
}

func (s State[T]) Failed() bool {
	return !s.Loading && s.Error != ""
}

// Value returns the loaded data or the zero value.
func (s State[T]) Value() T {
	if s.Data == nil {
		var zero T
		return zero
	}
	return *s.Data
}

type stateJSON[T any] struct {
	Data    *T      `json:"data"`
	Loading bool    `json:"loading"`
	Error   *string `json:"error"`
}

func (s State[T]) MarshalJSON() ([]byte, error) {
	out := stateJSON[T]{Data: s.Data, Loading: s.Loading}
	if s.Error != "" {
		msg := s.Error
		out.Error = &msg
	}
	return json.Marshal(out)
}

func (s *State[T]) UnmarshalJSON(b []byte) error {
	var in stateJSON[T]
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	s.Data = in.Data
	s.Loading = in.Loading
	s.Error = ""
	if in.Error != nil {
		s.Error = *in.Error
	}
	return nil
}

// FromCall adapts an ordinary call into an Operation.
func FromCall[T any](call func(ctx context.Context) (T, error)) Operation[T] {
	return func(ctx context.Context) State[T] {
		data, err := call(ctx)
		if err != nil {
			return Failure[T](err)
		}
		return Success(data)
	}
}
