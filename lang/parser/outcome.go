package parser

// Outcome is the bookkeeping every grammar rule threads through its
// sub-rules: the error it carries and how many tokens it consumed.
//
// The protocol is cooperative. Register folds a sub-rule's error into the
// caller but does not stop it, so every call site checks Err right after
// Register and returns before using the value.
type Outcome struct {
	Err              *Error
	LastAdvanceCount int
	AdvanceCount     int
	// ReverseCount is set by a failed TryRegister and must be handed to
	// Cursor.Retreat before the next grammar call.
	ReverseCount int
}

// Result is an Outcome carrying the value a rule produced.
type Result[T any] struct {
	Outcome
	Value T
}

func newResult[T any]() *Result[T] {
	return &Result[T]{}
}

// RegisterAdvance records one consumed token.
func (o *Outcome) RegisterAdvance() {
	o.LastAdvanceCount = 1
	o.AdvanceCount++
}

// Register folds sub into o and returns sub's value, which is the zero value
// when sub failed.
func Register[T any](o *Outcome, sub *Result[T]) T {
	o.LastAdvanceCount = sub.AdvanceCount
	o.AdvanceCount += sub.AdvanceCount
	if sub.Err != nil {
		o.Err = sub.Err
	}
	return sub.Value
}

// TryRegister is the speculative Register. When sub failed it records the
// distance to rewind in o.ReverseCount, leaves o.Err alone and reports false.
func TryRegister[T any](o *Outcome, sub *Result[T]) (T, bool) {
	if sub.Err != nil {
		o.ReverseCount = sub.AdvanceCount
		var zero T
		return zero, false
	}
	return Register(o, sub), true
}

func (r *Result[T]) Success(v T) *Result[T] {
	r.Value = v
	return r
}

// Failure records err unless r already holds an error and has consumed
// tokens. A result that has not advanced always takes the newest error.
func (r *Result[T]) Failure(err *Error) *Result[T] {
	if r.Err == nil || r.AdvanceCount == 0 {
		r.Err = err
	}
	return r
}
