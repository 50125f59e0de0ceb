// Package results provides a discriminated result type for service operations.
//
// A service returns an OperationResult for domain outcomes and reserves its
// plain error return for infrastructure failures.
package results

// OperationResult carries either a success payload or a domain failure.
// Exactly one of Success and Failure is set on a populated result.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// SuccessResult wraps a success payload.
func SuccessResult[S any, F any](s S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &s}
}

// FailureResult wraps a domain failure.
func FailureResult[S any, F any](f F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &f}
}

// IsSuccess reports whether the result holds a success payload.
func (r OperationResult[S, F]) IsSuccess() bool {
	return r.Success != nil
}

// IsFailure reports whether the result holds a failure.
func (r OperationResult[S, F]) IsFailure() bool {
	return r.Failure != nil
}

// Map converts the success payload while keeping the failure untouched.
func Map[S any, T any, F any](r OperationResult[S, F], fn func(S) T) OperationResult[T, F] {
	switch {
	case r.Success != nil:
		return SuccessResult[T, F](fn(*r.Success))
	case r.Failure != nil:
		return FailureResult[T, F](*r.Failure)
	default:
		return OperationResult[T, F]{}
	}
}
