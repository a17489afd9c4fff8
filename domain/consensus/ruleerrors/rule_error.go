package ruleerrors

import (
	"github.com/pkg/errors"
)

// These constants are used to identify a specific RuleError.
var (
	// ErrInvalidTimestamp indicates the header timestamp is before the
	// median timestamp of the preceding headers.
	ErrInvalidTimestamp = newRuleError("ErrInvalidTimestamp")

	// ErrInvalidTargetDifficulty indicates the target difficulty recorded in
	// the header does not match the value recomputed from history.
	ErrInvalidTargetDifficulty = newRuleError("ErrInvalidTargetDifficulty")

	// ErrAchievedDifficultyTooLow indicates the header's proof of work is
	// below its target difficulty.
	ErrAchievedDifficultyTooLow = newRuleError("ErrAchievedDifficultyTooLow")

	// ErrInvalidProofOfWork indicates the target difficulty could not be
	// computed from the historical samples.
	ErrInvalidProofOfWork = newRuleError("ErrInvalidProofOfWork")

	// ErrBalanceMismatch indicates the aggregate UTXO commitment does not
	// equal emission plus kernel excesses plus kernel offsets.
	ErrBalanceMismatch = newRuleError("ErrBalanceMismatch")

	// ErrStorageFailure indicates a chain storage read failed.
	ErrStorageFailure = newRuleError("ErrStorageFailure")

	// ErrCustom is used for collaborator failures that have no dedicated kind.
	ErrCustom = newRuleError("ErrCustom")
)

// RuleError identifies a rule violation. It is used to indicate that
// validation failed due to one of the horizon sync rules. The caller can use
// errors.Is with the sentinels above to determine the kind of failure.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

// Is reports whether target is a RuleError of the same kind
func (e RuleError) Is(target error) bool {
	var other RuleError
	if !errors.As(target, &other) {
		return false
	}
	return e.message == other.message
}

// Errorf returns a ruleError of the given kind, annotated with a formatted message
func Errorf(ruleError RuleError, format string, args ...interface{}) error {
	return errors.Wrapf(ruleError, format, args...)
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

// NewErrStorageFailure wraps a storage error. Only the message of the storage
// error is kept so that storage-internal types do not cross this boundary.
func NewErrStorageFailure(err error) error {
	return errors.WithStack(RuleError{
		message: ErrStorageFailure.message,
		inner:   errors.New(err.Error()),
	})
}

// NewErrCustom wraps an unclassified collaborator error
func NewErrCustom(err error) error {
	return errors.WithStack(RuleError{
		message: ErrCustom.message,
		inner:   errors.New(err.Error()),
	})
}

// NewErrBalanceMismatch returns an ErrBalanceMismatch for the given horizon height
func NewErrBalanceMismatch(horizonHeight uint64) error {
	return errors.WithStack(RuleError{
		message: ErrBalanceMismatch.message,
		inner: errors.Errorf("final state validation failed: the UTXO commitment did not equal "+
			"the expected emission at height %d", horizonHeight),
	})
}
