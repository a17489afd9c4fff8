package model

// StatelessValidator validates a value of type T without mutating any state
type StatelessValidator[T any] interface {
	Validate(value T) error
}

// StatelessValidatorFunc adapts a function to the StatelessValidator interface
type StatelessValidatorFunc[T any] func(value T) error

// Validate calls f(value)
func (f StatelessValidatorFunc[T]) Validate(value T) error {
	return f(value)
}
