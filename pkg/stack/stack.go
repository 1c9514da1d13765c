// Package stack implements a generic last-in-first-out stack.
package stack

type Stack[T comparable] struct {
	items []T
}

// New returns an empty stack with room for n items before reallocating.
func New[T comparable](n int) Stack[T] {
	return Stack[T]{items: make([]T, 0, n)}
}

func (s *Stack[T]) Push(x T) {
	s.items = append(s.items, x)
}

// Peek returns a pointer to the top item, or nil when the stack is empty.
func (s Stack[T]) Peek() *T {
	if n := len(s.items); n > 0 {
		return &s.items[n-1]
	}
	return nil
}

// Pop removes and returns the top item, or nil when the stack is empty.
func (s *Stack[T]) Pop() *T {
	n := len(s.items)
	if n == 0 {
		return nil
	}
	top := s.items[n-1]
	s.items = s.items[:n-1]
	return &top
}

// TopIs reports whether the stack is nonempty with x on top.
func (s *Stack[T]) TopIs(x T) bool {
	top := s.Peek()
	return top != nil && *top == x
}
