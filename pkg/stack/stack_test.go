package stack

import "testing"

func assertPop[T comparable](t *testing.T, s *Stack[T], want *T) {
	got := s.Pop()
	if want == nil && got == nil {
		return
	}
	if want != nil && got != nil && *want == *got {
		return
	}
	t.Fatalf("Expected top of stack to be ‘%+v’ but got ‘%+v’", want, got)
}

func TestPushPop(t *testing.T) {
	x := 1
	y := 69
	z := 420
	s := New[int](0)
	s.Push(x)
	s.Push(y)
	s.Push(z)
	assertPop(t, &s, &z)
	assertPop(t, &s, &y)
	assertPop(t, &s, &x)
	assertPop(t, &s, nil)
}

func TestPeek(t *testing.T) {
	s := New[string](4)
	if s.Peek() != nil {
		t.Fatalf("Expected an empty stack to peek nil")
	}
	s.Push("a")
	s.Push("b")
	if p := s.Peek(); p == nil || *p != "b" {
		t.Fatalf("Expected top of stack to be ‘b’ but got ‘%+v’", p)
	}
	s.Pop()
	if p := s.Peek(); p == nil || *p != "a" {
		t.Fatalf("Expected top of stack to be ‘a’ but got ‘%+v’", p)
	}
}

func TestTopIs(t *testing.T) {
	s := New[int](0)
	if s.TopIs(1) {
		t.Fatalf("Expected an empty stack to match nothing")
	}
	s.Push(1)
	s.Push(69)
	if !s.TopIs(69) {
		t.Fatalf("Expected top of stack to be ‘69’")
	}
	if s.TopIs(1) {
		t.Fatalf("Expected top of stack to not be ‘1’")
	}
}
