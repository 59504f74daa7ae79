package dfs

import (
	"sync"
)

import (
	"github.com/timtadh/parsemis-sub001/types/digraph"
)

// Stack is the work list shared by the workers. A node popped from the
// stack is pending until Done is called for it. The search is over once
// the stack is empty and nothing is pending: every blocked Pop then
// returns nil.
type Stack struct {
	mu      sync.Mutex
	cond    *sync.Cond
	stack   []*digraph.Node
	pending int
	closed  bool
}

func NewStack() *Stack {
	s := &Stack{
		stack: make([]*digraph.Node, 0, 10),
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *Stack) Push(n *digraph.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stack = append(s.stack, n)
	s.cond.Signal()
}

// Pop blocks until a node is available. It returns nil once the stack is
// closed or drained.
func (s *Stack) Pop() *digraph.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.stack) == 0 && s.pending > 0 && !s.closed {
		s.cond.Wait()
	}
	if s.closed || len(s.stack) == 0 {
		s.closed = true
		s.cond.Broadcast()
		return nil
	}
	n := s.stack[len(s.stack)-1]
	s.stack[len(s.stack)-1] = nil
	s.stack = s.stack[:len(s.stack)-1]
	s.pending++
	return n
}

// Done marks a popped node as processed. Its children must be pushed
// before.
func (s *Stack) Done() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--
	if s.pending == 0 && len(s.stack) == 0 {
		s.closed = true
	}
	s.cond.Broadcast()
}

// Close aborts the search. Nodes still on the stack are dropped.
func (s *Stack) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cond.Broadcast()
}

func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stack)
}
