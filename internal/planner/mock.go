package planner

import (
	"context"
	"sync"
)

// MockProposal is a canned path response for the Mock planner.
type MockProposal struct {
	Tasks []ProposedTask
	Err   error
}

// MockReply is a canned chat response for the Mock planner.
type MockReply struct {
	Content string
	Err     error
}

// Mock is a deterministic Planner for testing. It returns canned
// responses in FIFO order and records all requests.
type Mock struct {
	mu        sync.Mutex
	proposals []MockProposal
	replies   []MockReply

	ProposeCalls []ProposeRequest
	ChatCalls    []ChatRequest
}

// NewMock creates a Mock planner with the given canned path proposals.
func NewMock(proposals ...MockProposal) *Mock {
	return &Mock{proposals: proposals}
}

// ProposeTasks returns the next canned proposal or ErrUnavailable if
// the queue is empty.
func (m *Mock) ProposeTasks(_ context.Context, req ProposeRequest) ([]ProposedTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ProposeCalls = append(m.ProposeCalls, req)

	if len(m.proposals) == 0 {
		return nil, &ErrUnavailable{Err: nil}
	}

	p := m.proposals[0]
	m.proposals = m.proposals[1:]

	if p.Err != nil {
		return nil, p.Err
	}
	return p.Tasks, nil
}

// Chat returns the next canned reply or ErrUnavailable if the queue is
// empty.
func (m *Mock) Chat(_ context.Context, req ChatRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ChatCalls = append(m.ChatCalls, req)

	if len(m.replies) == 0 {
		return "", &ErrUnavailable{Err: nil}
	}

	r := m.replies[0]
	m.replies = m.replies[1:]

	if r.Err != nil {
		return "", r.Err
	}
	return r.Content, nil
}

// AddProposal appends a canned path proposal to the queue.
func (m *Mock) AddProposal(p MockProposal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.proposals = append(m.proposals, p)
}

// AddReply appends a canned chat reply to the queue.
func (m *Mock) AddReply(r MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, r)
}

// ProposeCount returns the number of ProposeTasks calls made.
func (m *Mock) ProposeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ProposeCalls)
}
