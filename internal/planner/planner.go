// Package planner is the client for the external generative service
// that proposes learning-path tasks. The service is treated as
// unreliable by contract: absence, timeouts, and malformed responses
// are expected operating conditions, and callers degrade to the
// deterministic fallback sets in this package.
package planner

import "context"

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ContextBundle is the aggregated student context handed to the
// external service. All fields are pre-rendered by the history
// aggregator; the planner only formats them into prompts.
type ContextBundle struct {
	Category string

	// Test Prep inputs.
	Strengths    string
	Weaknesses   string
	TestDateInfo string
	SATMath      string
	SATEBRW      string
	ACTAverage   string

	// College Planning inputs.
	Grade          string
	PlanningStage  string
	Majors         string
	TargetColleges string
	GPA            string

	// Shared history.
	StatSummary     string
	CompletedTasks  []string
	IncompleteTasks []string
	QuizMissSummary string
	ActiveTasks     string
	Transcript      []ChatMessage
}

// ProposeRequest asks for a new task list.
type ProposeRequest struct {
	Bundle   ContextBundle
	MaxTasks int
}

// ChatRequest asks for a conversational coaching reply.
type ChatRequest struct {
	Bundle  ContextBundle
	History []ChatMessage
}

// ProposedTask is one entry of the external service's task list.
type ProposedTask struct {
	Format       string       `json:"task_format"`
	Description  string       `json:"description"`
	Reason       string       `json:"reason"`
	Type         string       `json:"type"`
	StatToUpdate *string      `json:"stat_to_update"`
	Category     string       `json:"category"`
	Difficulty   string       `json:"difficulty"`
	QuizContent  *QuizContent `json:"quiz_content,omitempty"`
}

// QuizContent is the inline quiz attached to a quiz-format task.
type QuizContent struct {
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizQuestion is one multiple-choice question of a proposed quiz.
type QuizQuestion struct {
	Text          string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Explanation   string   `json:"explanation"`
}

// Planner is the consumed interface of the external generative service.
type Planner interface {
	// ProposeTasks returns a validated task list for the bundle's
	// category. Errors are *ErrUnavailable or *ErrInvalidResponse;
	// callers are expected to fall back, never to propagate.
	ProposeTasks(ctx context.Context, req ProposeRequest) ([]ProposedTask, error)

	// Chat returns a free-text coaching reply for the conversation.
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

// Offline is the Planner used when no API key is configured. Task
// proposals always fail over to the fallback sets; chat answers with a
// fixed notice.
type Offline struct{}

// ProposeTasks always reports the service as unavailable.
func (Offline) ProposeTasks(ctx context.Context, req ProposeRequest) ([]ProposedTask, error) {
	return nil, &ErrUnavailable{}
}

// Chat returns the fixed offline notice.
func (Offline) Chat(ctx context.Context, req ChatRequest) (string, error) {
	return "I'm in testing mode, but I'm saving our conversation!", nil
}
