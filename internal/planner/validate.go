package planner

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiledTaskListSchema compiles the task-list schema once.
func compiledTaskListSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any), not raw bytes.
		defBytes, err := json.Marshal(taskListSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://task-list.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// ParseTasks validates a raw task-list response and decodes it.
// It enforces what the schema cannot: correct_option must index into
// the options list, quiz tasks must carry quiz content, and any
// stat_to_update must be an allowed key for the category.
func ParseTasks(raw json.RawMessage, category string) ([]ProposedTask, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := compiledTaskListSchema()
	if err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("compile schema: %w", err)}
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var resp struct {
		Tasks []ProposedTask `json:"tasks"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: err}
	}

	allowed := AllowedStatKeys(category)
	for i := range resp.Tasks {
		t := &resp.Tasks[i]
		if t.Format == "" {
			t.Format = "link"
		}
		if t.Format == "quiz" {
			if t.QuizContent == nil {
				return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("task %d: quiz format without quiz_content", i+1)}
			}
			for qi, q := range t.QuizContent.Questions {
				if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
					return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("task %d question %d: correct_option out of range", i+1, qi+1)}
				}
			}
		}
		if t.StatToUpdate != nil && *t.StatToUpdate != "" && !slices.Contains(allowed, *t.StatToUpdate) {
			return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("task %d: stat_to_update %q not allowed for %s", i+1, *t.StatToUpdate, category)}
		}
	}

	return resp.Tasks, nil
}
