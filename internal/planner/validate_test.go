package planner

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTasksValidResponse(t *testing.T) {
	raw := json.RawMessage(`{
		"tasks": [
			{
				"task_format": "link",
				"description": "Review [Khan Academy](https://khanacademy.org) algebra drills.",
				"reason": "Builds the foundation for harder problems.",
				"type": "standard",
				"stat_to_update": null,
				"category": "Test Prep",
				"difficulty": "medium"
			},
			{
				"task_format": "quiz",
				"description": "Take a mini-quiz on linear equations.",
				"reason": "Checks retention.",
				"type": "standard",
				"stat_to_update": null,
				"category": "Test Prep",
				"difficulty": "easy",
				"quiz_content": {
					"title": "Linear Equations",
					"questions": [
						{"question_text": "2x = 8, x?", "options": ["2", "4"], "correct_option": 1, "explanation": "Divide by 2."}
					]
				}
			}
		]
	}`)

	tasks, err := ParseTasks(raw, "Test Prep")
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, "link", tasks[0].Format)
	assert.Nil(t, tasks[0].StatToUpdate)

	require.NotNil(t, tasks[1].QuizContent)
	assert.Equal(t, "Linear Equations", tasks[1].QuizContent.Title)
	assert.Equal(t, 1, tasks[1].QuizContent.Questions[0].CorrectOption)
}

func TestParseTasksDefaultsFormatToLink(t *testing.T) {
	raw := json.RawMessage(`{
		"tasks": [
			{"description": "Read a passage.", "reason": "Practice.", "type": "standard", "category": "Test Prep"}
		]
	}`)

	tasks, err := ParseTasks(raw, "Test Prep")
	require.NoError(t, err)
	assert.Equal(t, "link", tasks[0].Format)
}

func TestParseTasksRejectsMalformedJSON(t *testing.T) {
	_, err := ParseTasks(json.RawMessage(`{"tasks": [`), "Test Prep")

	var invalid *ErrInvalidResponse
	require.True(t, errors.As(err, &invalid))
}

func TestParseTasksRejectsEmptyTaskList(t *testing.T) {
	_, err := ParseTasks(json.RawMessage(`{"tasks": []}`), "Test Prep")

	var invalid *ErrInvalidResponse
	require.True(t, errors.As(err, &invalid))
}

func TestParseTasksRejectsTooManyTasks(t *testing.T) {
	task := `{"description": "d", "reason": "r", "type": "standard", "category": "Test Prep"}`
	raw := json.RawMessage(`{"tasks": [` + task + `,` + task + `,` + task + `,` + task + `,` + task + `,` + task + `]}`)

	_, err := ParseTasks(raw, "Test Prep")

	var invalid *ErrInvalidResponse
	require.True(t, errors.As(err, &invalid))
}

func TestParseTasksRejectsUnknownTaskType(t *testing.T) {
	raw := json.RawMessage(`{
		"tasks": [
			{"description": "d", "reason": "r", "type": "bonus", "category": "Test Prep"}
		]
	}`)

	_, err := ParseTasks(raw, "Test Prep")

	var invalid *ErrInvalidResponse
	require.True(t, errors.As(err, &invalid))
}

func TestParseTasksRejectsQuizWithoutContent(t *testing.T) {
	raw := json.RawMessage(`{
		"tasks": [
			{"task_format": "quiz", "description": "Quiz time.", "reason": "r", "type": "standard", "category": "Test Prep"}
		]
	}`)

	_, err := ParseTasks(raw, "Test Prep")

	var invalid *ErrInvalidResponse
	require.True(t, errors.As(err, &invalid))
}

func TestParseTasksRejectsCorrectOptionOutOfRange(t *testing.T) {
	raw := json.RawMessage(`{
		"tasks": [
			{
				"task_format": "quiz",
				"description": "Quiz time.",
				"reason": "r",
				"type": "standard",
				"category": "Test Prep",
				"quiz_content": {
					"title": "T",
					"questions": [
						{"question_text": "q", "options": ["a", "b"], "correct_option": 2}
					]
				}
			}
		]
	}`)

	_, err := ParseTasks(raw, "Test Prep")

	var invalid *ErrInvalidResponse
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, invalid.Err.Error(), "correct_option")
}

func TestParseTasksRejectsStatKeyFromWrongCategory(t *testing.T) {
	raw := json.RawMessage(`{
		"tasks": [
			{"description": "d", "reason": "r", "type": "milestone", "stat_to_update": "gpa", "category": "Test Prep"}
		]
	}`)

	_, err := ParseTasks(raw, "Test Prep")

	var invalid *ErrInvalidResponse
	require.True(t, errors.As(err, &invalid))
}

func TestAllowedStatKeysPerCategory(t *testing.T) {
	assert.Contains(t, AllowedStatKeys("Test Prep"), "sat_total")
	assert.NotContains(t, AllowedStatKeys("Test Prep"), "gpa")

	assert.Contains(t, AllowedStatKeys("College Planning"), "essay_progress")
	assert.NotContains(t, AllowedStatKeys("College Planning"), "sat_math")
}
