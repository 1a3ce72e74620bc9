package planner

// AllowedStatKeys returns the stat_to_update values the external
// service may emit for a category. Anything else fails validation.
func AllowedStatKeys(category string) []string {
	if category == "College Planning" {
		return []string{"gpa", "essay_progress", "applications_submitted", "colleges_researched"}
	}
	return []string{"sat_math", "sat_ebrw", "sat_total", "act_math", "act_reading", "act_science", "act_composite"}
}

// taskListSchema is the JSON schema every task-list response must
// satisfy before persistence. Bounds that JSON Schema cannot express
// (correct_option within options) are checked in ParseTasks.
var taskListSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"tasks": map[string]any{
			"type":     "array",
			"minItems": 1,
			"maxItems": 5,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"task_format": map[string]any{
						"type": "string",
						"enum": []any{"link", "quiz"},
					},
					"description": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"reason": map[string]any{
						"type": "string",
					},
					"type": map[string]any{
						"type": "string",
						"enum": []any{"standard", "milestone"},
					},
					"stat_to_update": map[string]any{
						"type": []any{"string", "null"},
					},
					"category": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"difficulty": map[string]any{
						"type": "string",
						"enum": []any{"easy", "medium", "hard", "epic"},
					},
					"quiz_content": map[string]any{
						"type": []any{"object", "null"},
						"properties": map[string]any{
							"title": map[string]any{
								"type":      "string",
								"minLength": 1,
							},
							"questions": map[string]any{
								"type":     "array",
								"minItems": 1,
								"items": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"question_text": map[string]any{
											"type":      "string",
											"minLength": 1,
										},
										"options": map[string]any{
											"type":     "array",
											"minItems": 2,
											"items":    map[string]any{"type": "string"},
										},
										"correct_option": map[string]any{
											"type":    "integer",
											"minimum": 0,
										},
										"explanation": map[string]any{
											"type": "string",
										},
									},
									"required": []any{"question_text", "options", "correct_option"},
								},
							},
						},
						"required": []any{"title", "questions"},
					},
				},
				"required": []any{"description", "reason", "type", "category"},
			},
		},
	},
	"required": []any{"tasks"},
}
