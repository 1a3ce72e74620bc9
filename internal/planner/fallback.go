package planner

// Fallback returns the deterministic task set for a category. It is
// the generation result whenever the external service is unreachable
// or returns something the contract rejects; a generation must never
// complete with zero tasks.
func Fallback(category string) []ProposedTask {
	if category == "College Planning" {
		return collegeFallback()
	}
	return testPrepFallback()
}

func strPtr(s string) *string { return &s }

func testPrepFallback() []ProposedTask {
	return []ProposedTask{
		{
			Format:       "link",
			Description:  "Boss Battle: Take a full-length, timed SAT practice test from the [official College Board site](https://satsuite.collegeboard.org/sat/practice-preparation/practice-tests).",
			Reason:       "This is a boss battle to test your skills under pressure.",
			Type:         "milestone",
			StatToUpdate: strPtr("sat_total"),
			Category:     "Test Prep",
			Difficulty:   "epic",
		},
		{
			Format:      "quiz",
			Description: "Take a mini-quiz on SAT Algebra.",
			Reason:      "This quick quiz will test your core algebra skills, a critical component of the SAT Math section.",
			Type:        "standard",
			Category:    "Test Prep",
			Difficulty:  "medium",
			QuizContent: &QuizContent{
				Title: "SAT Algebra Practice",
				Questions: []QuizQuestion{
					{
						Text:          "If 3x - 7 = 5, what is the value of x?",
						Options:       []string{"2", "3", "4", "5"},
						CorrectOption: 2,
						Explanation:   "Add 7 to both sides to get 3x = 12. Then, divide by 3 to find x = 4.",
					},
					{
						Text:          "Which of the following is equivalent to (2x + 3)(x - 1)?",
						Options:       []string{"2x^2 + x - 3", "2x^2 - x - 3", "2x^2 + 5x + 3", "x^2 + 2x - 3"},
						CorrectOption: 0,
						Explanation:   "Use the FOIL method to get 2x^2 + x - 3.",
					},
				},
			},
		},
		{
			Format:      "link",
			Description: "Review algebra concepts using [Khan Academy](https://www.khanacademy.org/math/algebra).",
			Reason:      "A strong algebra foundation is crucial.",
			Type:        "standard",
			Category:    "Test Prep",
			Difficulty:  "medium",
		},
		{
			Format:      "link",
			Description: "Practice time management for the reading section.",
			Reason:      "Pacing is key to finishing on time.",
			Type:        "standard",
			Category:    "Test Prep",
			Difficulty:  "medium",
		},
	}
}

func collegeFallback() []ProposedTask {
	return []ProposedTask{
		{
			Format:      "link",
			Description: "Research 5 colleges that match your interests.",
			Reason:      "Finding the right fit is the first step to a successful college experience.",
			Type:        "standard",
			Category:    "College Planning",
			Difficulty:  "medium",
		},
		{
			Format:       "link",
			Description:  "Write a rough draft of your Common App personal statement.",
			Reason:       "This is your chance to tell your story and show admissions officers who you are.",
			Type:         "milestone",
			StatToUpdate: strPtr("essay_progress"),
			Category:     "College Planning",
			Difficulty:   "hard",
		},
		{
			Format:       "link",
			Description:  "Update your GPA in your profile.",
			Reason:       "Keeping your academic information up-to-date is important for tracking your progress.",
			Type:         "milestone",
			StatToUpdate: strPtr("gpa"),
			Category:     "College Planning",
			Difficulty:   "easy",
		},
		{
			Format:      "link",
			Description: "Request three letters of recommendation from teachers.",
			Reason:      "Strong letters of recommendation can make a big difference in your application.",
			Type:        "standard",
			Category:    "College Planning",
			Difficulty:  "medium",
		},
		{
			Format:      "link",
			Description: "Create a spreadsheet to track application deadlines.",
			Reason:      "Staying organized is key to a stress-free application season.",
			Type:        "standard",
			Category:    "College Planning",
			Difficulty:  "easy",
		},
	}
}
