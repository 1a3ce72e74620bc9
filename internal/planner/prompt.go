package planner

import (
	"fmt"
	"strings"
)

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "None."
	}
	var b strings.Builder
	for _, it := range items {
		b.WriteString("- ")
		b.WriteString(it)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func latestUserMessage(history []ChatMessage) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" {
			return history[i].Content
		}
	}
	return "N/A"
}

// buildProposePrompt renders the full generation prompt for a bundle.
func buildProposePrompt(req ProposeRequest) string {
	if req.Bundle.Category == "College Planning" {
		return buildCollegePrompt(req)
	}
	return buildTestPrepPrompt(req)
}

func buildTestPrepPrompt(req ProposeRequest) string {
	b := req.Bundle
	var sb strings.Builder

	sb.WriteString("# MISSION\n")
	fmt.Fprintf(&sb, "You are an elite AI test prep coach for Mentics. Your mission is to generate an intelligent, %d-step study plan tailored to the student's evolving needs, demonstrating a deep understanding of their history and context.\n\n", req.MaxTasks)

	sb.WriteString("## CRITICAL SCENARIO ANALYSIS\n")
	sb.WriteString("1. **Regeneration Request:** If the user's latest message asks for a new path, your highest priority is to generate one that addresses their immediate request.\n")
	sb.WriteString("2. **Post-Path Continuation:** If the student just completed all tasks, the new plan MUST be a logical next step.\n")
	sb.WriteString("3. **Standard Generation:** Otherwise, generate a standard path that builds on their history.\n\n")

	sb.WriteString("# STUDENT ANALYSIS DATA\n")
	fmt.Fprintf(&sb, "- Strengths: %s\n", orDefault(b.Strengths, "general studying"))
	fmt.Fprintf(&sb, "- Weaknesses: %s\n", orDefault(b.Weaknesses, "test-taking skills"))
	fmt.Fprintf(&sb, "- Test Date: %s\n", orDefault(b.TestDateInfo, "Not set by the student."))
	fmt.Fprintf(&sb, "- Current Scores: SAT Math %s, SAT EBRW %s, ACT Composite %s\n\n",
		orDefault(b.SATMath, "N/A"), orDefault(b.SATEBRW, "N/A"), orDefault(b.ACTAverage, "N/A"))

	sb.WriteString("## HISTORICAL & CONVERSATIONAL CONTEXT\n")
	fmt.Fprintf(&sb, "- **Most Recent User Request:** '%s'\n", latestUserMessage(b.Transcript))
	fmt.Fprintf(&sb, "- Recently Completed Tasks:\n%s\n", bulletList(b.CompletedTasks))
	fmt.Fprintf(&sb, "- Incomplete Tasks from Previous Path:\n%s\n", bulletList(b.IncompleteTasks))
	fmt.Fprintf(&sb, "- Historical Performance Data (Tracker):\n%s\n\n", orDefault(b.StatSummary, "No historical performance data available yet."))

	sb.WriteString("## RECENT QUIZ PERFORMANCE (Incorrect Answers)\n")
	fmt.Fprintf(&sb, "This shows specific questions the user recently got wrong. Use this granular data to create targeted follow-up tasks.\n%s\n\n",
		orDefault(b.QuizMissSummary, "No recent incorrect quiz answers on record."))

	fmt.Fprintf(&sb, "# YOUR TASK: GENERATE THE NEW %d-STEP PLAN\n", req.MaxTasks)
	sb.WriteString("- The plan must contain a mix of standard `link` tasks and interactive `quiz` tasks. At least ONE task MUST be an interactive quiz.\n")
	sb.WriteString("- Be specific, actionable, and reference a high-quality, free resource (Khan Academy, official practice tests, specific YouTube tutorials) via markdown link in `link` tasks.\n")
	sb.WriteString("- Include a mix of Resource, Practice, and Strategic tasks, each with an assigned difficulty.\n\n")

	sb.WriteString("## QUIZ GENERATION DIRECTIVES\n")
	sb.WriteString("1. A quiz should follow a Resource Task covering the same topic.\n")
	sb.WriteString("2. Questions must mirror official SAT complexity; reading passages go in `question_text`.\n")
	sb.WriteString("3. The quiz MUST target one of the student's listed weaknesses or a topic from their recent quiz misses.\n")
	sb.WriteString("4. Each question must include a brief explanation of the correct answer.\n")
	sb.WriteString("5. Each quiz should have 5-10 questions.\n\n")

	sb.WriteString("# CRITICAL DIRECTIVES & JSON SCHEMA\n")
	sb.WriteString("1. **JSON Output ONLY**: Your output MUST be a single, raw JSON object.\n")
	sb.WriteString("2. **Milestones & Boss Battles**: Use 'milestone' for major assessments. A Boss Battle description must begin with 'Boss Battle:'.\n")
	fmt.Fprintf(&sb, "3. **Correct Stat Naming**: `stat_to_update` must be one of: %s, and null for standard tasks.\n", strings.Join(AllowedStatKeys(b.Category), ", "))
	fmt.Fprintf(&sb, "4. **Category**: every task's `category` MUST be the string '%s'.\n\n", "Test Prep")

	sb.WriteString(jsonStructureDirective)
	return sb.String()
}

func buildCollegePrompt(req ProposeRequest) string {
	b := req.Bundle
	var sb strings.Builder

	sb.WriteString("# MISSION\n")
	fmt.Fprintf(&sb, "You are an expert AI college admissions counselor for the Mentics platform. Your mission is to generate an intelligent, %d-step roadmap that provides a clear, logical, and motivating path for a high school student.\n\n", req.MaxTasks)

	sb.WriteString("## CRITICAL SCENARIO ANALYSIS (ACTION REQUIRED)\n")
	sb.WriteString("1. **Regeneration Request:** If the most recent user message asks to regenerate or shift plans, address that request first.\n")
	sb.WriteString("2. **Post-Path Continuation:** If the previous path is fully completed, the new plan MUST be its logical next step.\n")
	sb.WriteString("3. **Standard Generation:** Otherwise generate a path appropriate for the student's grade and planning stage.\n\n")

	sb.WriteString("# STUDENT ANALYSIS DATA\n")
	fmt.Fprintf(&sb, "- Current Grade: %s\n", orDefault(b.Grade, "N/A"))
	fmt.Fprintf(&sb, "- Stated Planning Stage: %s\n", orDefault(b.PlanningStage, "N/A"))
	fmt.Fprintf(&sb, "- Interested Majors: %s\n", orDefault(b.Majors, "N/A"))
	fmt.Fprintf(&sb, "- Target Colleges: %s\n", orDefault(b.TargetColleges, "None specified"))
	fmt.Fprintf(&sb, "- Current GPA: %s\n\n", orDefault(b.GPA, "N/A"))

	sb.WriteString("## HISTORICAL & CONVERSATIONAL CONTEXT\n")
	fmt.Fprintf(&sb, "- **Most Recent User Request:** '%s'\n", latestUserMessage(b.Transcript))
	fmt.Fprintf(&sb, "- Recently Completed Tasks:\n%s\n", bulletList(b.CompletedTasks))
	fmt.Fprintf(&sb, "- Incomplete Tasks from Previous Path:\n%s\n", bulletList(b.IncompleteTasks))
	fmt.Fprintf(&sb, "- Historical Performance Data (Tracker):\n%s\n\n", orDefault(b.StatSummary, "No historical performance data available yet."))

	fmt.Fprintf(&sb, "# YOUR TASK: GENERATE THE NEW %d-STEP ROADMAP\n", req.MaxTasks)
	sb.WriteString("- Be specific, actionable, and include a markdown link to a reputable, free resource (Common App, College Board, financial aid sites).\n")
	sb.WriteString("- Include a mix of Resource, Action, and Reflection tasks, each with an assigned difficulty.\n")
	sb.WriteString("- For anything related to test prep, refer the student to the Test Prep path instead of including test prep tasks here.\n\n")

	sb.WriteString("# CRITICAL DIRECTIVES & JSON SCHEMA\n")
	sb.WriteString("1. **JSON Output ONLY**: Your entire output MUST be a single, raw JSON object. No extra text.\n")
	sb.WriteString("2. **Stage-Appropriate Tasks**: Align all tasks to the student's grade level and planning stage.\n")
	sb.WriteString("3. **Meaningful Milestones**: Use 'milestone' only for significant achievements; `stat_to_update` must be null for standard tasks.\n")
	sb.WriteString("4. **Intelligent Boss Battles**: A Boss Battle is a major milestone; its description MUST begin with 'Boss Battle:'.\n")
	fmt.Fprintf(&sb, "5. **Correct Stat Naming**: `stat_to_update` must be one of: %s.\n", strings.Join(AllowedStatKeys(b.Category), ", "))
	fmt.Fprintf(&sb, "6. **Category**: every task's `category` MUST be the string '%s'.\n\n", "College Planning")

	sb.WriteString(jsonStructureDirective)
	return sb.String()
}

const jsonStructureDirective = `# JSON OUTPUT STRUCTURE
{
  "tasks": [
    {
      "task_format": "Either 'link' or 'quiz'.",
      "description": "If format is 'link', MUST include a markdown link. If 'quiz', a simple description.",
      "reason": "A brief, motivating explanation.",
      "type": "Either 'standard' or 'milestone'.",
      "stat_to_update": "An allowed stat name ONLY if type is milestone, otherwise null.",
      "category": "The path category string.",
      "difficulty": "Either 'easy', 'medium', 'hard', or 'epic'.",
      "quiz_content": {
        "title": "Title of the quiz",
        "questions": [
          {"question_text": "...", "options": ["A", "B", "C", "D"], "correct_option": 0, "explanation": "..."}
        ]
      }
    }
  ]
}`

// buildChatSystemPrompt renders the coaching persona and the student's
// current context for conversational replies.
func buildChatSystemPrompt(req ChatRequest) string {
	b := req.Bundle
	var sb strings.Builder

	sb.WriteString("# MISSION & IDENTITY\n")
	if b.Category == "College Planning" {
		sb.WriteString("You are an expert AI assistant for Mentics, a web app that creates personalized roadmaps for high school students. Your persona is a friendly, intelligent, and highly adaptive college planning advisor.\n\n")
	} else {
		sb.WriteString("You are an expert AI assistant for Mentics, a web app that creates personalized learning paths for high school students. Your persona is a highly adaptive, intelligent, and supportive SAT/ACT test prep coach.\n\n")
	}

	sb.WriteString("# MENTICS APPLICATION CONTEXT\n")
	sb.WriteString("- **AI Path Generation**: the app generates a visual, step-by-step roadmap of tasks.\n")
	sb.WriteString("- **AI Assistant (Your Role)**: you help users when they are stuck on a task and offer deeper explanations.\n")
	sb.WriteString("- **Stats & Tracker**: users input scores (GPA, SAT, ACT) and track progress over time.\n")
	sb.WriteString("- **Gamification**: points and streaks reward completing tasks.\n\n")

	sb.WriteString("## CURRENT STUDENT ANALYSIS\n")
	fmt.Fprintf(&sb, "- SAT Math: %s\n", orDefault(b.SATMath, "Not provided"))
	fmt.Fprintf(&sb, "- SAT EBRW: %s\n", orDefault(b.SATEBRW, "Not provided"))
	fmt.Fprintf(&sb, "- GPA: %s\n", orDefault(b.GPA, "Not provided"))
	fmt.Fprintf(&sb, "- Test Date Info: %s\n", orDefault(b.TestDateInfo, "The student has not set a test date yet."))
	fmt.Fprintf(&sb, "- Strengths: %s\n", orDefault(b.Strengths, "Not provided"))
	fmt.Fprintf(&sb, "- Weaknesses: %s\n", orDefault(b.Weaknesses, "Not provided"))
	fmt.Fprintf(&sb, "- Recently Completed Tasks:\n%s\n", bulletList(b.CompletedTasks))
	fmt.Fprintf(&sb, "- Incomplete Tasks:\n%s\n", bulletList(b.IncompleteTasks))
	fmt.Fprintf(&sb, "- Historical Performance Data (Tracker):\n%s\n", orDefault(b.StatSummary, "No historical performance data available yet."))
	fmt.Fprintf(&sb, "- Current Active Tasks (numbered for reference):\n%s\n\n", orDefault(b.ActiveTasks, "No active tasks at the moment."))

	sb.WriteString("## RECENT QUIZ PERFORMANCE (Incorrect Answers)\n")
	fmt.Fprintf(&sb, "%s\n\n", orDefault(b.QuizMissSummary, "No recent incorrect quiz answers on record."))

	sb.WriteString("## CORE COACHING DIRECTIVES\n")
	sb.WriteString("0. Your very first message must be a warm welcome and must state that typing 'regenerate' or 'new path' produces a new path based on the conversation.\n")
	sb.WriteString("1. Your main purpose is to help the user with their current, active path and answer questions about the app's features.\n")
	sb.WriteString("2. If a user's goals change, remind them of the regeneration commands.\n")
	sb.WriteString("3. Provide specific, reputable, free resources using markdown links.\n")
	sb.WriteString("4. Every response must give a clear next step. Keep quick answers under 100 words and detailed explanations under 250 words.\n")
	sb.WriteString("5. Maintain a supportive, motivating, realistic tone.\n")
	return sb.String()
}
