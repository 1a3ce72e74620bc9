package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shreyasboddani/MENTICS/internal/models"
	"github.com/shreyasboddani/MENTICS/internal/planner"

	"gorm.io/gorm"
)

// HistoryService aggregates a student's stored history into the
// context bundle handed to the path planner, and owns the persisted
// chat transcripts.
type HistoryService struct {
	db *gorm.DB
}

// NewHistoryService creates a HistoryService.
func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Build assembles the full context bundle for one (user, category)
// pair. Missing data renders as explicit "none yet" statements rather
// than empty strings, so prompts stay unambiguous for a brand-new
// student.
func (s *HistoryService) Build(userID uint, category string) (planner.ContextBundle, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return planner.ContextBundle{}, err
	}

	bundle := planner.ContextBundle{
		Category:       category,
		Strengths:      user.Stats.TestPath.Strengths,
		Weaknesses:     user.Stats.TestPath.Weaknesses,
		SATMath:        user.Stats.SATMath,
		SATEBRW:        user.Stats.SATEBRW,
		ACTAverage:     ACTAverage(user.Stats),
		Grade:          user.Stats.CollegePath.Grade,
		PlanningStage:  user.Stats.CollegePath.PlanningStage,
		Majors:         user.Stats.CollegePath.Majors,
		TargetColleges: user.Stats.CollegePath.TargetColleges,
		GPA:            user.Stats.GPA,
	}
	if user.Stats.TestPath.TestDate != "" {
		bundle.TestDateInfo = fmt.Sprintf("The student's test date is %s.", user.Stats.TestPath.TestDate)
	}

	summary, err := s.statSummary(userID)
	if err != nil {
		return planner.ContextBundle{}, err
	}
	bundle.StatSummary = summary

	completed, incomplete, err := s.pathHistory(userID, category)
	if err != nil {
		return planner.ContextBundle{}, err
	}
	bundle.CompletedTasks = completed
	bundle.IncompleteTasks = incomplete

	misses, err := s.quizMissSummary(userID)
	if err != nil {
		return planner.ContextBundle{}, err
	}
	bundle.QuizMissSummary = misses

	active, err := s.numberedActiveTasks(userID, category)
	if err != nil {
		return planner.ContextBundle{}, err
	}
	bundle.ActiveTasks = active

	transcript, err := s.Transcript(userID, category)
	if err != nil {
		return planner.ContextBundle{}, err
	}
	bundle.Transcript = transcript

	return bundle, nil
}

// statSummary renders the newest 20 stat data points as readable
// statements, newest first.
func (s *HistoryService) statSummary(userID uint) (string, error) {
	var points []models.StatHistory
	err := s.db.Where("user_id = ?", userID).
		Order("recorded_at desc, id desc").
		Limit(20).
		Find(&points).Error
	if err != nil {
		return "", err
	}
	if len(points) == 0 {
		return "No historical performance data available yet.", nil
	}

	lines := make([]string, 0, len(points))
	for _, p := range points {
		lines = append(lines, fmt.Sprintf("- On %s, their %s was recorded as %s.",
			p.RecordedAt.Format("2006-01-02"), readableStatName(p.StatName), p.StatValue))
	}
	return strings.Join(lines, "\n"), nil
}

// readableStatName turns "sat_math" into "Sat Math" for prompt text.
func readableStatName(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// pathHistory splits every task the user ever had in a category into
// completed and incomplete descriptions.
func (s *HistoryService) pathHistory(userID uint, category string) (completed, incomplete []string, err error) {
	var tasks []models.Task
	err = s.db.Where("user_id = ? AND category = ?", userID, category).
		Order("created_at asc, task_order asc").
		Find(&tasks).Error
	if err != nil {
		return nil, nil, err
	}
	for _, t := range tasks {
		if t.IsCompleted {
			completed = append(completed, t.Description)
		} else {
			incomplete = append(incomplete, t.Description)
		}
	}
	return completed, incomplete, nil
}

// quizMissSummary renders the user's newest 5 incorrect quiz answers,
// resolving each correct answer text by its option index.
func (s *HistoryService) quizMissSummary(userID uint) (string, error) {
	var results []models.QuizResult
	err := s.db.Where("user_id = ? AND is_correct = ?", userID, false).
		Order("submitted_at desc, id desc").
		Limit(5).
		Find(&results).Error
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "No recent incorrect quiz answers on record. The user may be new or performing well.", nil
	}

	lines := make([]string, 0, len(results))
	for _, r := range results {
		var q models.QuizQuestion
		if err := s.db.First(&q, r.QuestionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return "", err
		}
		correct := ""
		if q.CorrectOption >= 0 && q.CorrectOption < len(q.Options) {
			correct = q.Options[q.CorrectOption]
		}
		lines = append(lines, fmt.Sprintf("- Question: %s\n  - Correct Answer: %q\n  - Explanation: %s",
			q.Text, correct, q.Explanation))
	}
	if len(lines) == 0 {
		return "No recent incorrect quiz answers on record. The user may be new or performing well.", nil
	}
	return strings.Join(lines, "\n"), nil
}

// numberedActiveTasks renders the active path as numbered lines with
// completion markers, for the assistant to reference by number.
func (s *HistoryService) numberedActiveTasks(userID uint, category string) (string, error) {
	var tasks []models.Task
	err := s.db.Where("user_id = ? AND category = ? AND is_active = ?", userID, category, true).
		Order("task_order asc").
		Find(&tasks).Error
	if err != nil {
		return "", err
	}
	if len(tasks) == 0 {
		return "No active tasks at the moment.", nil
	}

	lines := make([]string, 0, len(tasks))
	for i, t := range tasks {
		status := "⏳ (In Progress)"
		if t.IsCompleted {
			status = "✅ (Completed)"
		}
		lines = append(lines, fmt.Sprintf("Task %d: %s - %s", i+1, t.Description, status))
	}
	return strings.Join(lines, "\n"), nil
}

// Transcript loads the persisted chat history for a (user, category)
// pair. No conversation reads as an empty transcript.
func (s *HistoryService) Transcript(userID uint, category string) ([]planner.ChatMessage, error) {
	var conv models.ChatConversation
	err := s.db.Where("user_id = ? AND category = ?", userID, category).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []planner.ChatMessage{}, nil
	}
	if err != nil {
		return nil, err
	}

	var history []planner.ChatMessage
	if err := json.Unmarshal([]byte(conv.History), &history); err != nil {
		// corrupted transcript; start over rather than fail generation
		return []planner.ChatMessage{}, nil
	}
	return history, nil
}

// SaveTranscript upserts the full chat history for a (user, category)
// pair.
func (s *HistoryService) SaveTranscript(userID uint, category string, history []planner.ChatMessage) error {
	payload, err := json.Marshal(history)
	if err != nil {
		return err
	}

	var conv models.ChatConversation
	err = s.db.Where("user_id = ? AND category = ?", userID, category).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		conv = models.ChatConversation{
			UserID:   userID,
			Category: category,
			History:  string(payload),
		}
		return s.db.Create(&conv).Error
	}
	if err != nil {
		return err
	}
	return s.db.Model(&conv).Update("history", string(payload)).Error
}

// ResetTranscript deletes the chat history for a (user, category)
// pair.
func (s *HistoryService) ResetTranscript(userID uint, category string) error {
	return s.db.Where("user_id = ? AND category = ?", userID, category).
		Delete(&models.ChatConversation{}).Error
}
