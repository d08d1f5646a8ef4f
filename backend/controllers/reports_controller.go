package controllers

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
	"zomgpow/backend/config"
	"zomgpow/backend/models"
	"zomgpow/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReportsController derives classroom progress statistics from goal and
// student-goal snapshots. It never writes and holds no state between
// requests; every read runs under the caller's context so an abandoned
// request stops querying.
type ReportsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewReportsController(db *gorm.DB, cfg *config.Config) *ReportsController {
	return &ReportsController{DB: db, Cfg: cfg}
}

type completedCountRow struct {
	GoalID    uint
	Completed int64
}

type studentTotalsRow struct {
	GoalID        uint
	TotalStudents int64
	EvalTotal     int64
	EvalAvg       float64
}

// GetClassGoalSummary returns one summary per completed goal of the class:
// how long the goal took, how many students finished, and how the class
// evaluated itself against a maximum score of 3.
func (rc *ReportsController) GetClassGoalSummary(c *fiber.Ctx) error {
	classID, err := strconv.Atoi(c.Params("classId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid class ID")
	}

	db := rc.DB.WithContext(c.UserContext())

	var goals []models.Goal
	if err := db.Where("class_id = ? AND date_completed IS NOT NULL", classID).
		Order("id").Find(&goals).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var completedRows []completedCountRow
	if err := db.Model(&models.StudentGoal{}).
		Select("goal_id, COUNT(*) AS completed").
		Where("class_id = ? AND is_complete = ?", classID, true).
		Group("goal_id").Scan(&completedRows).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var totalsRows []studentTotalsRow
	if err := db.Model(&models.StudentGoal{}).
		Select("goal_id, COUNT(*) AS total_students, SUM(evaluation) AS eval_total, AVG(evaluation) AS eval_avg").
		Where("class_id = ?", classID).
		Group("goal_id").Scan(&totalsRows).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	// The three result sets are grouped independently; join them by goal id,
	// never by position.
	completedByGoal := make(map[uint]int64, len(completedRows))
	for _, row := range completedRows {
		completedByGoal[row.GoalID] = row.Completed
	}
	totalsByGoal := make(map[uint]studentTotalsRow, len(totalsRows))
	for _, row := range totalsRows {
		totalsByGoal[row.GoalID] = row
	}

	dataArr := make([]models.GoalProgressSummary, 0, len(goals))
	for _, goal := range goals {
		summary := models.GoalProgressSummary{
			ID:        goal.ID,
			GoalTitle: goal.GoalTitle,
			Time:      formatElapsed(goal.CreatedAt, *goal.DateCompleted),
		}

		// A goal with no student rows yet is reported without derived fields
		// rather than dividing by zero.
		if totals, ok := totalsByGoal[goal.ID]; ok && totals.TotalStudents > 0 {
			completed := completedByGoal[goal.ID]
			avgCompleted := fmt.Sprintf("%d%%", ceilPercent(completed, totals.TotalStudents))
			evalAvg := strconv.FormatFloat(totals.EvalAvg, 'f', 2, 64)
			evalPercentage := fmt.Sprintf("%d%%", roundPercent(totals.EvalAvg, maxEvaluation))

			summary.TotalCompleted = &completed
			summary.TotalStudents = &totals.TotalStudents
			summary.AvgCompleted = &avgCompleted
			summary.EvalTotal = &totals.EvalTotal
			summary.EvalAvg = &evalAvg
			summary.EvalPercentage = &evalPercentage
		}

		dataArr = append(dataArr, summary)
	}

	return c.JSON(fiber.Map{
		"dataArr": dataArr,
	})
}

// GetGoalResponseSummary returns each student's response to one goal together
// with the goal's exit-ticket definition and how many answered it correctly.
func (rc *ReportsController) GetGoalResponseSummary(c *fiber.Ctx) error {
	classID, err := strconv.Atoi(c.Params("classId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid class ID")
	}
	goalID, err := strconv.Atoi(c.Params("goalId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid goal ID")
	}

	db := rc.DB.WithContext(c.UserContext())

	var responses []models.StudentResponse
	if err := db.Model(&models.StudentGoal{}).
		Select("student_goals.goal_id, students.full_name, student_goals.is_complete AS complete, student_goals.evaluation AS eval_score").
		Joins("JOIN students ON students.id = student_goals.student_id").
		Where("student_goals.class_id = ? AND student_goals.goal_id = ?", classID, goalID).
		Order("students.full_name").Scan(&responses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var goal models.Goal
	if err := db.First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Goal not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var correct int64
	if err := db.Model(&models.StudentGoal{}).
		Where("goal_id = ? AND exit_ticket_response = ?", goalID, goal.ExitTicketCorrectAnswer).
		Count(&correct).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	total := int64(len(responses))
	correctAvg := "n/a"
	if total > 0 {
		correctAvg = fmt.Sprintf("%d%%", roundPercent(float64(correct), float64(total)))
	}

	return c.JSON(fiber.Map{
		"studentResponses": responses,
		"exitTicketInfo": models.ExitTicketInfo{
			QuestionType:    goal.ExitTicketType,
			Question:        goal.ExitTicketQuestion,
			Options:         goal.ExitTicketOptions,
			Answer:          goal.ExitTicketCorrectAnswer,
			CorrectResTotal: correct,
			ResTotal:        total,
			CorrectResAvg:   correctAvg,
		},
	})
}

// GetStudentSubgoals is a pass-through read of one student-goal's subgoal
// rows; no derived arithmetic.
func (rc *ReportsController) GetStudentSubgoals(c *fiber.Ctx) error {
	studentGoalID, err := strconv.Atoi(c.Params("studentGoalId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid student goal ID")
	}

	var subgoals []models.StudentSubgoal
	if err := rc.DB.WithContext(c.UserContext()).
		Where("student_goal_id = ?", studentGoalID).
		Order("id").Find(&subgoals).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{
		"studentSubgoals": subgoals,
	})
}

// maxEvaluation is the top self-evaluation score a student can give, so the
// evaluation percentage is avg/3.
const maxEvaluation = 3.0

// formatElapsed renders the full elapsed time between goal creation and
// completion as "HHh MMm". The subtraction uses complete timestamps, so a
// goal finished the next morning reports the real duration instead of a
// negative clock-face difference.
func formatElapsed(created, completed time.Time) string {
	minutes := int(completed.Sub(created).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02dh %02dm", minutes/60, minutes%60)
}

// ceilPercent computes ceil(n/d*100); a zero denominator resolves to 0
// instead of an error.
func ceilPercent(n, d int64) int {
	if d == 0 {
		return 0
	}
	return int(math.Ceil(float64(n) / float64(d) * 100))
}

// roundPercent computes round(n/d*100) with the same zero guard.
func roundPercent(n, d float64) int {
	if d == 0 {
		return 0
	}
	return int(math.Round(n / d * 100))
}
