package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"
	"zomgpow/backend/config"
	"zomgpow/backend/events"
	"zomgpow/backend/middleware"
	"zomgpow/backend/models"
	"zomgpow/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type GoalsController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Hub *events.Hub
}

func NewGoalsController(db *gorm.DB, cfg *config.Config, hub *events.Hub) *GoalsController {
	return &GoalsController{DB: db, Cfg: cfg, Hub: hub}
}

// GetClassGoals lists every goal of a class, newest first.
func (gc *GoalsController) GetClassGoals(c *fiber.Ctx) error {
	classID, err := strconv.Atoi(c.Params("classId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid class ID")
	}

	var goals []models.Goal
	if err := gc.DB.WithContext(c.UserContext()).
		Where("class_id = ?", classID).
		Order("created_at DESC").Find(&goals).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(goals)
}

type goalInput struct {
	GoalTitle       *string    `json:"goal_title"`
	GoalDescription *string    `json:"goal_description"`
	Deadline        *time.Time `json:"deadline"`

	ExitTicketType          string `json:"exit_ticket_type"`
	ExitTicketQuestion      string `json:"exit_ticket_question"`
	ExitTicketOptions       string `json:"exit_ticket_options"`
	ExitTicketCorrectAnswer string `json:"exit_ticket_correct_answer"`
}

// CreateGoal creates a class goal and fans it out: one StudentGoal row per
// student on the roster, in the same transaction as the goal itself. The
// created goal is published to the event hub after the commit.
func (gc *GoalsController) CreateGoal(c *fiber.Ctx) error {
	classID, err := strconv.Atoi(c.Params("classId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid class ID")
	}

	var input goalInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.GoalTitle == nil {
		return utils.BadRequest(c, "Missing 'goal_title' in request body")
	}
	if input.GoalDescription == nil {
		return utils.BadRequest(c, "Missing 'goal_description' in request body")
	}

	goal := models.Goal{
		ClassID:                 uint(classID),
		GoalTitle:               *input.GoalTitle,
		GoalDescription:         *input.GoalDescription,
		Deadline:                input.Deadline,
		ExitTicketType:          input.ExitTicketType,
		ExitTicketQuestion:      input.ExitTicketQuestion,
		ExitTicketOptions:       input.ExitTicketOptions,
		ExitTicketCorrectAnswer: input.ExitTicketCorrectAnswer,
	}

	err = gc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&goal).Error; err != nil {
			return err
		}

		var students []models.Student
		if err := tx.Where("class_id = ?", classID).Find(&students).Error; err != nil {
			return err
		}

		for _, student := range students {
			studentGoal := models.StudentGoal{
				StudentID: student.ID,
				GoalID:    goal.ID,
				ClassID:   uint(classID),
			}
			if err := tx.Create(&studentGoal).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not create goal")
	}

	gc.Hub.Publish(events.Event{Type: events.GoalCreated, ClassID: goal.ClassID, Goal: goal})

	c.Location(fmt.Sprintf("%s/%d", c.OriginalURL(), goal.ID))
	return c.Status(fiber.StatusCreated).JSON(goal)
}

// UpdateGoal applies a partial update. Setting date_completed marks the goal
// finished for aggregation; the updated goal is broadcast either way.
func (gc *GoalsController) UpdateGoal(c *fiber.Ctx) error {
	goalID, err := strconv.Atoi(c.Params("goalId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid goal ID")
	}

	type updateInput struct {
		GoalTitle       *string    `json:"goal_title"`
		GoalDescription *string    `json:"goal_description"`
		Deadline        *time.Time `json:"deadline"`
		DateCompleted   *time.Time `json:"date_completed"`
	}

	var input updateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	db := gc.DB.WithContext(c.UserContext())

	var goal models.Goal
	if err := db.First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Goal not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.GoalTitle != nil {
		goal.GoalTitle = *input.GoalTitle
	}
	if input.GoalDescription != nil {
		goal.GoalDescription = *input.GoalDescription
	}
	if input.Deadline != nil {
		goal.Deadline = input.Deadline
	}
	if input.DateCompleted != nil {
		goal.DateCompleted = input.DateCompleted
	}

	if err := db.Save(&goal).Error; err != nil {
		return utils.InternalServerError(c, "Could not update goal")
	}

	gc.Hub.Publish(events.Event{Type: events.GoalUpdated, ClassID: goal.ClassID, Goal: goal})

	return c.JSON(goal)
}

func (gc *GoalsController) DeleteGoal(c *fiber.Ctx) error {
	goalID, err := strconv.Atoi(c.Params("goalId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid goal ID")
	}

	if err := gc.DB.WithContext(c.UserContext()).
		Delete(&models.Goal{}, goalID).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete goal")
	}

	return utils.NoContent(c)
}

// UpdateStudentGoal lets a student record their own completion, evaluation
// and exit-ticket answer. A student token only ever touches its own rows.
func (gc *GoalsController) UpdateStudentGoal(c *fiber.Ctx) error {
	studentGoalID, err := strconv.Atoi(c.Params("studentGoalId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid student goal ID")
	}

	type updateInput struct {
		IsComplete         *bool   `json:"is_complete"`
		Evaluation         *int    `json:"evaluation"`
		ExitTicketResponse *string `json:"exit_ticket_response"`
	}

	var input updateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	db := gc.DB.WithContext(c.UserContext())

	var studentGoal models.StudentGoal
	if err := db.First(&studentGoal, studentGoalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Student goal not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	principal := middleware.PrincipalFromCtx(c)
	if principal != nil && principal.Role == utils.RoleStudent && principal.UserID != studentGoal.StudentID {
		return utils.Error(c, fiber.StatusForbidden, "Cannot update another student's goal")
	}

	if input.IsComplete != nil {
		studentGoal.IsComplete = *input.IsComplete
	}
	if input.Evaluation != nil {
		studentGoal.Evaluation = *input.Evaluation
	}
	if input.ExitTicketResponse != nil {
		studentGoal.ExitTicketResponse = *input.ExitTicketResponse
	}

	if err := db.Save(&studentGoal).Error; err != nil {
		return utils.InternalServerError(c, "Could not update student goal")
	}

	return c.JSON(studentGoal)
}
