package models

import (
	"time"

	"gorm.io/gorm"
)

// Goal is a session goal set by a teacher for a whole class. It counts as
// completed once DateCompleted is set; aggregation treats it as immutable
// from then on.
type Goal struct {
	gorm.Model
	ClassID         uint       `gorm:"index;not null" json:"class_id"`
	GoalTitle       string     `gorm:"not null" json:"goal_title"`
	GoalDescription string     `json:"goal_description"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	DateCompleted   *time.Time `gorm:"index" json:"date_completed,omitempty"`

	// Exit ticket: the short assessment question attached to the goal.
	ExitTicketType          string `json:"exit_ticket_type"`
	ExitTicketQuestion      string `json:"exit_ticket_question"`
	ExitTicketOptions       string `json:"exit_ticket_options"`
	ExitTicketCorrectAnswer string `json:"exit_ticket_correct_answer"`
}

// StudentGoal is the per-student instance of a Goal, one row per
// (student, goal) pair, created when the goal fans out to the roster.
// Evaluation is the student's self-evaluation score, 0-3.
type StudentGoal struct {
	gorm.Model
	StudentID          uint   `gorm:"index;not null" json:"student_id"`
	GoalID             uint   `gorm:"index;not null" json:"goal_id"`
	ClassID            uint   `gorm:"index;not null" json:"class_id"`
	IsComplete         bool   `json:"is_complete"`
	Evaluation         int    `json:"evaluation"`
	ExitTicketResponse string `json:"exit_ticket_response"`
}

type Subgoal struct {
	gorm.Model
	GoalID             uint   `gorm:"index;not null" json:"goal_id"`
	SubgoalTitle       string `gorm:"not null" json:"subgoal_title"`
	SubgoalDescription string `json:"subgoal_description"`
}

type StudentSubgoal struct {
	gorm.Model
	StudentGoalID uint   `gorm:"index;not null" json:"student_goal_id"`
	SubgoalID     uint   `gorm:"index" json:"subgoal_id"`
	SubgoalTitle  string `json:"subgoal_title"`
	IsComplete    bool   `json:"is_complete"`
}
