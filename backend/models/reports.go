package models

// Derived report shapes. Nothing here is stored: the reports controller
// computes these from Goal/StudentGoal snapshots at query time.

// GoalProgressSummary describes one completed goal for the class dashboard.
// The pointer fields stay nil for a goal that has no StudentGoal rows yet, so
// the summary is emitted without them instead of dividing by zero.
type GoalProgressSummary struct {
	ID             uint    `json:"id"`
	GoalTitle      string  `json:"goal_title"`
	Time           string  `json:"time"`
	TotalCompleted *int64  `json:"total_completed,omitempty"`
	TotalStudents  *int64  `json:"total_students,omitempty"`
	AvgCompleted   *string `json:"avg_completed,omitempty"`
	EvalTotal      *int64  `json:"eval_total,omitempty"`
	EvalAvg        *string `json:"eval_avg,omitempty"`
	EvalPercentage *string `json:"eval_percentage,omitempty"`
}

// StudentResponse is one roster row for a single goal: who the student is,
// whether they finished, and how they scored themselves.
type StudentResponse struct {
	GoalID    uint   `json:"id"`
	FullName  string `json:"full_name"`
	Complete  bool   `json:"complete"`
	EvalScore int    `json:"eval_score"`
}

// ExitTicketInfo carries the goal's exit-ticket definition together with the
// response tally. CorrectResAvg is "n/a" when no responses exist yet.
type ExitTicketInfo struct {
	QuestionType    string `json:"question_type"`
	Question        string `json:"question"`
	Options         string `json:"options"`
	Answer          string `json:"answer"`
	CorrectResTotal int64  `json:"correct_res_total"`
	ResTotal        int64  `json:"res_total"`
	CorrectResAvg   string `json:"correct_res_avg"`
}
