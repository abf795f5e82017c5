package domain

import (
	"context"
	"time"
)

const (
	CriterionRelevance     = "relevance"
	CriterionStructure     = "structure"
	CriterionDepth         = "depth"
	CriterionCommunication = "communication"
)

// ScoreCriteria is the fixed rubric: every evaluation scores exactly these
// four criteria with an integer from 1 to 5.
var ScoreCriteria = []string{
	CriterionRelevance,
	CriterionStructure,
	CriterionDepth,
	CriterionCommunication,
}

type Question struct {
	ID               string   `json:"id"`
	Question         string   `json:"question"`
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
	SampleGoodPoints []string `json:"sample_good_points"`
}

type Evaluation struct {
	Scores          map[string]int `json:"scores"`
	Feedback        []string       `json:"feedback"`
	SuggestedAnswer string         `json:"suggested_answer"`
}

type AnsweredItem struct {
	QuestionID string     `json:"question_id"`
	Question   string     `json:"question"`
	UserAnswer string     `json:"user_answer"`
	Evaluation Evaluation `json:"evaluation"`
}

type Session struct {
	SessionID     string         `json:"session_id"`
	UserName      string         `json:"user_name"`
	JobRole       string         `json:"job_role"`
	InterviewType string         `json:"interview_type"`
	CreatedAt     time.Time      `json:"created_at"`
	Questions     []Question     `json:"questions"`
	CurrentIndex  int            `json:"current_index"`
	Answers       []AnsweredItem `json:"answers"`
}

// Completed reports whether every question in the session has been answered.
func (s *Session) Completed() bool {
	return s.CurrentIndex >= len(s.Questions)
}

// CurrentQuestion returns the pending question, or nil once the session is complete.
func (s *Session) CurrentQuestion() *Question {
	if s.Completed() {
		return nil
	}
	return &s.Questions[s.CurrentIndex]
}

type StartSessionRequest struct {
	JobRole       string `json:"job_role" validate:"required,min=2,max=255"`
	InterviewType string `json:"interview_type" validate:"required,min=2,max=100"`
	UserName      string `json:"user_name" validate:"required,min=1,max=255"`
}

type StartSessionResponse struct {
	SessionID string    `json:"session_id"`
	Question  *Question `json:"question"`
}

type AnswerRequest struct {
	SessionID      string `json:"session_id" validate:"required"`
	QuestionID     string `json:"question_id" validate:"required"`
	UserAnswerText string `json:"user_answer_text" validate:"required"`
}

type AnswerResponse struct {
	Evaluation   Evaluation `json:"evaluation"`
	NextQuestion *Question  `json:"next_question"`
}

type SessionSummary struct {
	SessionID      string              `json:"session_id"`
	UserName       string              `json:"user_name"`
	JobRole        string              `json:"job_role"`
	InterviewType  string              `json:"interview_type"`
	CreatedAt      time.Time           `json:"created_at"`
	TotalQuestions int                 `json:"total_questions"`
	Answered       int                 `json:"answered"`
	ScoresAverage  map[string]*float64 `json:"scores_average"`
	Answers        []AnsweredItem      `json:"answers"`
}

// SessionStore is the durable session document. The whole mapping is read
// before any mutation and rewritten wholesale after it; the store is the only
// source of truth across requests.
type SessionStore interface {
	LoadAll(ctx context.Context) (map[string]*Session, error)
	SaveAll(ctx context.Context, sessions map[string]*Session) error
}

type QuestionSource interface {
	LoadBank() ([]Question, error)
	Pick(bank []Question, count int) []Question
}

// TextGenerator is the external text-generation capability the evaluation
// engine delegates to.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

type EvaluationService interface {
	Evaluate(ctx context.Context, question Question, userAnswer, jobRole string) (Evaluation, error)
}

type SessionService interface {
	StartSession(ctx context.Context, req *StartSessionRequest) (*StartSessionResponse, error)
	SubmitAnswer(ctx context.Context, req *AnswerRequest) (*AnswerResponse, error)
	GetSummary(ctx context.Context, sessionID string) (*SessionSummary, error)
	ExportSummaryPDF(ctx context.Context, sessionID string) ([]byte, error)
}
