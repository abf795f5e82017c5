package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mockmate/interview-coach-server/internal/domain"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionCompleted = errors.New("session already completed")
	ErrQuestionMismatch = errors.New("question does not match the session state")
)

const defaultQuestionsPerSession = 10

type sessionService struct {
	sessionStore        domain.SessionStore
	questionSource      domain.QuestionSource
	evaluationService   domain.EvaluationService
	questionsPerSession int
}

// NewSessionService orchestrates the interview flow. It is the only writer of
// session state: every operation re-reads the full store, mutates one session
// and rewrites the store before returning. No session is cached across
// requests, so concurrent instances always see the durable state.
func NewSessionService(
	sessionStore domain.SessionStore,
	questionSource domain.QuestionSource,
	evaluationService domain.EvaluationService,
	questionsPerSession int,
) domain.SessionService {
	if questionsPerSession <= 0 {
		questionsPerSession = defaultQuestionsPerSession
	}
	return &sessionService{
		sessionStore:        sessionStore,
		questionSource:      questionSource,
		evaluationService:   evaluationService,
		questionsPerSession: questionsPerSession,
	}
}

func (s *sessionService) StartSession(ctx context.Context, req *domain.StartSessionRequest) (*domain.StartSessionResponse, error) {
	sessions, err := s.sessionStore.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	bank, err := s.questionSource.LoadBank()
	if err != nil {
		return nil, err
	}

	// A bank smaller than the requested count just yields a shorter session.
	questions := s.questionSource.Pick(bank, s.questionsPerSession)

	session := &domain.Session{
		SessionID:     uuid.NewString(),
		UserName:      req.UserName,
		JobRole:       req.JobRole,
		InterviewType: req.InterviewType,
		CreatedAt:     time.Now().UTC(),
		Questions:     questions,
		CurrentIndex:  0,
		Answers:       []domain.AnsweredItem{},
	}

	sessions[session.SessionID] = session
	if err := s.sessionStore.SaveAll(ctx, sessions); err != nil {
		return nil, err
	}

	return &domain.StartSessionResponse{
		SessionID: session.SessionID,
		Question:  session.CurrentQuestion(),
	}, nil
}

func (s *sessionService) SubmitAnswer(ctx context.Context, req *domain.AnswerRequest) (*domain.AnswerResponse, error) {
	sessions, err := s.sessionStore.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	session, ok := sessions[req.SessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	if session.Completed() {
		return nil, ErrSessionCompleted
	}

	current := session.Questions[session.CurrentIndex]
	if current.ID != req.QuestionID {
		return nil, ErrQuestionMismatch
	}

	evaluation, err := s.evaluationService.Evaluate(ctx, current, req.UserAnswerText, session.JobRole)
	if err != nil {
		if errors.Is(err, ErrEvaluatorNotConfigured) {
			return nil, err
		}
		// Model flakiness never blocks the interview flow.
		evaluation = FallbackEvaluation()
	}

	session.Answers = append(session.Answers, domain.AnsweredItem{
		QuestionID: current.ID,
		Question:   current.Question,
		UserAnswer: req.UserAnswerText,
		Evaluation: evaluation,
	})
	session.CurrentIndex++

	if err := s.sessionStore.SaveAll(ctx, sessions); err != nil {
		return nil, err
	}

	return &domain.AnswerResponse{
		Evaluation:   evaluation,
		NextQuestion: session.CurrentQuestion(),
	}, nil
}

func (s *sessionService) GetSummary(ctx context.Context, sessionID string) (*domain.SessionSummary, error) {
	sessions, err := s.sessionStore.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	session, ok := sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	averages := make(map[string]*float64, len(domain.ScoreCriteria))
	for _, criterion := range domain.ScoreCriteria {
		var sum, count int
		for _, item := range session.Answers {
			if score, ok := item.Evaluation.Scores[criterion]; ok {
				sum += score
				count++
			}
		}
		if count > 0 {
			avg := float64(sum) / float64(count)
			averages[criterion] = &avg
		} else {
			averages[criterion] = nil
		}
	}

	answers := session.Answers
	if answers == nil {
		answers = []domain.AnsweredItem{}
	}

	return &domain.SessionSummary{
		SessionID:      session.SessionID,
		UserName:       session.UserName,
		JobRole:        session.JobRole,
		InterviewType:  session.InterviewType,
		CreatedAt:      session.CreatedAt,
		TotalQuestions: len(session.Questions),
		Answered:       len(session.Answers),
		ScoresAverage:  averages,
		Answers:        answers,
	}, nil
}

func (s *sessionService) ExportSummaryPDF(ctx context.Context, sessionID string) ([]byte, error) {
	summary, err := s.GetSummary(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 8, "Interview Summary")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, fmt.Sprintf("%s  |  %s  |  %s", summary.UserName, summary.JobRole, summary.InterviewType))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Answered %d of %d questions  |  %s",
		summary.Answered,
		summary.TotalQuestions,
		summary.CreatedAt.Format("Jan 2, 2006 15:04 MST"),
	))
	pdf.Ln(8)

	s.addSection(pdf, "AVERAGE SCORES")
	pdf.SetFont("Helvetica", "", 9)
	for _, criterion := range domain.ScoreCriteria {
		line := fmt.Sprintf("%s: not evaluated", criterion)
		if avg := summary.ScoresAverage[criterion]; avg != nil {
			line = fmt.Sprintf("%s: %.1f / 5", criterion, *avg)
		}
		pdf.Cell(0, 5, line)
		pdf.Ln(5)
	}
	pdf.Ln(4)

	if len(summary.Answers) > 0 {
		s.addSection(pdf, "ANSWERS")
		for i, item := range summary.Answers {
			pdf.SetFont("Helvetica", "B", 9)
			pdf.MultiCell(0, 4, fmt.Sprintf("%d. %s", i+1, item.Question), "", "", false)
			pdf.SetFont("Helvetica", "", 9)
			pdf.MultiCell(0, 4, item.UserAnswer, "", "", false)
			for _, feedback := range item.Evaluation.Feedback {
				pdf.MultiCell(0, 4, "- "+feedback, "", "", false)
			}
			pdf.Ln(2)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render summary pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *sessionService) addSection(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, title)
	pdf.Ln(6)
}
