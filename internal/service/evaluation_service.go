package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mockmate/interview-coach-server/internal/domain"
)

var ErrEvaluatorNotConfigured = errors.New("missing GEMINI_API_KEY environment variable")

const evaluateAnswerPrompt = `You are an interview coach evaluating a candidate for the role: %s.

Question:
%s

Category: %s
Difficulty: %s
Sample good points to look for:
%s

Candidate answer:
%s

Scoring rubric (1-5, integers):
- relevance: Addresses the question and key points.
- structure: Clear organization, concise delivery, logical flow.
- depth: Technical depth for technical questions; specificity/impact for behavioral.
- communication: Clarity of language, avoids filler, confident tone.

Return ONLY valid JSON in this exact shape. No extra text.
{
  "scores": {
    "relevance": 1-5,
    "structure": 1-5,
    "depth": 1-5,
    "communication": 1-5
  },
  "feedback": [
    "Bullet on what to improve or what went well"
  ],
  "suggested_answer": "A short, improved answer (2-5 sentences)"
}`

type evaluationService struct {
	generator domain.TextGenerator
	timeout   time.Duration
}

// NewEvaluationService builds the answer-evaluation engine. A nil generator
// means the evaluator credential is absent; every Evaluate call then fails
// with ErrEvaluatorNotConfigured so a broken deployment surfaces immediately.
func NewEvaluationService(generator domain.TextGenerator, timeout time.Duration) domain.EvaluationService {
	return &evaluationService{
		generator: generator,
		timeout:   timeout,
	}
}

func (s *evaluationService) Evaluate(ctx context.Context, question domain.Question, userAnswer, jobRole string) (domain.Evaluation, error) {
	if s.generator == nil {
		return domain.Evaluation{}, ErrEvaluatorNotConfigured
	}

	goodPoints, err := json.MarshalIndent(question.SampleGoodPoints, "", "  ")
	if err != nil {
		return domain.Evaluation{}, err
	}

	prompt := fmt.Sprintf(evaluateAnswerPrompt,
		jobRole,
		question.Question,
		question.Category,
		question.Difficulty,
		string(goodPoints),
		userAnswer,
	)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	raw, err := s.generator.GenerateJSON(ctx, prompt)
	if err != nil {
		return domain.Evaluation{}, err
	}

	cleaned := StripCodeFence(raw)

	var evaluation domain.Evaluation
	if err := json.Unmarshal([]byte(cleaned), &evaluation); err != nil {
		return domain.Evaluation{}, fmt.Errorf("model returned non-JSON output: %w", err)
	}

	if err := validateEvaluation(evaluation); err != nil {
		return domain.Evaluation{}, err
	}

	return evaluation, nil
}

// StripCodeFence removes a Markdown code fence (optionally tagged "json")
// wrapping the model output, leaving the bare payload for parsing.
func StripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	cleaned = strings.Trim(cleaned, "`")
	cleaned = strings.TrimPrefix(strings.TrimSpace(cleaned), "json")
	return strings.TrimSpace(cleaned)
}

func validateEvaluation(evaluation domain.Evaluation) error {
	if len(evaluation.Scores) != len(domain.ScoreCriteria) {
		return fmt.Errorf("expected %d score criteria, got %d", len(domain.ScoreCriteria), len(evaluation.Scores))
	}
	for _, criterion := range domain.ScoreCriteria {
		score, ok := evaluation.Scores[criterion]
		if !ok {
			return fmt.Errorf("missing score criterion %q", criterion)
		}
		if score < 1 || score > 5 {
			return fmt.Errorf("score %q out of range: %d", criterion, score)
		}
	}
	return nil
}

// FallbackEvaluation is the fixed neutral result substituted when the model
// output cannot be used. The interview flow keeps moving on evaluator
// flakiness; only a missing credential is allowed to fail a request.
func FallbackEvaluation() domain.Evaluation {
	return domain.Evaluation{
		Scores: map[string]int{
			domain.CriterionRelevance:     3,
			domain.CriterionStructure:     3,
			domain.CriterionDepth:         3,
			domain.CriterionCommunication: 3,
		},
		Feedback: []string{
			"LLM evaluation failed; returning default scores.",
			"Ensure GEMINI_API_KEY is set and the backend can reach Gemini.",
		},
		SuggestedAnswer: "Provide a clear, concise, and structured answer covering the key points.",
	}
}
