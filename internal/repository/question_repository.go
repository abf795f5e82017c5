package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/mockmate/interview-coach-server/internal/domain"
)

var ErrQuestionBankUnavailable = errors.New("question bank unavailable")

type questionRepository struct {
	path string
}

func NewQuestionRepository(path string) domain.QuestionSource {
	return &questionRepository{path: path}
}

func (r *questionRepository) LoadBank() ([]domain.Question, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrQuestionBankUnavailable, r.path, err)
	}

	var bank []domain.Question
	if err := json.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrQuestionBankUnavailable, r.path, err)
	}

	return bank, nil
}

// Pick returns a uniformly random permutation of bank truncated to count
// elements, without replacement. The input slice is never modified.
func (r *questionRepository) Pick(bank []domain.Question, count int) []domain.Question {
	shuffled := make([]domain.Question, len(bank))
	copy(shuffled, bank)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count < 0 {
		count = 0
	}
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}
