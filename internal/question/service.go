package question

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// Service answers category and question queries and runs the quiz selection.
type Service struct {
	questions  *repository.QuestionRepository
	categories *repository.CategoryRepository
	selector   *Selector
	publisher  Publisher
	validate   *validator.Validate
	logger     zerolog.Logger
	now        func() time.Time
}

type ServiceOptions struct {
	// StrictValidation rejects creates with missing or non-positive fields.
	StrictValidation bool
	// Publisher receives change events; nil disables publishing.
	Publisher Publisher
	// Intn overrides the quiz randomness source.
	Intn func(n int) int
}

func NewService(questions *repository.QuestionRepository, categories *repository.CategoryRepository, logger zerolog.Logger, opts ServiceOptions) *Service {
	s := &Service{
		questions:  questions,
		categories: categories,
		selector:   NewSelector(opts.Intn),
		publisher:  opts.Publisher,
		logger:     logger.With().Str("component", "question_service").Logger(),
		now:        time.Now,
	}
	if opts.StrictValidation {
		s.validate = validator.New(validator.WithRequiredStructEnabled())
	}
	return s
}

// ListCategories returns every category ordered by id, or ErrNotFound when
// there are none.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("list categories: %w", ErrNotFound)
	}
	out := make([]Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, Category{ID: int(row.ID), Type: row.Type})
	}
	return out, nil
}

// CategoryLabels returns the {id: type} map used alongside question listings.
// An empty category table yields an empty map.
func (s *Service) CategoryLabels(ctx context.Context) (map[int]string, error) {
	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return labelsFromRows(rows), nil
}

// CategoryLabel looks up the type of a category. ok is false when the
// category does not exist, which is not an error: questions may reference
// orphaned categories.
func (s *Service) CategoryLabel(ctx context.Context, id int) (label string, ok bool, err error) {
	id32, fits := toInt32(id)
	if !fits {
		return "", false, nil
	}
	row, err := s.categories.Get(ctx, id32)
	if errors.Is(err, repository.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get category %d: %w", id, err)
	}
	return row.Type, true, nil
}

// Questions returns every question ordered by id. Unlike ListQuestions an
// empty table is not an error.
func (s *Service) Questions(ctx context.Context) ([]Question, error) {
	rows, err := s.questions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return toDomain(rows), nil
}

// ListQuestions returns every question ordered by id, or ErrNotFound when
// there are none.
func (s *Service) ListQuestions(ctx context.Context) ([]Question, error) {
	qs, err := s.Questions(ctx)
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, fmt.Errorf("list questions: %w", ErrNotFound)
	}
	return qs, nil
}

// SearchQuestions returns the questions containing term, ignoring case.
// No matches is a valid, empty result.
func (s *Service) SearchQuestions(ctx context.Context, term string) ([]Question, error) {
	rows, err := s.questions.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return toDomain(rows), nil
}

// QuestionsByCategory returns the questions in a category ordered by id.
// An empty and a nonexistent category both yield ErrNotFound.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID int) ([]Question, error) {
	id32, ok := toInt32(categoryID)
	if !ok {
		return nil, fmt.Errorf("questions in category %d: %w", categoryID, ErrNotFound)
	}
	rows, err := s.questions.ListByCategory(ctx, id32)
	if err != nil {
		return nil, fmt.Errorf("questions in category %d: %w", categoryID, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("questions in category %d: %w", categoryID, ErrNotFound)
	}
	return toDomain(rows), nil
}

// CreateQuestion stores a new question and returns it with its assigned id.
func (s *Service) CreateQuestion(ctx context.Context, req CreateRequest) (Question, error) {
	if s.validate != nil {
		if err := s.validate.Struct(req); err != nil {
			return Question{}, fmt.Errorf("create question: %w: %w", ErrUnprocessable, err)
		}
	}

	category, ok := toInt32(req.Category)
	if !ok {
		return Question{}, fmt.Errorf("create question: category %d out of range: %w", req.Category, ErrUnprocessable)
	}
	difficulty, ok := toInt32(req.Difficulty)
	if !ok {
		return Question{}, fmt.Errorf("create question: difficulty %d out of range: %w", req.Difficulty, ErrUnprocessable)
	}

	row, err := s.questions.Insert(ctx, sqlcgen.InsertQuestionParams{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   category,
		Difficulty: difficulty,
	})
	if err != nil {
		return Question{}, fmt.Errorf("create question: %w: %w", ErrUnprocessable, err)
	}

	created := fromRow(row)
	s.publish(ctx, EventQuestionCreated, created)
	return created, nil
}

// DeleteQuestion removes a question. A missing id or a failed delete is
// ErrUnprocessable.
func (s *Service) DeleteQuestion(ctx context.Context, id int) error {
	id32, ok := toInt32(id)
	if !ok {
		return fmt.Errorf("delete question %d: %w", id, ErrUnprocessable)
	}
	row, err := s.questions.Delete(ctx, id32)
	if err != nil {
		return fmt.Errorf("delete question %d: %w: %w", id, ErrUnprocessable, err)
	}

	s.publish(ctx, EventQuestionDeleted, fromRow(row))
	return nil
}

// NextQuizQuestion returns a random question from the selected categories
// that is not in req.Previous, or nil when the pool is exhausted.
func (s *Service) NextQuizQuestion(ctx context.Context, req QuizRequest) (*Question, error) {
	var (
		rows []sqlcgen.Question
		err  error
	)
	if id, ok := req.Category.CategoryID(); ok {
		id32, fits := toInt32(id)
		if !fits {
			return nil, nil
		}
		rows, err = s.questions.ListByCategory(ctx, id32)
	} else {
		rows, err = s.questions.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("quiz candidates: %w", err)
	}

	return s.selector.Pick(toDomain(rows), req.Previous), nil
}

func (s *Service) publish(ctx context.Context, eventType string, q Question) {
	if s.publisher == nil {
		return
	}
	evt := Event{
		Type:       eventType,
		QuestionID: q.ID,
		Category:   q.Category,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Int("question_id", q.ID).Msg("publish question event failed")
	}
}

// labelsFromRows builds the {id: type} map serialized under "categories".
func labelsFromRows(rows []sqlcgen.Category) map[int]string {
	labels := make(map[int]string, len(rows))
	for _, row := range rows {
		labels[int(row.ID)] = row.Type
	}
	return labels
}

func toDomain(rows []sqlcgen.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out
}

func fromRow(row sqlcgen.Question) Question {
	return Question{
		ID:         int(row.ID),
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   int(row.Category),
		Difficulty: int(row.Difficulty),
	}
}

func toInt32(v int) (int32, bool) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, false
	}
	return int32(v), true
}
