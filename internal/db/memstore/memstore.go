// Package memstore is an in-memory stand-in for the Postgres queries in
// sqlcgen. It mirrors their ordering and error semantics (pgx.ErrNoRows for
// missing rows) and is used by tests and by local runs without a database.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// Store keeps categories and questions in maps guarded by a single lock.
type Store struct {
	mu         sync.RWMutex
	categories map[int32]sqlcgen.Category
	questions  map[int32]sqlcgen.Question
	nextID     int32
}

func New() *Store {
	return &Store{
		categories: make(map[int32]sqlcgen.Category),
		questions:  make(map[int32]sqlcgen.Question),
		nextID:     1,
	}
}

// AddCategory upserts a category row.
func (s *Store) AddCategory(id int32, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[id] = sqlcgen.Category{ID: id, Type: label}
}

// AddQuestion inserts a question and returns it with its assigned id.
func (s *Store) AddQuestion(question, answer string, category, difficulty int32) sqlcgen.Question {
	q, _ := s.InsertQuestion(context.Background(), sqlcgen.InsertQuestionParams{
		Question:   question,
		Answer:     answer,
		Category:   category,
		Difficulty: difficulty,
	})
	return q
}

func (s *Store) ListCategories(ctx context.Context) ([]sqlcgen.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []sqlcgen.Category
	for _, c := range s.categories {
		items = append(items, c)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Store) GetCategory(ctx context.Context, id int32) (sqlcgen.Category, error) {
	if err := ctx.Err(); err != nil {
		return sqlcgen.Category{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return sqlcgen.Category{}, pgx.ErrNoRows
	}
	return c, nil
}

func (s *Store) ListQuestions(ctx context.Context) ([]sqlcgen.Question, error) {
	return s.filter(ctx, func(sqlcgen.Question) bool { return true })
}

func (s *Store) ListQuestionsByCategory(ctx context.Context, category int32) ([]sqlcgen.Question, error) {
	return s.filter(ctx, func(q sqlcgen.Question) bool { return q.Category == category })
}

func (s *Store) SearchQuestions(ctx context.Context, term string) ([]sqlcgen.Question, error) {
	needle := strings.ToLower(term)
	return s.filter(ctx, func(q sqlcgen.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	})
}

func (s *Store) InsertQuestion(ctx context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	if err := ctx.Err(); err != nil {
		return sqlcgen.Question{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	q := sqlcgen.Question{
		ID:         s.nextID,
		Question:   arg.Question,
		Answer:     arg.Answer,
		Category:   arg.Category,
		Difficulty: arg.Difficulty,
	}
	s.questions[q.ID] = q
	s.nextID++
	return q, nil
}

func (s *Store) DeleteQuestion(ctx context.Context, id int32) (sqlcgen.Question, error) {
	if err := ctx.Err(); err != nil {
		return sqlcgen.Question{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.questions[id]
	if !ok {
		return sqlcgen.Question{}, pgx.ErrNoRows
	}
	delete(s.questions, id)
	return q, nil
}

func (s *Store) filter(ctx context.Context, keep func(sqlcgen.Question) bool) ([]sqlcgen.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []sqlcgen.Question
	for _, q := range s.questions {
		if keep(q) {
			items = append(items, q)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}
