package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// ErrNotFound is returned when a single-row query matches nothing.
var ErrNotFound = errors.New("record not found")

type questionStore interface {
	ListQuestions(ctx context.Context) ([]sqlcgen.Question, error)
	ListQuestionsByCategory(ctx context.Context, category int32) ([]sqlcgen.Question, error)
	SearchQuestions(ctx context.Context, term string) ([]sqlcgen.Question, error)
	InsertQuestion(ctx context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error)
	DeleteQuestion(ctx context.Context, id int32) (sqlcgen.Question, error)
}

// Store is the full query set behind both repositories, satisfied by
// sqlcgen.Queries and memstore.Store.
type Store interface {
	questionStore
	categoryStore
}

// QuestionRepository wraps sqlc queries for question access.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// List returns every question ordered by id.
func (r *QuestionRepository) List(ctx context.Context) ([]sqlcgen.Question, error) {
	return r.store.ListQuestions(ctx)
}

// ListByCategory returns the questions referencing category, ordered by id.
func (r *QuestionRepository) ListByCategory(ctx context.Context, category int32) ([]sqlcgen.Question, error) {
	return r.store.ListQuestionsByCategory(ctx, category)
}

// Search returns questions whose text contains term, ignoring case.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]sqlcgen.Question, error) {
	return r.store.SearchQuestions(ctx, term)
}

// Insert stores a new question and returns the row with its assigned id.
func (r *QuestionRepository) Insert(ctx context.Context, params sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	return r.store.InsertQuestion(ctx, params)
}

// Delete removes a question and returns the deleted row, or ErrNotFound.
func (r *QuestionRepository) Delete(ctx context.Context, id int32) (sqlcgen.Question, error) {
	q, err := r.store.DeleteQuestion(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlcgen.Question{}, ErrNotFound
	}
	return q, err
}
