package question

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/memstore"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

var seedCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

var seedQuestions = []sqlcgen.InsertQuestionParams{
	{Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", Category: 4, Difficulty: 2},
	{Question: "What boxer's original name is Cassius Clay?", Answer: "Muhammad Ali", Category: 4, Difficulty: 1},
	{Question: "What movie earned Tom Hanks his third straight Oscar nomination, in 1996?", Answer: "Apollo 13", Category: 5, Difficulty: 4},
	{Question: "What actor did author Anne Rice first denounce, then praise in the role of her beloved Lestat?", Answer: "Tom Cruise", Category: 5, Difficulty: 4},
	{Question: "Which is the only team to play in every soccer World Cup tournament?", Answer: "Brazil", Category: 6, Difficulty: 3},
	{Question: "Which country won the first ever soccer World Cup in 1930?", Answer: "Uruguay", Category: 6, Difficulty: 4},
	{Question: "What is the largest lake in Africa?", Answer: "Lake Victoria", Category: 3, Difficulty: 2},
	{Question: "The Taj Mahal is located in which Indian city?", Answer: "Agra", Category: 3, Difficulty: 2},
	{Question: "La Giaconda is better known as what?", Answer: "Mona Lisa", Category: 2, Difficulty: 3},
	{Question: "How many paintings did Van Gogh sell in his lifetime?", Answer: "One", Category: 2, Difficulty: 4},
	{Question: "What is the heaviest organ in the human body?", Answer: "The Liver", Category: 1, Difficulty: 4},
	{Question: "Who discovered penicillin?", Answer: "Alexander Fleming", Category: 1, Difficulty: 3},
}

func seededStore() *memstore.Store {
	store := memstore.New()
	for i, label := range seedCategories {
		store.AddCategory(int32(i+1), label)
	}
	for _, q := range seedQuestions {
		store.AddQuestion(q.Question, q.Answer, q.Category, q.Difficulty)
	}
	return store
}

type triviaStore interface {
	ListCategories(ctx context.Context) ([]sqlcgen.Category, error)
	GetCategory(ctx context.Context, id int32) (sqlcgen.Category, error)
	ListQuestions(ctx context.Context) ([]sqlcgen.Question, error)
	ListQuestionsByCategory(ctx context.Context, category int32) ([]sqlcgen.Question, error)
	SearchQuestions(ctx context.Context, term string) ([]sqlcgen.Question, error)
	InsertQuestion(ctx context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error)
	DeleteQuestion(ctx context.Context, id int32) (sqlcgen.Question, error)
}

func newTestService(t *testing.T, store triviaStore, opts ServiceOptions) *Service {
	t.Helper()
	return NewService(
		repository.NewQuestionRepository(store),
		repository.NewCategoryRepository(store),
		zerolog.Nop(),
		opts,
	)
}

// brokenStore fails every query with err.
type brokenStore struct {
	err error
}

func (b brokenStore) ListCategories(context.Context) ([]sqlcgen.Category, error) {
	return nil, b.err
}

func (b brokenStore) GetCategory(context.Context, int32) (sqlcgen.Category, error) {
	return sqlcgen.Category{}, b.err
}

func (b brokenStore) ListQuestions(context.Context) ([]sqlcgen.Question, error) {
	return nil, b.err
}

func (b brokenStore) ListQuestionsByCategory(context.Context, int32) ([]sqlcgen.Question, error) {
	return nil, b.err
}

func (b brokenStore) SearchQuestions(context.Context, string) ([]sqlcgen.Question, error) {
	return nil, b.err
}

func (b brokenStore) InsertQuestion(context.Context, sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	return sqlcgen.Question{}, b.err
}

func (b brokenStore) DeleteQuestion(context.Context, int32) (sqlcgen.Question, error) {
	return sqlcgen.Question{}, b.err
}

type recordingPublisher struct {
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evt Event) error {
	p.events = append(p.events, evt)
	return p.err
}

func idsOf(qs []Question) []int {
	ids := make([]int, 0, len(qs))
	for _, q := range qs {
		ids = append(ids, q.ID)
	}
	return ids
}
