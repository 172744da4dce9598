package memstore

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

func TestStoreOrdersByID(t *testing.T) {
	s := New()
	for _, text := range []string{"c", "a", "b"} {
		s.AddQuestion(text, "x", 1, 1)
	}

	got, err := s.ListQuestions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int32{1, 2, 3}, []int32{got[0].ID, got[1].ID, got[2].ID})
}

func TestStoreSearchIsCaseInsensitiveSubstring(t *testing.T) {
	s := New()
	s.AddQuestion("Which Actor played Lestat?", "Tom Cruise", 5, 4)
	s.AddQuestion("100% of what?", "nothing", 1, 1)

	got, err := s.SearchQuestions(context.Background(), "actor")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Tom Cruise", got[0].Answer)

	got, err = s.SearchQuestions(context.Background(), "_")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStoreDeleteMissingReturnsNoRows(t *testing.T) {
	s := New()
	_, err := s.DeleteQuestion(context.Background(), 42)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	_, err = s.GetCategory(context.Background(), 7)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestNewSeededMatchesMigrationData(t *testing.T) {
	ctx := context.Background()
	s := NewSeeded()

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 6)
	assert.Equal(t, sqlcgen.Category{ID: 5, Type: "Entertainment"}, cats[4])

	qs, err := s.ListQuestions(ctx)
	require.NoError(t, err)
	assert.Len(t, qs, 18)
	assert.Equal(t, int32(1), qs[0].ID)

	inserted, err := s.InsertQuestion(ctx, sqlcgen.InsertQuestionParams{Question: "q", Answer: "a", Category: 1, Difficulty: 1})
	require.NoError(t, err)
	assert.Equal(t, int32(19), inserted.ID)
}
