package question

// QuestionsPerPage is the fixed page size for every paginated listing.
const QuestionsPerPage = 10

// Question is the serialized form of a stored trivia question.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category is a pre-seeded question category.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// CreateRequest carries the fields of a new question. Validation tags only
// apply when the service runs in strict mode.
type CreateRequest struct {
	Question   string `json:"question" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	Category   int    `json:"category" validate:"gte=1"`
	Difficulty int    `json:"difficulty" validate:"gte=1"`
}

// SearchRequest asks for questions containing Term.
type SearchRequest struct {
	Term string `json:"searchTerm"`
}

// CategorySelector scopes the quiz candidate pool to every category or to
// a single one.
type CategorySelector struct {
	all bool
	id  int
}

// AllCategories selects questions from every category.
func AllCategories() CategorySelector {
	return CategorySelector{all: true}
}

// ByCategory selects questions from category id only.
func ByCategory(id int) CategorySelector {
	return CategorySelector{id: id}
}

// All reports whether the selector spans every category.
func (c CategorySelector) All() bool {
	return c.all
}

// CategoryID returns the selected category; ok is false for AllCategories.
func (c CategorySelector) CategoryID() (id int, ok bool) {
	if c.all {
		return 0, false
	}
	return c.id, true
}

// QuizRequest asks for the next unseen question in a category scope.
type QuizRequest struct {
	Category CategorySelector
	Previous []int
}
