package memstore

// seedCategories and seedQuestions mirror db/migrations/00003_seed_trivia.sql.
var seedCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

var seedQuestions = []struct {
	question, answer     string
	category, difficulty int32
}{
	{"Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", "Maya Angelou", 4, 2},
	{"What boxer's original name is Cassius Clay?", "Muhammad Ali", 4, 1},
	{"What movie earned Tom Hanks his third straight Oscar nomination, in 1996?", "Apollo 13", 5, 4},
	{"What actor did author Anne Rice first denounce, then praise in the role of her beloved Lestat?", "Tom Cruise", 5, 4},
	{"Which is the only team to play in every soccer World Cup tournament?", "Brazil", 6, 3},
	{"Which country won the first ever soccer World Cup in 1930?", "Uruguay", 6, 4},
	{"Who invented Peanut Butter?", "George Washington Carver", 4, 2},
	{"What is the largest lake in Africa?", "Lake Victoria", 3, 2},
	{"In which royal palace would you find the Hall of Mirrors?", "The Palace of Versailles", 3, 3},
	{"The Taj Mahal is located in which Indian city?", "Agra", 3, 2},
	{"Which Dutch graphic artist, initials M C, was a creator of optical illusions?", "Escher", 2, 1},
	{"La Giaconda is better known as what?", "Mona Lisa", 2, 3},
	{"How many paintings did Van Gogh sell in his lifetime?", "One", 2, 4},
	{"Which American artist was a pioneer of Abstract Expressionism, and a leading exponent of action painting?", "Jackson Pollock", 2, 2},
	{"What is the heaviest organ in the human body?", "The Liver", 1, 4},
	{"Who discovered penicillin?", "Alexander Fleming", 1, 3},
	{"Hematology is a branch of medicine involving the study of what?", "Blood", 1, 4},
	{"Which dung beetle was worshipped by the ancient Egyptians?", "Scarab", 4, 4},
}

// NewSeeded returns a Store holding the same starter data the migrations load.
func NewSeeded() *Store {
	s := New()
	for i, label := range seedCategories {
		s.AddCategory(int32(i+1), label)
	}
	for _, q := range seedQuestions {
		s.AddQuestion(q.question, q.answer, q.category, q.difficulty)
	}
	return s
}
