package models

// QuestionModel is a quiz question; its answers are deleted with it
type QuestionModel struct {
	ID      uint   `gorm:"primaryKey"`
	Title   string `gorm:"unique;not null;size:50"`
	ThemeID uint   `gorm:"not null;index"`

	Answers []AnswerModel `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE;"`
}

func (QuestionModel) TableName() string {
	return "questions"
}

// AnswerModel is one answer option of a question
type AnswerModel struct {
	ID         uint   `gorm:"primaryKey"`
	Title      string `gorm:"not null;size:50"`
	IsCorrect  bool   `gorm:"not null"`
	QuestionID uint   `gorm:"not null;index"`
}

func (AnswerModel) TableName() string {
	return "answers"
}

type Answer struct {
	Title     string `json:"title"`
	IsCorrect bool   `json:"is_correct"`
}

type Question struct {
	ID      uint     `json:"id"`
	Title   string   `json:"title"`
	ThemeID uint     `json:"theme_id"`
	Answers []Answer `json:"answers"`
}

func (m AnswerModel) Answer() Answer {
	return Answer{Title: m.Title, IsCorrect: m.IsCorrect}
}

// Question converts the row and whatever answers were loaded with it.
func (m QuestionModel) Question() Question {
	answers := make([]Answer, 0, len(m.Answers))
	for _, a := range m.Answers {
		answers = append(answers, a.Answer())
	}
	return Question{
		ID:      m.ID,
		Title:   m.Title,
		ThemeID: m.ThemeID,
		Answers: answers,
	}
}

// CountCorrect returns how many answers are marked correct.
func CountCorrect(answers []Answer) int {
	n := 0
	for _, a := range answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}
