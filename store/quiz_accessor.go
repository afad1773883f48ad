package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrewpaige1/quizbot-api/config"
	"github.com/andrewpaige1/quizbot-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizAccessor struct {
	db *config.Database
}

func NewQuizAccessor(db *config.Database) *QuizAccessor {
	return &QuizAccessor{db: db}
}

// CreateTheme inserts the theme and reads it back by title.
func (q *QuizAccessor) CreateTheme(ctx context.Context, title string) (*models.Theme, error) {
	s, err := q.db.Session(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.Create(&models.ThemeModel{Title: title}).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create theme %q: %w", title, ErrConflict)
		}
		return nil, fmt.Errorf("create theme: %w", err)
	}

	return q.GetThemeByTitle(ctx, title)
}

func (q *QuizAccessor) GetThemeByTitle(ctx context.Context, title string) (*models.Theme, error) {
	return q.findTheme(ctx, "title = ?", title)
}

func (q *QuizAccessor) GetThemeByID(ctx context.Context, id uint) (*models.Theme, error) {
	return q.findTheme(ctx, "id = ?", id)
}

func (q *QuizAccessor) findTheme(ctx context.Context, query string, arg interface{}) (*models.Theme, error) {
	s, err := q.db.Session(ctx)
	if err != nil {
		return nil, err
	}

	var row models.ThemeModel
	if err := s.Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get theme: %w", err)
	}

	theme := row.Theme()
	return &theme, nil
}

func (q *QuizAccessor) ListThemes(ctx context.Context) ([]models.Theme, error) {
	s, err := q.db.Session(ctx)
	if err != nil {
		return nil, err
	}

	var rows []models.ThemeModel
	if err := s.Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}

	themes := make([]models.Theme, 0, len(rows))
	for _, row := range rows {
		themes = append(themes, row.Theme())
	}
	return themes, nil
}

// DeleteTheme removes a theme together with its questions and answers.
// It reports whether a theme was deleted.
func (q *QuizAccessor) DeleteTheme(ctx context.Context, id uint) (bool, error) {
	s, err := q.db.Session(ctx)
	if err != nil {
		return false, err
	}

	result := s.Delete(&models.ThemeModel{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete theme %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// CreateQuestion stores a question and its answers in one transaction and
// returns the persisted question with its answers.
func (q *QuizAccessor) CreateQuestion(ctx context.Context, title string, themeID uint, answers []models.Answer) (*models.Question, error) {
	s, err := q.db.Session(ctx)
	if err != nil {
		return nil, err
	}

	var question models.Question
	err = s.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&models.QuestionModel{Title: title, ThemeID: themeID}).Error; err != nil {
			return err
		}

		var created models.QuestionModel
		if err := tx.Where("title = ? AND theme_id = ?", title, themeID).First(&created).Error; err != nil {
			return err
		}

		if len(answers) > 0 {
			rows := make([]models.AnswerModel, 0, len(answers))
			for _, a := range answers {
				rows = append(rows, models.AnswerModel{
					Title:      a.Title,
					IsCorrect:  a.IsCorrect,
					QuestionID: created.ID,
				})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("question_id = ?", created.ID).Order("id asc").Find(&created.Answers).Error; err != nil {
			return err
		}

		question = created.Question()
		return nil
	})
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, fmt.Errorf("create question %q: %w", title, ErrConflict)
		case isForeignKeyViolation(err):
			return nil, fmt.Errorf("create question %q: %w", title, ErrThemeNotFound)
		}
		return nil, fmt.Errorf("create question: %w", err)
	}

	return &question, nil
}

// GetQuestionByTitle returns nil when no question has that title.
func (q *QuizAccessor) GetQuestionByTitle(ctx context.Context, title string) (*models.Question, error) {
	s, err := q.db.Session(ctx)
	if err != nil {
		return nil, err
	}

	var row models.QuestionModel
	if err := withAnswers(s).Where("title = ?", title).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get question by title: %w", err)
	}

	question := row.Question()
	return &question, nil
}

// ListQuestions returns every question, or only those of themeID when set.
func (q *QuizAccessor) ListQuestions(ctx context.Context, themeID *uint) ([]models.Question, error) {
	s, err := q.db.Session(ctx)
	if err != nil {
		return nil, err
	}

	query := withAnswers(s).Order("id asc")
	if themeID != nil {
		query = query.Where("theme_id = ?", *themeID)
	}

	var rows []models.QuestionModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	questions := make([]models.Question, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, row.Question())
	}
	return questions, nil
}

func withAnswers(db *gorm.DB) *gorm.DB {
	return db.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("id asc")
	})
}
