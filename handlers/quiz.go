package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/andrewpaige1/quizbot-api/middleware"
	"github.com/andrewpaige1/quizbot-api/models"
	"github.com/andrewpaige1/quizbot-api/store"
	"github.com/andrewpaige1/quizbot-api/utils"
)

const minAnswers = 2

var (
	errTooFewAnswers    = errors.New("a question needs at least two answers")
	errOneCorrectAnswer = errors.New("exactly one answer must be correct")
)

type addThemeRequest struct {
	Title string `json:"title" validate:"required,max=50"`
}

type answerRequest struct {
	Title     string `json:"title" validate:"required,max=50"`
	IsCorrect *bool  `json:"is_correct" validate:"required"`
}

type addQuestionRequest struct {
	Title   string          `json:"title" validate:"required,max=50"`
	ThemeID uint            `json:"theme_id"`
	Answers []answerRequest `json:"answers" validate:"required,dive"`
}

// POST /quiz.add_theme
func (h *DBHandler) AddTheme(w http.ResponseWriter, r *http.Request, caller middleware.AuthContext) {
	var req addThemeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := h.Store.Quizzes.GetThemeByTitle(r.Context(), req.Title)
	if err != nil {
		slog.Error("AddTheme: theme lookup failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if existing != nil {
		utils.WriteError(w, http.StatusConflict, "Theme already exists")
		return
	}

	theme, err := h.Store.Quizzes.CreateTheme(r.Context(), req.Title)
	if errors.Is(err, store.ErrConflict) {
		utils.WriteError(w, http.StatusConflict, "Theme already exists")
		return
	}
	if err != nil {
		slog.Error("AddTheme: failed to create theme", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	slog.Info("AddTheme: created theme", "theme_id", theme.ID, "admin_id", caller.Admin.ID)
	utils.WriteJSON(w, http.StatusOK, theme)
}

// GET /quiz.list_themes
func (h *DBHandler) ListThemes(w http.ResponseWriter, r *http.Request, caller middleware.AuthContext) {
	themes, err := h.Store.Quizzes.ListThemes(r.Context())
	if err != nil {
		slog.Error("ListThemes: failed to list themes", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"themes": themes})
}

// POST /quiz.add_question
func (h *DBHandler) AddQuestion(w http.ResponseWriter, r *http.Request, caller middleware.AuthContext) {
	var req addQuestionRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	answers := make([]models.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, models.Answer{Title: a.Title, IsCorrect: *a.IsCorrect})
	}
	if err := checkAnswers(answers); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	theme, err := h.Store.Quizzes.GetThemeByID(r.Context(), req.ThemeID)
	if err != nil {
		slog.Error("AddQuestion: theme lookup failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if theme == nil {
		utils.WriteError(w, http.StatusNotFound, "Theme not found")
		return
	}

	existing, err := h.Store.Quizzes.GetQuestionByTitle(r.Context(), req.Title)
	if err != nil {
		slog.Error("AddQuestion: question lookup failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if existing != nil {
		utils.WriteError(w, http.StatusConflict, "Question already exists")
		return
	}

	question, err := h.Store.Quizzes.CreateQuestion(r.Context(), req.Title, theme.ID, answers)
	switch {
	case errors.Is(err, store.ErrConflict):
		utils.WriteError(w, http.StatusConflict, "Question already exists")
		return
	case errors.Is(err, store.ErrThemeNotFound):
		utils.WriteError(w, http.StatusNotFound, "Theme not found")
		return
	case err != nil:
		slog.Error("AddQuestion: failed to create question", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	slog.Info("AddQuestion: created question", "question_id", question.ID, "theme_id", theme.ID, "admin_id", caller.Admin.ID)
	utils.WriteJSON(w, http.StatusOK, question)
}

// GET /quiz.list_questions?theme_id=
func (h *DBHandler) ListQuestions(w http.ResponseWriter, r *http.Request, caller middleware.AuthContext) {
	var themeID *uint
	if raw := strings.TrimSpace(r.URL.Query().Get("theme_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "theme_id must be a positive integer")
			return
		}
		id := uint(parsed)
		themeID = &id
	}

	questions, err := h.Store.Quizzes.ListQuestions(r.Context(), themeID)
	if err != nil {
		slog.Error("ListQuestions: failed to list questions", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// checkAnswers enforces the answer rules of a new question.
func checkAnswers(answers []models.Answer) error {
	if len(answers) < minAnswers {
		return errTooFewAnswers
	}
	if models.CountCorrect(answers) != 1 {
		return errOneCorrectAnswer
	}
	return nil
}
