package router

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/andrewpaige1/quizbot-api/config"
	"github.com/andrewpaige1/quizbot-api/handlers"
	"github.com/andrewpaige1/quizbot-api/middleware"
)

// NewRouter wires every endpoint behind CORS, request ids and logging.
func NewRouter(h *handlers.DBHandler, authn *middleware.Authenticator, env config.Environment) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Admin
	mux.HandleFunc("POST /admin.login", h.Login)
	mux.HandleFunc("GET /admin.current", authn.RequireAdmin(h.Current))
	mux.HandleFunc("POST /admin.logout", authn.RequireAdmin(h.Logout))

	// Quiz
	mux.HandleFunc("POST /quiz.add_theme", authn.RequireAdmin(h.AddTheme))
	mux.HandleFunc("GET /quiz.list_themes", authn.RequireAdmin(h.ListThemes))
	mux.HandleFunc("POST /quiz.add_question", authn.RequireAdmin(h.AddQuestion))
	mux.HandleFunc("GET /quiz.list_questions", authn.RequireAdmin(h.ListQuestions))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   env.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "X-Request-ID", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(mux)

	return middleware.RequestID(middleware.WithLogging(corsHandler))
}
