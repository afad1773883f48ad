package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andrewpaige1/quizbot-api/auth"
	"github.com/andrewpaige1/quizbot-api/middleware"
	"github.com/andrewpaige1/quizbot-api/store"
	"github.com/andrewpaige1/quizbot-api/testutil"
)

type testServer struct {
	mux    *http.ServeMux
	store  *store.Store
	cookie *http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s, env := testutil.SetupTestStore(t)
	tokens, err := auth.NewValidator([]byte(env.SessionSecret))
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	authn := middleware.NewAuthenticator(s.Sessions, tokens)
	h := NewDBHandler(s, env)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin.login", h.Login)
	mux.HandleFunc("GET /admin.current", authn.RequireAdmin(h.Current))
	mux.HandleFunc("POST /admin.logout", authn.RequireAdmin(h.Logout))
	mux.HandleFunc("POST /quiz.add_theme", authn.RequireAdmin(h.AddTheme))
	mux.HandleFunc("GET /quiz.list_themes", authn.RequireAdmin(h.ListThemes))
	mux.HandleFunc("POST /quiz.add_question", authn.RequireAdmin(h.AddQuestion))
	mux.HandleFunc("GET /quiz.list_questions", authn.RequireAdmin(h.ListQuestions))

	return &testServer{
		mux:    mux,
		store:  s,
		cookie: testutil.SessionCookie(t, s, env, testutil.BootstrapAdmin(t, s)),
	}
}

func (ts *testServer) do(method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.mux.ServeHTTP(w, testutil.MakeRequest(method, path, body, cookie))
	return w
}
