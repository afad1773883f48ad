package handlers

import (
	"github.com/andrewpaige1/quizbot-api/config"
	"github.com/andrewpaige1/quizbot-api/store"
)

// DBHandler serves the admin and quiz endpoints on top of the store.
type DBHandler struct {
	Store *store.Store
	Env   config.Environment
}

func NewDBHandler(s *store.Store, env config.Environment) *DBHandler {
	return &DBHandler{Store: s, Env: env}
}
