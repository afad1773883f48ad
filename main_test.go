package main

import (
	"testing"

	"github.com/andrewpaige1/quizbot-api/config"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_URL", "postgres://quiz@localhost/quiz")
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "secret")
	t.Setenv("SESSION_SECRET", "signing-key")
	t.Setenv("PORT", "9000")
}

func resetFlags(t *testing.T) {
	t.Cleanup(func() {
		port, dbURL, dbType = 0, "", ""
	})
}

func TestLoadEnvironment_FlagsOverride(t *testing.T) {
	setRequiredEnv(t)
	resetFlags(t)

	port, dbURL, dbType = 7000, "file:quiz.db", config.DatabaseSQLite

	env, err := loadEnvironment()
	if err != nil {
		t.Fatalf("loadEnvironment: %v", err)
	}
	if env.Port != 7000 || env.DatabaseURL != "file:quiz.db" || env.DatabaseType != config.DatabaseSQLite {
		t.Errorf("flags not applied: %+v", env)
	}
}

func TestLoadEnvironment_EnvWithoutFlags(t *testing.T) {
	setRequiredEnv(t)
	resetFlags(t)

	env, err := loadEnvironment()
	if err != nil {
		t.Fatalf("loadEnvironment: %v", err)
	}
	if env.Port != 9000 || env.DatabaseType != config.DatabasePostgres {
		t.Errorf("unexpected environment %+v", env)
	}
}

func TestLoadEnvironment_FlagCannotFixInvalidType(t *testing.T) {
	setRequiredEnv(t)
	resetFlags(t)

	dbType = "oracle"
	if _, err := loadEnvironment(); err == nil {
		t.Fatal("expected validation error for unsupported database type")
	}
}
