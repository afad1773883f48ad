package config

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/andrewpaige1/quizbot-api/models"
)

func sqliteEnv(name string) Environment {
	return Environment{
		DatabaseURL:  "file:" + name + "?mode=memory&cache=shared&_foreign_keys=1",
		DatabaseType: DatabaseSQLite,
	}
}

func TestDatabase_ConnectMigratesSchema(t *testing.T) {
	db := NewDatabase(sqliteEnv("config_connect"))
	ctx := context.Background()

	if err := db.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer db.Disconnect()

	// A second Connect keeps the existing pool
	if err := db.Connect(ctx); err != nil {
		t.Fatalf("second Connect: %v", err)
	}

	s, err := db.Session(ctx)
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	for _, table := range []string{"admins", "sessions", "themes", "questions", "answers"} {
		if !s.Migrator().HasTable(table) {
			t.Errorf("table %s was not created", table)
		}
	}
}

func TestDatabase_DisconnectIsIdempotent(t *testing.T) {
	db := NewDatabase(sqliteEnv("config_disconnect"))

	// Never connected
	if err := db.Disconnect(); err != nil {
		t.Fatalf("Disconnect before Connect: %v", err)
	}

	if err := db.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := db.Disconnect(); err != nil {
		t.Fatalf("first Disconnect: %v", err)
	}
	if err := db.Disconnect(); err != nil {
		t.Fatalf("second Disconnect: %v", err)
	}

	if _, err := db.Session(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Session after Disconnect = %v, want ErrNotConnected", err)
	}
}

func TestDatabase_ConnectFailureLeavesDisconnectSafe(t *testing.T) {
	db := NewDatabase(Environment{DatabaseURL: "whatever", DatabaseType: "oracle"})

	if err := db.Connect(context.Background()); err == nil {
		t.Fatal("expected Connect to fail for an unsupported database type")
	}
	if err := db.Disconnect(); err != nil {
		t.Errorf("Disconnect after failed Connect: %v", err)
	}
}

func TestSqliteDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"quiz.db", "quiz.db?_foreign_keys=1"},
		{"file:quiz.db?cache=shared", "file:quiz.db?cache=shared&_foreign_keys=1"},
		{"file:quiz.db?_foreign_keys=0", "file:quiz.db?_foreign_keys=0"},
		{"file:quiz.db?_fk=1", "file:quiz.db?_fk=1"},
	}
	for _, tt := range tests {
		if got := sqliteDSN(tt.dsn); got != tt.want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}

func TestDatabase_FileDSNEnforcesForeignKeys(t *testing.T) {
	db := NewDatabase(Environment{
		DatabaseURL:  filepath.Join(t.TempDir(), "quiz.db"),
		DatabaseType: DatabaseSQLite,
	})
	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer db.Disconnect()

	s, err := db.Session(ctx)
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if err := s.Create(&models.QuestionModel{Title: "Orphan?", ThemeID: 999}).Error; err == nil {
		t.Fatal("expected a foreign key violation for an unknown theme")
	}
}
