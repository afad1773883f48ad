package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/andrewpaige1/quizbot-api/models"
	"github.com/andrewpaige1/quizbot-api/store"
	"github.com/andrewpaige1/quizbot-api/testutil"
)

func TestAdminAccessor_GetByEmailMissing(t *testing.T) {
	s, _ := testutil.SetupTestStore(t)
	ctx := context.Background()

	for _, email := range []string{"nobody@example.com", "", "ADMIN@EXAMPLE.COM"} {
		admin, err := s.Admins.GetByEmail(ctx, email)
		if err != nil {
			t.Fatalf("GetByEmail(%q): %v", email, err)
		}
		if admin != nil {
			t.Errorf("GetByEmail(%q) = %+v, want nil", email, admin)
		}
	}
}

func TestAdminAccessor_BootstrapAdminStoresDigest(t *testing.T) {
	s, _ := testutil.SetupTestStore(t)

	admin := testutil.BootstrapAdmin(t, s)
	if admin.Password != models.HashPassword(testutil.TestAdminPassword) {
		t.Errorf("stored password %q is not the SHA-256 digest", admin.Password)
	}
	if !admin.IsPasswordValid(testutil.TestAdminPassword) {
		t.Error("bootstrap admin rejects its configured password")
	}
}

func TestAdminAccessor_CreateDuplicateConflicts(t *testing.T) {
	s, _ := testutil.SetupTestStore(t)

	_, err := s.Admins.CreateAdmin(context.Background(), testutil.TestAdminEmail, "other")
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("CreateAdmin duplicate = %v, want ErrConflict", err)
	}
}

func TestAdminAccessor_EnsureAdminIsIdempotent(t *testing.T) {
	s, _ := testutil.SetupTestStore(t)
	ctx := context.Background()
	original := testutil.BootstrapAdmin(t, s)

	again, err := s.Admins.EnsureAdmin(ctx, testutil.TestAdminEmail, "a different password")
	if err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	if again.ID != original.ID {
		t.Errorf("EnsureAdmin returned id %d, want %d", again.ID, original.ID)
	}
	if !again.IsPasswordValid(testutil.TestAdminPassword) {
		t.Error("EnsureAdmin must not overwrite the existing password")
	}

	created, err := s.Admins.EnsureAdmin(ctx, "second@example.com", "pw")
	if err != nil {
		t.Fatalf("EnsureAdmin new: %v", err)
	}
	if created.ID == original.ID || created.Email != "second@example.com" {
		t.Errorf("unexpected admin %+v", created)
	}
}
