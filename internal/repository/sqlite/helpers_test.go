package sqlite_test

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Houeta/scoperival/internal/models"
	"github.com/Houeta/scoperival/internal/repository/sqlite"
	"github.com/stretchr/testify/require"
)

// newTestDB is a helper function that creates a temporary database for a test.
func newTestDB(t *testing.T) *sqlite.Repository {
	// t.Helper() marks this function as a test helper.
	t.Helper()

	// t.TempDir() creates a temporary directory that is automatically cleaned up after the test.
	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Initialize the repository with the real, but temporary, database file.
	repo, err := sqlite.NewRepository(t.Context(), logger, dbPath)
	require.NoError(t, err, "failed to create test database")

	// t.Cleanup() registers a function to be called when the test finishes.
	t.Cleanup(func() {
		if err = repo.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	return repo
}

// newMockedRepo creates a repository with a mocked database connection for testing failures.
func newMockedRepo(t *testing.T) (*sqlite.Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := sqlite.NewForTest(mockDB)

	t.Cleanup(func() { mockDB.Close() })

	return repo, mock
}

// seedCompetitor stores a user and one competitor owned by that user.
func seedCompetitor(t *testing.T, repo *sqlite.Repository, userID, competitorID string) *models.Competitor {
	t.Helper()

	ctx := t.Context()
	err := repo.CreateUser(ctx, &models.User{
		ID:             userID,
		Email:          userID + "@example.com",
		HashedPassword: "hash",
		CompanyName:    "Acme",
		CreatedAt:      time.Now().UTC(),
	})
	require.NoError(t, err)

	comp := &models.Competitor{
		ID:          competitorID,
		UserID:      userID,
		Domain:      "stripe.com",
		CompanyName: "Stripe Inc.",
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, repo.CreateCompetitor(ctx, comp))

	return comp
}

func ptr[T any](v T) *T {
	return &v
}
