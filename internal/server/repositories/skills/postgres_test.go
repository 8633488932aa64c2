package skills

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func skillRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "owner_id", "title", "description", "category",
		"credits_per_hour", "active", "created_at", "updated_at",
	}).AddRow("sk-1", "u-1", "Go mentoring", "", "programming", int64(5), true, now, now)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+skills.*RETURNING\s+created_at,\s*updated_at`).
		WithArgs("sk-1", "u-1", "Go mentoring", "", "programming", int64(5), true).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	got, err := repo.Create(context.Background(), &models.Skill{
		ID: "sk-1", OwnerID: "u-1", Title: "Go mentoring",
		Category: "programming", CreditsPerHour: 5, Active: true,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("created_at not populated")
	}
}

func TestGetByID_FoundAndNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT.*FROM\s+skills\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("sk-1").
		WillReturnRows(skillRows())

	got, err := repo.GetByID(context.Background(), "sk-1")
	if err != nil || got.CreditsPerHour != 5 || !got.Active {
		t.Fatalf("GetByID: got %+v err %v", got, err)
	}

	mock.ExpectQuery(`(?s)SELECT.*FROM\s+skills\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "ghost"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestListActive(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT.*FROM\s+skills\s+WHERE\s+active\s+ORDER\s+BY\s+created_at\s+DESC`).
		WillReturnRows(skillRows())

	got, err := repo.ListActive(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("ListActive: n=%d err=%v", len(got), err)
	}
}

func TestListByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT.*FROM\s+skills\s+WHERE\s+owner_id\s*=\s*\$1`).
		WithArgs("u-1").
		WillReturnRows(skillRows())

	got, err := repo.ListByOwner(context.Background(), "u-1")
	if err != nil || len(got) != 1 || got[0].OwnerID != "u-1" {
		t.Fatalf("ListByOwner: %+v err=%v", got, err)
	}
}

func TestSetActive_OwnedAndNotOwned(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)UPDATE\s+skills\s+SET\s+active\s*=\s*\$3.*WHERE\s+id\s*=\s*\$1\s+AND\s+owner_id\s*=\s*\$2`

	mock.ExpectExec(q).
		WithArgs("sk-1", "u-1", false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.SetActive(context.Background(), "sk-1", "u-1", false); err != nil {
		t.Fatalf("SetActive error: %v", err)
	}

	mock.ExpectExec(q).
		WithArgs("sk-1", "intruder", true).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.SetActive(context.Background(), "sk-1", "intruder", true); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
