package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)

	tests := []struct {
		name         string
		email        string
		mockBehavior func()
		wantUser     bool
		wantErr      bool
	}{
		{
			name:  "found",
			email: "test@example.com",
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "email"}).
					AddRow(1, "testuser", "test@example.com")
				mock.ExpectQuery(query).
					WithArgs("test@example.com", 1).
					WillReturnRows(rows)
			},
			wantUser: true,
		},
		{
			name:  "not found is nil not error",
			email: "missing@example.com",
			mockBehavior: func() {
				mock.ExpectQuery(query).
					WithArgs("missing@example.com", 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
		},
		{
			name:  "database error",
			email: "broken@example.com",
			mockBehavior: func() {
				mock.ExpectQuery(query).
					WithArgs("broken@example.com", 1).
					WillReturnError(errors.New("connection timeout"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByEmail(ctx, tt.email)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.wantUser {
				require.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
			} else {
				assert.Nil(t, user)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_UsernameTaken(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE username = $1 AND "users"."deleted_at" IS NULL`)

	mock.ExpectQuery(query).
		WithArgs("taken").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := repo.UsernameTaken(ctx, "taken")
	require.NoError(t, err)
	assert.True(t, taken)

	mock.ExpectQuery(query).
		WithArgs("free").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	taken, err = repo.UsernameTaken(ctx, "free")
	require.NoError(t, err)
	assert.False(t, taken)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "password"=$1,"updated_at"=$2 WHERE id = $3 AND "users"."deleted_at" IS NULL`)).
		WithArgs("new-hash", sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdatePassword(ctx, 7, "new-hash"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Search_UsesLikePattern(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "username", "full_name"}).
		AddRow(1, "gopher", "Go Pher").
		AddRow(2, "gordon", "Gordon Blue")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE (username LIKE $1 OR full_name LIKE $2) AND "users"."deleted_at" IS NULL ORDER BY created_at DESC LIMIT $3`)).
		WithArgs("%go%", "%go%", 50).
		WillReturnRows(rows)

	users, err := repo.Search(ctx, "go", 50, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
