package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventplanner/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestRoomRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO rooms \(name, capacity, created_at, updated_at\)`).
					WithArgs("A101", 50, now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("room-1"))
			},
		},
		{
			name: "duplicate name",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO rooms`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "rooms_name_key"})
			},
			wantErr: domain.ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			room := domain.NewRoom("A101", 50, now, now)
			err = NewRoomRepository(db).Create(ctx, room)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, "room-1", room.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRoomRepository_GetByName(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE lower\(name\) = lower\(\$1\)`).
		WithArgs("a101").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity", "created_at", "updated_at"}).
			AddRow("room-1", "A101", 50, now, now))
	mock.ExpectQuery(`WHERE lower\(name\) = lower\(\$1\)`).
		WithArgs("Z999").
		WillReturnError(sql.ErrNoRows)

	repo := NewRoomRepository(db)
	room, err := repo.GetByName(ctx, "a101")
	require.NoError(t, err)
	require.Equal(t, 50, room.Capacity)

	_, err = repo.GetByName(ctx, "Z999")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM rooms ORDER BY name`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity", "created_at", "updated_at"}).
			AddRow("room-1", "A101", 50, now, now).
			AddRow("room-2", "B202", 20, now, now))

	rooms, err := NewRoomRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	require.Equal(t, "B202", rooms[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepository_GetByID_MalformedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM rooms WHERE id = \$1`).
		WithArgs("nope").
		WillReturnError(&pq.Error{Code: "22P02"})

	_, err = NewRoomRepository(db).GetByID(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
