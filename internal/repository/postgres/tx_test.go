package postgres

import (
	"context"
	"errors"
	"testing"

	"explorewithme/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestTransactor_WithinTx(t *testing.T) {
	ctx := context.Background()
	errBoom := errors.New("boom")

	t.Run("commits and routes queries through the tx", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE requests SET status = \$1`).
			WithArgs("CONFIRMED", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		repo := NewRequestRepository(db)
		err = NewTransactor(db).WithinTx(ctx, func(ctx context.Context) error {
			return repo.UpdateStatus(ctx, []string{"r1"}, domain.RequestConfirmed)
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		err = NewTransactor(db).WithinTx(ctx, func(ctx context.Context) error {
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested call joins the outer tx", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		tr := NewTransactor(db)
		calls := 0
		err = tr.WithinTx(ctx, func(ctx context.Context) error {
			return tr.WithinTx(ctx, func(ctx context.Context) error {
				calls++
				return nil
			})
		})
		require.NoError(t, err)
		require.Equal(t, 1, calls)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
