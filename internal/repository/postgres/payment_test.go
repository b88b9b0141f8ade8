package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scooter-rental-backend/internal/domain"
)

func TestCompleteSettlementCommitsAsOneTransaction(t *testing.T) {
	mock, store := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE payments SET status=\$1, transaction_id=\$2`).
		WithArgs(string(domain.PaymentStatusCompleted), "txn_abc", sqlmock.AnyArg(), int32(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`UPDATE rentals SET status=\$1, updated_on=\$2 WHERE id=\$3 AND status IN`).
		WillReturnRows(sqlmock.NewRows([]string{"scooter_id"}).AddRow(3))
	mock.ExpectExec(`UPDATE scooters SET status=\$1`).
		WithArgs(string(domain.ScooterStatusAvailable), sqlmock.AnyArg(), int32(3), string(domain.ScooterStatusInUse)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.PaymentRepository.CompleteSettlement(context.Background(), 11, 1, "txn_abc")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteSettlementToleratesAlreadyPaidRental(t *testing.T) {
	mock, store := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE payments SET status=\$1, transaction_id=\$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Zero rows: the rental is already paid. The payment update commits.
	mock.ExpectQuery(`UPDATE rentals SET status=\$1, updated_on=\$2 WHERE id=\$3 AND status IN`).
		WillReturnRows(sqlmock.NewRows([]string{"scooter_id"}))
	mock.ExpectCommit()

	err := store.PaymentRepository.CompleteSettlement(context.Background(), 11, 1, "txn_abc")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteSettlementRollsBackOnMissingPayment(t *testing.T) {
	mock, store := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE payments SET status=\$1, transaction_id=\$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := store.PaymentRepository.CompleteSettlement(context.Background(), 99, 1, "txn_abc")
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
