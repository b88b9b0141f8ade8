package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scooter-rental-backend/internal/domain"
)

func TestCreateCardDemotesOthersWhenDefault(t *testing.T) {
	mock, store := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE payment_cards SET is_default = FALSE WHERE user_id = \$1`).
		WithArgs(int32(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`INSERT INTO payment_cards`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectCommit()

	card := &domain.PaymentCard{UserID: 7, CardNumberLast4: "4242", CardType: domain.NetworkVisa}
	err := store.CardRepository.Create(context.Background(), card, true)
	require.NoError(t, err)
	assert.Equal(t, int32(9), card.ID)
	assert.True(t, card.IsDefault)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCardNonDefaultSkipsDemotion(t *testing.T) {
	mock, store := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO payment_cards`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectCommit()

	err := store.CardRepository.Create(context.Background(), &domain.PaymentCard{UserID: 7}, false)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteDefaultCardPromotesSurvivor(t *testing.T) {
	mock, store := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`DELETE FROM payment_cards WHERE id = \$1 AND user_id = \$2 RETURNING is_default`).
		WithArgs(int32(5), int32(7)).
		WillReturnRows(sqlmock.NewRows([]string{"is_default"}).AddRow(true))
	mock.ExpectExec(`UPDATE payment_cards SET is_default = TRUE`).
		WithArgs(int32(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.CardRepository.Delete(context.Background(), 5, 7)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNonDefaultCardLeavesDefaultAlone(t *testing.T) {
	mock, store := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`DELETE FROM payment_cards WHERE id = \$1 AND user_id = \$2 RETURNING is_default`).
		WithArgs(int32(6), int32(7)).
		WillReturnRows(sqlmock.NewRows([]string{"is_default"}).AddRow(false))
	mock.ExpectCommit()

	err := store.CardRepository.Delete(context.Background(), 6, 7)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingCard(t *testing.T) {
	mock, store := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`DELETE FROM payment_cards WHERE id = \$1 AND user_id = \$2 RETURNING is_default`).
		WithArgs(int32(99), int32(7)).
		WillReturnRows(sqlmock.NewRows([]string{"is_default"}))
	mock.ExpectRollback()

	err := store.CardRepository.Delete(context.Background(), 99, 7)
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}
