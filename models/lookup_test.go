package models

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFindCustomerByRefInternalID(t *testing.T) {
	db, mock := newMockDB(t)

	userID := uuid.New()
	customerID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "customers" WHERE \(user_id = \$1 AND id = \$2\)`).
		WithArgs(userID, customerID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "customer_no", "name"}).
			AddRow(customerID.String(), userID.String(), int64(3), "Amina Yusuf"))

	customer, err := FindCustomerByRef(db, userID, customerID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(3), customer.CustomerNo)
	assert.Equal(t, "Amina Yusuf", customer.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCustomerByRefSequentialNumber(t *testing.T) {
	db, mock := newMockDB(t)

	userID := uuid.New()
	customerID := uuid.New()

	// A plain integer never parses as a uuid, so only the number lookup runs.
	mock.ExpectQuery(`SELECT \* FROM "customers" WHERE \(user_id = \$1 AND customer_no = \$2\)`).
		WithArgs(userID, int64(12), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "customer_no", "name"}).
			AddRow(customerID.String(), userID.String(), int64(12), "Tunde Bakare"))

	customer, err := FindCustomerByRef(db, userID, "12")
	require.NoError(t, err)
	assert.Equal(t, customerID, customer.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCustomerByRefUnknownUUID(t *testing.T) {
	db, mock := newMockDB(t)

	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "customers" WHERE \(user_id = \$1 AND id = \$2\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := FindCustomerByRef(db, userID, uuid.New().String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCustomerByRefGarbageRef(t *testing.T) {
	db, _ := newMockDB(t)

	_, err := FindCustomerByRef(db, uuid.New(), "not-a-key")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindOrderByRefSequentialNumber(t *testing.T) {
	db, mock := newMockDB(t)

	orderID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_no = \$1`).
		WithArgs(int64(42), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_no", "customer_name", "status"}).
			AddRow(orderID.String(), int64(42), "Amina Yusuf", OrderPending))
	mock.ExpectQuery(`SELECT \* FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "description", "price"}))

	order, err := FindOrderByRef(db, "42")
	require.NoError(t, err)
	assert.Equal(t, orderID, order.ID)
	assert.Equal(t, int64(42), order.OrderNo)
	assert.NoError(t, mock.ExpectationsWereMet())
}
