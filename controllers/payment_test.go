package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tailorpro-backend/config"
	"tailorpro-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

// newTestRouter returns a router with a stub auth layer that injects the
// given user id, mirroring what AuthMiddleware does after token
// verification.
func newTestRouter(userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", userID.String())
		c.Next()
	})
	return r
}

func expectPaymentFlow(mock sqlmock.Sqlmock, orderID uuid.UUID, customerID uuid.UUID, totalAmount, sumAfter float64, wantStatus string) {
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "order_no", "customer_id", "customer_name",
			"status", "total_amount", "paid_amount", "payment_status",
		}).AddRow(orderID.String(), int64(4), customerID.String(), "Amina Yusuf",
			models.OrderPending, totalAmount, 0.0, models.PaymentStatusPending))
	mock.ExpectQuery(`SELECT \* FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "description", "price"}))
	mock.ExpectQuery(`INSERT INTO counters`).
		WithArgs(models.CounterPayment).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(int64(1)))
	mock.ExpectExec(`INSERT INTO "payments"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM "payments" WHERE order_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(sumAfter))
	mock.ExpectExec(`UPDATE "orders" SET`).
		WithArgs(sumAfter, wantStatus, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestCreatePaymentPartial(t *testing.T) {
	db, mock := newMockDB(t)
	config.DB = db

	userID := uuid.New()
	orderID := uuid.New()
	customerID := uuid.New()

	// 30 against a 100 total leaves the order partially paid.
	expectPaymentFlow(mock, orderID, customerID, 100, 30, models.PaymentStatusPartial)

	r := newTestRouter(userID)
	r.POST("/api/payments", CreatePayment)

	body := `{"orderId":"` + orderID.String() + `","amount":30,"method":"cash"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"paymentNo":1`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentCompletesOrder(t *testing.T) {
	db, mock := newMockDB(t)
	config.DB = db

	userID := uuid.New()
	orderID := uuid.New()
	customerID := uuid.New()

	// A second payment of 70 brings the sum to the 100 total: paid.
	expectPaymentFlow(mock, orderID, customerID, 100, 100, models.PaymentStatusPaid)

	r := newTestRouter(userID)
	r.POST("/api/payments", CreatePayment)

	body := `{"orderId":"` + orderID.String() + `","amount":70,"method":"bank_transfer"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentRejectsUnknownMethod(t *testing.T) {
	userID := uuid.New()

	r := newTestRouter(userID)
	r.POST("/api/payments", CreatePayment)

	body := `{"orderId":"` + uuid.New().String() + `","amount":30,"method":"barter"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePaymentRejectsZeroAmount(t *testing.T) {
	userID := uuid.New()

	r := newTestRouter(userID)
	r.POST("/api/payments", CreatePayment)

	body := `{"orderId":"` + uuid.New().String() + `","amount":0,"method":"cash"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
