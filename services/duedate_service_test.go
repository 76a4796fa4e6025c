package services

import (
	"context"
	"testing"
	"time"

	"tailorpro-backend/models"
	"tailorpro-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
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

func TestNotificationTier(t *testing.T) {
	tests := []struct {
		hours      int
		wantTier   string
		wantUrgent bool
		wantOK     bool
	}{
		{24, models.TierApproaching, false, true},
		{23, models.TierApproaching, false, true},
		{22, "", false, false},
		{15, "", false, false},
		{12, models.TierUrgent, true, true},
		{11, models.TierUrgent, true, true},
		{10, "", false, false},
		{0, "", false, false},
	}

	for _, tt := range tests {
		tier, urgent, ok := notificationTier(tt.hours)
		assert.Equal(t, tt.wantOK, ok, "hours=%d", tt.hours)
		assert.Equal(t, tt.wantTier, tier, "hours=%d", tt.hours)
		assert.Equal(t, tt.wantUrgent, urgent, "hours=%d", tt.hours)
	}
}

func TestDailyScanCreatesNotification(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewDueDateService(db)

	orderID := uuid.New()
	due := utils.NextDay(time.Now()).Add(10 * time.Hour)

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE \(due_date >= \$1 AND due_date < \$2 AND status <> \$3\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_no", "customer_name", "due_date", "status"}).
			AddRow(orderID.String(), int64(5), "Amina Yusuf", due, models.OrderPending))
	mock.ExpectExec(`INSERT INTO "notifications"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`DELETE FROM "notifications" WHERE order_id IN \(SELECT`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.RunDailyScan(context.Background())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDailyScanIsIdempotentWithinDay(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewDueDateService(db)

	orderID := uuid.New()
	due := utils.NextDay(time.Now()).Add(10 * time.Hour)
	orderRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "order_no", "customer_name", "due_date", "status"}).
			AddRow(orderID.String(), int64(5), "Amina Yusuf", due, models.OrderPending)
	}

	// First run inserts.
	mock.ExpectQuery(`SELECT \* FROM "orders"`).WillReturnRows(orderRows())
	mock.ExpectExec(`INSERT INTO "notifications"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`DELETE FROM "notifications"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Second run hits the dedupe key: ON CONFLICT DO NOTHING, zero rows.
	mock.ExpectQuery(`SELECT \* FROM "orders"`).WillReturnRows(orderRows())
	mock.ExpectExec(`INSERT INTO "notifications"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "notifications"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.RunDailyScan(context.Background()))
	require.NoError(t, s.RunDailyScan(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHourlyScanWindows(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewDueDateService(db)

	now := time.Now()
	approaching := uuid.New()
	outside := uuid.New()

	// One order in the 22-24h window, one between windows: only the first
	// produces a notification.
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE \(due_date >= \$1 AND due_date <= \$2 AND status <> \$3\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_no", "customer_name", "due_date", "status"}).
			AddRow(approaching.String(), int64(8), "Tunde Bakare", now.Add(23*time.Hour+30*time.Minute), models.OrderPending).
			AddRow(outside.String(), int64(9), "Chiamaka Obi", now.Add(15*time.Hour), models.OrderInProgress))
	mock.ExpectExec(`INSERT INTO "notifications"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	reminders, err := s.RunHourlyScan(context.Background())
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, int64(8), reminders[0].OrderNo)
	assert.Equal(t, models.TierApproaching, reminders[0].Tier)
	assert.Equal(t, 23, reminders[0].HoursUntilDue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHourlyScanUrgentWindow(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewDueDateService(db)

	now := time.Now()
	orderID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_no", "customer_name", "due_date", "status"}).
			AddRow(orderID.String(), int64(3), "Amina Yusuf", now.Add(11*time.Hour+30*time.Minute), models.OrderPending))
	mock.ExpectExec(`INSERT INTO "notifications"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	reminders, err := s.RunHourlyScan(context.Background())
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, models.TierUrgent, reminders[0].Tier)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCleanupCompleted(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewDueDateService(db)

	mock.ExpectExec(`DELETE FROM "notifications" WHERE order_id IN \(SELECT`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	removed, err := s.CleanupCompleted(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDailyScanIsolatesPerOrderFailures(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewDueDateService(db)

	first := uuid.New()
	second := uuid.New()
	due := utils.NextDay(time.Now()).Add(9 * time.Hour)

	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_no", "customer_name", "due_date", "status"}).
			AddRow(first.String(), int64(1), "Amina Yusuf", due, models.OrderPending).
			AddRow(second.String(), int64(2), "Tunde Bakare", due, models.OrderPending))
	// First insert blows up; the second order must still be processed.
	mock.ExpectExec(`INSERT INTO "notifications"`).
		WillReturnError(assert.AnError)
	mock.ExpectExec(`INSERT INTO "notifications"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`DELETE FROM "notifications"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.RunDailyScan(context.Background())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
