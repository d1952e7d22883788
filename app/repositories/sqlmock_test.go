package repositories_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/app/repositories"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// The conditional decrement is what keeps stock from going negative when
// two orders race, so the exact statement shape matters on Postgres too.
func TestPlaceUsesConditionalDecrement(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositories.NewOrderRepository(db)

	productID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "products" SET "stock"=stock - \$1,"updated_at"=\$2 WHERE \(?id = \$3 AND stock >= \$4\)?`).
		WithArgs(3, sqlmock.AnyArg(), productID, 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Place(context.Background(), &models.Order{
		UserID: uuid.New(),
		Items: []models.OrderItem{{
			ProductID: productID, Quantity: 3,
			UnitPrice: decimal.NewFromInt(10), Subtotal: decimal.NewFromInt(30),
		}},
	})

	var stockErr *repositories.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, productID, stockErr.ProductID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsForUserCounts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositories.NewOrderRepository(db)

	userID := uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	owns, err := repo.ExistsForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, owns)
	assert.NoError(t, mock.ExpectationsWereMet())
}
