package database

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kicksup/kicksup/pkg/metrics"
)

func TestOpenSqliteMemory(t *testing.T) {
	db, err := Open("sqlite", "file:dbtest?mode=memory&cache=shared")
	require.NoError(t, err)

	require.NoError(t, Ping(context.Background(), db))

	before := testutil.CollectAndCount(metrics.DBQueryDuration)
	var n int
	require.NoError(t, db.Raw("SELECT 1").Scan(&n).Error)
	assert.Equal(t, 1, n)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(metrics.DBQueryDuration), before)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(metrics.DBQueryDuration), 1)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "x")
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestPingNil(t *testing.T) {
	assert.Error(t, Ping(context.Background(), nil))
}
