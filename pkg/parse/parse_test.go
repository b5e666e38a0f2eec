package parse

import (
	"testing"
	"time"

	"go-collector-ledger/internal/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	d, err := Money("12.50")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("12.50")))

	d, err = Money("  -3.00 ")
	require.NoError(t, err)
	assert.True(t, d.IsNegative())

	d, err = Money("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = Money("twelve")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	_, err = Money("1,50")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestNonNegativeMoney(t *testing.T) {
	d, err := NonNegativeMoney("0.00")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = NonNegativeMoney("-0.01")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestQuantity(t *testing.T) {
	n, err := Quantity("42")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	n, err = Quantity("")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = Quantity("4.5")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	_, err = Quantity("many")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestDate(t *testing.T) {
	d, err := Date("2026-08-15")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), *d)

	d, err = Date("")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = Date("15/08/2026")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	_, err = Date("2026-13-01")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestDateOrToday(t *testing.T) {
	d, err := DateOrToday("2026-01-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-02", d.Format("2006-01-02"))

	d, err = DateOrToday("")
	require.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), d.Format("2006-01-02"))

	_, err = DateOrToday("bad")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
