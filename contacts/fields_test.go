package contacts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhone(t *testing.T) {
	for _, raw := range []string{"1234567", "380501234567", "123456789012345"} {
		p, err := NewPhone(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, p.String())
	}

	for _, raw := range []string{"", "123456", "1234567890123456", "+380501234567", "050 123 4567", "050-1234567", "a1234567", "1234567\n"} {
		_, err := NewPhone(raw)
		require.ErrorIs(t, err, ErrValidation, raw)

		var fieldErr *FieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "phone", fieldErr.Field)
		assert.Equal(t, raw, fieldErr.Value)
	}

	t.Run("failed set keeps value", func(t *testing.T) {
		p := MustPhone("0501234567")
		require.ErrorIs(t, p.Set("12"), ErrValidation)
		assert.Equal(t, "0501234567", p.String())
	})

	t.Run("equality by value", func(t *testing.T) {
		assert.True(t, MustPhone("0501234567").Equal(MustPhone("0501234567")))
		assert.False(t, MustPhone("0501234567").Equal(MustPhone("0501234568")))
	})
}

func TestName(t *testing.T) {
	n, err := NewName("john")
	require.NoError(t, err)
	assert.Equal(t, "john", n.String())

	require.ErrorIs(t, n.Set(""), ErrValidation)
	assert.Equal(t, "john", n.String())
}

func TestBirthday(t *testing.T) {
	for _, raw := range []string{"26-11-1978", "29-02-2024", "01-01-2000", "31-12-1999"} {
		b, err := NewBirthday(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, b.String())
	}

	for _, raw := range []string{"31-02-2024", "2024-02-31", "29-02-2023", "1-2-2024", "26/11/1978", "26-11-78", ""} {
		_, err := NewBirthday(raw)
		require.ErrorIs(t, err, ErrValidation, raw)
	}

	t.Run("failed set keeps value", func(t *testing.T) {
		b, err := NewBirthday("26-11-1978")
		require.NoError(t, err)
		require.ErrorIs(t, b.Set("31-02-2024"), ErrValidation)
		assert.Equal(t, "26-11-1978", b.String())
	})
}

func TestDaysToBirthday(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 15, 30, 0, 0, time.UTC) }

	for _, tt := range []struct {
		name     string
		birthday string
		now      time.Time
		want     int
	}{
		{"today", "15-06-1990", date(2024, time.June, 15), 0},
		{"tomorrow", "16-06-1990", date(2024, time.June, 15), 1},
		{"passed this year", "01-01-2000", date(2024, time.January, 2), 365},
		{"passed before a common year", "01-01-2000", date(2023, time.January, 2), 364},
		{"leap day in leap year", "29-02-2000", date(2024, time.February, 28), 1},
		{"leap day in common year", "29-02-2000", date(2025, time.February, 28), 1},
		{"leap day on 1 March of common year", "29-02-2000", date(2025, time.March, 1), 0},
		{"end of year", "01-01-2000", date(2024, time.December, 31), 1},
	} {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBirthday(tt.birthday)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.DaysToBirthday(tt.now))
		})
	}

	t.Run("never negative", func(t *testing.T) {
		b, err := NewBirthday("10-10-2010")
		require.NoError(t, err)
		for now := date(2024, time.January, 1); now.Year() == 2024; now = now.AddDate(0, 0, 1) {
			days := b.DaysToBirthday(now)
			require.GreaterOrEqual(t, days, 0)
			require.Less(t, days, 366)
		}
	})
}
