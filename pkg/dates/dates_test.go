package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(value string) time.Time {
	parsed, err := time.Parse(DefaultForm, value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestListEndPoints(t *testing.T) {
	listed, err := List("2024-03-01", "2024-03-04", 0, "")
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day("2024-03-01"),
		day("2024-03-02"),
		day("2024-03-03"),
		day("2024-03-04"),
	}, listed)
}

func TestListSingleDate(t *testing.T) {
	listed, err := List("", "2024-03-04", 0, "")
	require.NoError(t, err)

	assert.Equal(t, []time.Time{day("2024-03-04")}, listed)
}

func TestListLookBehind(t *testing.T) {
	listed, err := List("", "2024-03-04", 3, "")
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day("2024-03-02"),
		day("2024-03-03"),
		day("2024-03-04"),
	}, listed)
}

func TestListStartBeatsWindow(t *testing.T) {
	listed, err := List("2024-03-03", "2024-03-04", 7, "")
	require.NoError(t, err)

	assert.Equal(t, []time.Time{day("2024-03-03"), day("2024-03-04")}, listed)
}

func TestListDefaultsToToday(t *testing.T) {
	listed, err := List("", "", 0, "")
	require.NoError(t, err)

	assert.Equal(t, []time.Time{Today()}, listed)
}

func TestListCustomForm(t *testing.T) {
	listed, err := List("01/03/2024", "02/03/2024", 0, "02/01/2006")
	require.NoError(t, err)

	assert.Equal(t, []time.Time{day("2024-03-01"), day("2024-03-02")}, listed)
}

func TestListRejectsMalformedDates(t *testing.T) {
	_, err := List("not-a-date", "", 0, "")
	require.ErrorContains(t, err, "invalid start date")

	_, err = List("", "04-03-2024", 0, "")
	require.ErrorContains(t, err, "invalid end date")
}

func TestListRejectsFutureDates(t *testing.T) {
	future := Today().AddDate(0, 0, 7).Format(DefaultForm)

	_, err := List("", future, 0, "")
	require.ErrorContains(t, err, "must not be in the future")

	_, err = List(future, "", 0, "")
	require.ErrorContains(t, err, "must not be in the future")
}

func TestListRejectsStartAfterEnd(t *testing.T) {
	_, err := List("2024-03-04", "2024-03-01", 0, "")
	require.ErrorContains(t, err, "must not be after end date")
}

func TestTodayIsMidnightUTC(t *testing.T) {
	today := Today()

	assert.Equal(t, time.UTC, today.Location())
	assert.Zero(t, today.Hour())
	assert.Zero(t, today.Minute())
	assert.Zero(t, today.Second())
}
