// Package dates builds the reporting periods the readers cover.
package dates

import (
	"fmt"
	"log"
	"time"
)

// DefaultForm is the layout used for date strings on the command line.
const DefaultForm = "2006-01-02"

// List creates a continuous, ascending list of dates.
//
// Three ways of defining the period are supported:
//
//  1. End-points: start and end dates.
//  2. Look behind: an optional end date and a window of days.
//  3. Single date: an optional end date on its own.
//
// Start and end are date strings in the given form; empty strings are
// ignored. If end is empty, today is used. Looking ahead is not
// allowed, so dates in the future are rejected.
func List(start, end string, window int, form string) ([]time.Time, error) {
	if form == "" {
		form = DefaultForm
	}

	startDate, err := parse(start, form)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := parse(end, form)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}

	today := Today()
	if endDate.IsZero() {
		endDate = today
	}

	if err := check(startDate, endDate, window, today); err != nil {
		return nil, err
	}

	if window <= 0 {
		window = 1
	}
	if !startDate.IsZero() {
		window = int(endDate.Sub(startDate).Hours()/24) + 1
	}

	listed := make([]time.Time, window)
	for i := 0; i < window; i++ {
		listed[window-1-i] = endDate.AddDate(0, 0, -i)
	}

	return listed, nil
}

// Today returns the current date truncated to midnight UTC.
func Today() time.Time {
	return truncate(time.Now().UTC())
}

// parse converts a date string to a date, passing empty strings through
// as the zero time.
func parse(date, form string) (time.Time, error) {
	if date == "" {
		return time.Time{}, nil
	}

	parsed, err := time.Parse(form, date)
	if err != nil {
		return time.Time{}, err
	}

	return truncate(parsed), nil
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// check validates the period parameters. Start and window together is
// allowed but the window is ignored, which is worth a warning rather
// than a failure.
func check(start, end time.Time, window int, today time.Time) error {
	if !start.IsZero() && window > 0 {
		log.Print("Ignoring window as start and end dates specified.")
	}

	if end.After(today) {
		return fmt.Errorf("end date %s must not be in the future", end.Format(DefaultForm))
	}

	if !start.IsZero() {
		if start.After(today) {
			return fmt.Errorf("start date %s must not be in the future", start.Format(DefaultForm))
		}
		if start.After(end) {
			return fmt.Errorf("start date %s must not be after end date %s",
				start.Format(DefaultForm), end.Format(DefaultForm))
		}
	}

	return nil
}
