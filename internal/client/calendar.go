package client

import (
	"fmt"
	"time"
)

// CellState classifies a day cell in the month grid.
type CellState int

const (
	// CellOutOfMonth pads the grid before the first and after the last day.
	CellOutOfMonth CellState = iota
	// CellNotWorkedOut is a past or present day with no ledger entry.
	CellNotWorkedOut
	// CellWorkedOut is a past or present day with a ledger entry.
	CellWorkedOut
	// CellFuture is a day after today. Never rendered as worked out.
	CellFuture
)

func (s CellState) String() string {
	switch s {
	case CellOutOfMonth:
		return "out-of-month"
	case CellNotWorkedOut:
		return "not-worked-out"
	case CellWorkedOut:
		return "worked-out"
	case CellFuture:
		return "future"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// DayCell is one slot of the month grid.
type DayCell struct {
	Date  time.Time
	State CellState
}

// MonthGrid is a presentation-ready month of Monday-start week rows. Each row
// holds exactly seven cells; leading and trailing slots outside the month are
// tagged CellOutOfMonth.
type MonthGrid struct {
	Year  int
	Month time.Month
	Weeks [][7]DayCell

	// FutureEntries lists recorded dates after today that fell inside the
	// month. Such entries are rendered as Future, not WorkedOut, and this
	// field lets callers surface the inconsistency instead of hiding it.
	FutureEntries []time.Time
}

// BuildMonthGrid derives the calendar grid for one month from the set of
// recorded dates. Dates are compared at day granularity in UTC; recorded
// entries outside the month are ignored.
func BuildMonthGrid(year int, month time.Month, recorded []time.Time, today time.Time) MonthGrid {
	todayDay := dateOnly(today)

	recordedSet := make(map[time.Time]struct{}, len(recorded))
	for _, d := range recorded {
		recordedSet[dateOnly(d)] = struct{}{}
	}

	grid := MonthGrid{Year: year, Month: month}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Adjust so Monday is start of week. In Go, Monday == 1, Sunday == 0.
	offset := (int(first.Weekday()) + 6) % 7
	cursor := first.AddDate(0, 0, -offset)

	for cursor.Month() == month || cursor.Before(first) {
		var week [7]DayCell
		for i := 0; i < 7; i++ {
			day := cursor.AddDate(0, 0, i)
			cell := DayCell{Date: day}

			_, worked := recordedSet[day]
			switch {
			case day.Month() != month:
				cell.State = CellOutOfMonth
			case day.After(todayDay):
				cell.State = CellFuture
				if worked {
					grid.FutureEntries = append(grid.FutureEntries, day)
				}
			case worked:
				cell.State = CellWorkedOut
			default:
				cell.State = CellNotWorkedOut
			}
			week[i] = cell
		}
		grid.Weeks = append(grid.Weeks, week)
		cursor = cursor.AddDate(0, 0, 7)
	}

	return grid
}

// Streak is a consecutive run of worked-out days.
type Streak struct {
	Start  time.Time
	End    time.Time
	Length int
}

// LongestStreak finds the longest consecutive run of recorded days ending at
// or before today. Ties are broken in favor of the most recent run. Recorded
// dates after today do not count.
func LongestStreak(recorded []time.Time, today time.Time) Streak {
	todayDay := dateOnly(today)

	set := make(map[time.Time]struct{}, len(recorded))
	for _, d := range recorded {
		day := dateOnly(d)
		if !day.After(todayDay) {
			set[day] = struct{}{}
		}
	}

	var best Streak
	for day := range set {
		// Only measure from the start of a run.
		if _, prev := set[day.AddDate(0, 0, -1)]; prev {
			continue
		}
		end := day
		for {
			next := end.AddDate(0, 0, 1)
			if _, ok := set[next]; !ok {
				break
			}
			end = next
		}
		length := int(end.Sub(day).Hours()/24) + 1
		if length > best.Length || (length == best.Length && end.After(best.End)) {
			best = Streak{Start: day, End: end, Length: length}
		}
	}
	return best
}

// CurrentStreak counts the unbroken run of recorded days ending today, or
// yesterday when today has no entry yet.
func CurrentStreak(recorded []time.Time, today time.Time) int {
	todayDay := dateOnly(today)

	set := make(map[time.Time]struct{}, len(recorded))
	for _, d := range recorded {
		set[dateOnly(d)] = struct{}{}
	}

	day := todayDay
	if _, ok := set[day]; !ok {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := set[day]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
