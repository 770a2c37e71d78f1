package availability

import (
	"testing"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func booking(t *testing.T, id, vehicleID, start, end string, status domain.BookingStatus) domain.Booking {
	t.Helper()
	return domain.Booking{
		ID:        id,
		VehicleID: vehicleID,
		StartDate: day(t, start),
		EndDate:   day(t, end),
		Status:    status,
	}
}

func dates(entries []BlockedDate) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Date.String())
	}
	return out
}

func TestComputeBlockedDates_InclusiveEnumeration(t *testing.T) {
	bookings := []domain.Booking{
		booking(t, "b1", "v1", "2025-06-01", "2025-06-03", domain.BookingStatusActive),
	}

	blocked := ComputeBlockedDates("v1", bookings)

	assert.Equal(t, []string{"2025-06-01", "2025-06-02", "2025-06-03"}, dates(blocked))
	for _, e := range blocked {
		assert.Equal(t, "b1", e.BookingID)
		assert.Equal(t, domain.BookingStatusActive, e.Status)
	}
}

func TestComputeBlockedDates_Filtering(t *testing.T) {
	bookings := []domain.Booking{
		booking(t, "cancelled", "v1", "2025-06-01", "2025-06-30", domain.BookingStatusCancelled),
		booking(t, "other-car", "v2", "2025-06-01", "2025-06-02", domain.BookingStatusActive),
		booking(t, "service", "v1", "2025-06-10", "2025-06-11", domain.BookingStatusMaintenance),
		booking(t, "legacy", "v1", "2025-06-20", "2025-06-21", domain.BookingStatusCompleted),
		booking(t, "rental", "v1", "2025-06-05", "2025-06-05", domain.BookingStatusActive),
	}

	blocked := ComputeBlockedDates("v1", bookings)

	assert.Equal(t, []string{"2025-06-10", "2025-06-11", "2025-06-05"}, dates(blocked))
	assert.Equal(t, domain.BookingStatusMaintenance, blocked[0].Status)
	assert.Equal(t, "rental", blocked[2].BookingID)
}

func TestComputeBlockedDates_CancelledNeverBlocks(t *testing.T) {
	bookings := []domain.Booking{
		booking(t, "b1", "v1", "2020-01-01", "2030-12-31", domain.BookingStatusCancelled),
	}
	assert.Empty(t, ComputeBlockedDates("v1", bookings))
}

func TestComputeBlockedDates_DegradesToEmpty(t *testing.T) {
	bookings := []domain.Booking{
		booking(t, "b1", "v1", "2025-06-01", "2025-06-03", domain.BookingStatusActive),
	}

	assert.Empty(t, ComputeBlockedDates("", bookings))
	assert.Empty(t, ComputeBlockedDates("v1", nil))
	assert.Empty(t, ComputeBlockedDates("v1", []domain.Booking{}))
}

func TestComputeBlockedDates_SkipsInvertedAndHalfEmptyRanges(t *testing.T) {
	bookings := []domain.Booking{
		booking(t, "inverted", "v1", "2025-06-05", "2025-06-01", domain.BookingStatusActive),
		{ID: "no-end", VehicleID: "v1", StartDate: day(t, "2025-06-01"), Status: domain.BookingStatusActive},
	}
	assert.Empty(t, ComputeBlockedDates("v1", bookings))
}

func TestComputeBlockedDates_CrossesMonthAndYear(t *testing.T) {
	bookings := []domain.Booking{
		booking(t, "b1", "v1", "2025-12-30", "2026-01-02", domain.BookingStatusActive),
	}
	assert.Equal(t,
		[]string{"2025-12-30", "2025-12-31", "2026-01-01", "2026-01-02"},
		dates(ComputeBlockedDates("v1", bookings)))
}

func TestIsBlocked_RoundTrip(t *testing.T) {
	bookings := []domain.Booking{
		booking(t, "b1", "v1", "2025-06-01", "2025-06-04", domain.BookingStatusActive),
		booking(t, "b2", "v1", "2025-06-10", "2025-06-12", domain.BookingStatusMaintenance),
	}
	blocked := ComputeBlockedDates("v1", bookings)

	for _, b := range bookings {
		for d := b.StartDate; !d.After(b.EndDate); d = d.AddDays(1) {
			entry, ok := IsBlocked(d, blocked)
			require.True(t, ok, d.String())
			assert.Equal(t, b.ID, entry.BookingID)

			entry, ok = IsBlockedString(d.String(), blocked)
			require.True(t, ok, d.String())
			assert.Equal(t, b.ID, entry.BookingID)
		}
	}
}

func TestIsBlocked_Misses(t *testing.T) {
	blocked := ComputeBlockedDates("v1", []domain.Booking{
		booking(t, "b1", "v1", "2025-06-01", "2025-06-02", domain.BookingStatusActive),
	})

	_, ok := IsBlocked(day(t, "2025-06-03"), blocked)
	assert.False(t, ok)
	_, ok = IsBlocked(domain.Date{}, blocked)
	assert.False(t, ok)
	_, ok = IsBlockedString("not-a-date", blocked)
	assert.False(t, ok)
	_, ok = IsBlockedString("2025-06-01T18:00:00Z", blocked)
	assert.True(t, ok)
}

func TestIsBlocked_ReturnsFirstMatch(t *testing.T) {
	blocked := []BlockedDate{
		{Date: day(t, "2025-06-01"), Status: domain.BookingStatusActive, BookingID: "first"},
		{Date: day(t, "2025-06-01"), Status: domain.BookingStatusMaintenance, BookingID: "second"},
	}
	entry, ok := IsBlocked(day(t, "2025-06-01"), blocked)
	require.True(t, ok)
	assert.Equal(t, "first", entry.BookingID)
}

func TestWithout(t *testing.T) {
	blocked := ComputeBlockedDates("v1", []domain.Booking{
		booking(t, "b1", "v1", "2025-06-01", "2025-06-02", domain.BookingStatusActive),
		booking(t, "b2", "v1", "2025-06-05", "2025-06-05", domain.BookingStatusActive),
	})

	assert.Equal(t, []string{"2025-06-05"}, dates(Without(blocked, "b1")))
	assert.Len(t, Without(blocked, ""), 3)
}

func TestValidateRangeAt(t *testing.T) {
	today := day(t, "2025-07-01")
	blocked := []BlockedDate{
		{Date: day(t, "2025-07-10"), Status: domain.BookingStatusActive, BookingID: "b1"},
	}

	testCases := []struct {
		name    string
		start   domain.Date
		end     domain.Date
		wantErr error
	}{
		{name: "missing start", end: day(t, "2025-07-02"), wantErr: ErrDatesNotSelected},
		{name: "missing end", start: day(t, "2025-07-02"), wantErr: ErrDatesNotSelected},
		{name: "past start", start: day(t, "2025-06-30"), end: day(t, "2025-07-02"), wantErr: ErrPastDate},
		{name: "starts today", start: today, end: day(t, "2025-07-03")},
		{name: "overlap in the middle", start: day(t, "2025-07-09"), end: day(t, "2025-07-11"), wantErr: ErrOverlap},
		{name: "overlap on the start", start: day(t, "2025-07-10"), end: day(t, "2025-07-12"), wantErr: ErrOverlap},
		{name: "overlap on the end", start: day(t, "2025-07-08"), end: day(t, "2025-07-10"), wantErr: ErrOverlap},
		{name: "ends the day before", start: day(t, "2025-07-05"), end: day(t, "2025-07-09")},
		{name: "starts the day after", start: day(t, "2025-07-11"), end: day(t, "2025-07-20")},
		{name: "reversed range", start: day(t, "2025-07-05"), end: day(t, "2025-07-03"), wantErr: ErrEndBeforeStart},
		{name: "reversed range around a blocked day", start: day(t, "2025-07-12"), end: day(t, "2025-07-08"), wantErr: ErrEndBeforeStart},
		{name: "single day", start: day(t, "2025-07-02"), end: day(t, "2025-07-02")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := ValidateRangeAt(today, tc.start, tc.end, blocked)
			if tc.wantErr == nil {
				assert.True(t, v.Valid)
				assert.NoError(t, v.Err)
				assert.Empty(t, v.Message())
				return
			}
			assert.False(t, v.Valid)
			assert.ErrorIs(t, v.Err, tc.wantErr)
			assert.Equal(t, tc.wantErr.Error(), v.Message())
		})
	}
}

func TestValidateRangeAt_ReportsConflict(t *testing.T) {
	blocked := ComputeBlockedDates("v1", []domain.Booking{
		booking(t, "owner", "v1", "2025-07-10", "2025-07-12", domain.BookingStatusMaintenance),
	})

	v := ValidateRangeAt(day(t, "2025-07-01"), day(t, "2025-07-11"), day(t, "2025-07-15"), blocked)

	require.NotNil(t, v.Conflict)
	assert.Equal(t, "owner", v.Conflict.BookingID)
	assert.Equal(t, "2025-07-11", v.Conflict.Date.String())
}

func TestValidateRangeAt_NoSelfExclusion(t *testing.T) {
	// The engine does not know which booking is being edited; callers remove
	// their own days with Without.
	b := booking(t, "b1", "v1", "2025-07-10", "2025-07-12", domain.BookingStatusActive)
	blocked := ComputeBlockedDates("v1", []domain.Booking{b})
	today := day(t, "2025-07-01")

	v := ValidateRangeAt(today, b.StartDate, b.EndDate, blocked)
	assert.ErrorIs(t, v.Err, ErrOverlap)

	v = ValidateRangeAt(today, b.StartDate, b.EndDate, Without(blocked, b.ID))
	assert.True(t, v.Valid)
}

func TestValidateRange_UsesCurrentDate(t *testing.T) {
	v := ValidateRange(day(t, "2020-01-01"), day(t, "2020-01-02"), nil)
	assert.ErrorIs(t, v.Err, ErrPastDate)

	v = ValidateRange(day(t, "2099-01-01"), day(t, "2099-01-01"), nil)
	assert.True(t, v.Valid)

	today := domain.Today()
	v = ValidateRange(today, today, nil)
	assert.True(t, v.Valid)
}

func TestClassifyDay(t *testing.T) {
	blocked := ComputeBlockedDates("v1", []domain.Booking{
		booking(t, "rent", "v1", "2025-07-10", "2025-07-11", domain.BookingStatusActive),
		booking(t, "svc", "v1", "2025-07-20", "2025-07-20", domain.BookingStatusMaintenance),
	})
	none := domain.Date{}

	testCases := []struct {
		name     string
		day      string
		selStart domain.Date
		selEnd   domain.Date
		want     DayClass
	}{
		{name: "available", day: "2025-07-05", want: DayAvailable},
		{name: "booked", day: "2025-07-10", want: DayBlockedBooked},
		{name: "maintenance", day: "2025-07-20", want: DayBlockedMaintenance},
		{name: "inside selection", day: "2025-07-03", selStart: day(t, "2025-07-01"), selEnd: day(t, "2025-07-05"), want: DaySelected},
		{name: "selection end", day: "2025-07-05", selStart: day(t, "2025-07-01"), selEnd: day(t, "2025-07-05"), want: DaySelected},
		{name: "outside selection", day: "2025-07-06", selStart: day(t, "2025-07-01"), selEnd: day(t, "2025-07-05"), want: DayAvailable},
		{name: "start without end", day: "2025-07-01", selStart: day(t, "2025-07-01"), selEnd: none, want: DaySelected},
		{name: "after start without end", day: "2025-07-02", selStart: day(t, "2025-07-01"), selEnd: none, want: DayAvailable},
		{name: "selection wins over blocking", day: "2025-07-10", selStart: day(t, "2025-07-09"), selEnd: day(t, "2025-07-12"), want: DaySelected},
		{name: "end without start", day: "2025-07-10", selStart: none, selEnd: day(t, "2025-07-12"), want: DayBlockedBooked},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyDay(day(t, tc.day), blocked, tc.selStart, tc.selEnd)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, ClassifyDay(day(t, tc.day), blocked, tc.selStart, tc.selEnd))
		})
	}
}

func TestDeriveStatus(t *testing.T) {
	today := domain.Today()
	base := domain.Booking{ID: "b1", VehicleID: "v1", Status: domain.BookingStatusActive}

	sameDay := base
	sameDay.StartDate, sameDay.EndDate = today, today
	assert.Equal(t, domain.BookingStatusActive, DeriveStatus(sameDay, today))

	tomorrow := base
	tomorrow.StartDate, tomorrow.EndDate = today.AddDays(1), today.AddDays(3)
	assert.Equal(t, domain.BookingStatusUpcoming, DeriveStatus(tomorrow, today))

	yesterday := base
	yesterday.StartDate, yesterday.EndDate = today.AddDays(-5), today.AddDays(-1)
	assert.Equal(t, domain.BookingStatusCompleted, DeriveStatus(yesterday, today))

	for _, b := range []domain.Booking{sameDay, tomorrow, yesterday} {
		b.Status = domain.BookingStatusCancelled
		assert.Equal(t, domain.BookingStatusCancelled, DeriveStatus(b, today))
	}
	assert.Equal(t, domain.BookingStatusActive, yesterday.Status, "stored status untouched")
}

func TestDeriveStatus_MaintenanceFollowsDates(t *testing.T) {
	b := booking(t, "svc", "v1", "2025-07-10", "2025-07-12", domain.BookingStatusMaintenance)

	assert.Equal(t, domain.BookingStatusUpcoming, DeriveStatus(b, day(t, "2025-07-09")))
	assert.Equal(t, domain.BookingStatusActive, DeriveStatus(b, day(t, "2025-07-12")))
	assert.Equal(t, domain.BookingStatusCompleted, DeriveStatus(b, day(t, "2025-07-13")))
}

func TestMonth(t *testing.T) {
	blocked := ComputeBlockedDates("v1", []domain.Booking{
		booking(t, "b1", "v1", "2025-06-30", "2025-07-02", domain.BookingStatusActive),
	})
	today := day(t, "2025-07-04")

	cal := Month(2025, time.July, blocked, day(t, "2025-07-10"), day(t, "2025-07-11"), today)

	assert.Equal(t, 2025, cal.Year)
	assert.Equal(t, time.July, cal.Month)
	assert.Equal(t, 2, cal.Leading) // 2025-07-01 is a Tuesday
	require.Len(t, cal.Days, 31)
	assert.Equal(t, DayBlockedBooked, cal.Days[0].Class)
	assert.Equal(t, DayBlockedBooked, cal.Days[1].Class)
	assert.Equal(t, DayAvailable, cal.Days[2].Class)
	assert.True(t, cal.Days[2].Past)
	assert.True(t, cal.Days[3].Today)
	assert.False(t, cal.Days[3].Past)
	assert.Equal(t, DaySelected, cal.Days[9].Class)
	assert.Equal(t, DaySelected, cal.Days[10].Class)
	assert.Equal(t, "2025-07-31", cal.Days[30].Date.String())
}

func TestMonth_December(t *testing.T) {
	cal := Month(2025, time.December, nil, domain.Date{}, domain.Date{}, day(t, "2025-01-01"))
	require.Len(t, cal.Days, 31)
	assert.Equal(t, "2025-12-31", cal.Days[30].Date.String())

	feb := Month(2024, time.February, nil, domain.Date{}, domain.Date{}, day(t, "2025-01-01"))
	assert.Len(t, feb.Days, 29)
}

func TestSelection_Pick(t *testing.T) {
	today := day(t, "2025-07-01")
	blocked := ComputeBlockedDates("v1", []domain.Booking{
		booking(t, "b1", "v1", "2025-07-10", "2025-07-10", domain.BookingStatusActive),
	})

	var sel Selection

	sel, v := sel.Pick(day(t, "2025-06-20"), blocked, today)
	assert.ErrorIs(t, v.Err, ErrPastDate)
	assert.True(t, sel.Start.IsZero())

	sel, v = sel.Pick(day(t, "2025-07-10"), blocked, today)
	assert.ErrorIs(t, v.Err, ErrOverlap)
	assert.True(t, sel.Start.IsZero())

	sel, v = sel.Pick(day(t, "2025-07-05"), blocked, today)
	require.True(t, v.Valid)
	assert.Equal(t, "2025-07-05", sel.Start.String())
	assert.False(t, sel.Complete())

	next, v := sel.Pick(day(t, "2025-07-12"), blocked, today)
	assert.ErrorIs(t, v.Err, ErrOverlap)
	assert.Equal(t, sel, next)

	next, v = sel.Pick(day(t, "2025-07-04"), blocked, today)
	assert.ErrorIs(t, v.Err, ErrEndBeforeStart)
	assert.Equal(t, sel, next)

	sel, v = sel.Pick(day(t, "2025-07-09"), blocked, today)
	require.True(t, v.Valid)
	assert.True(t, sel.Complete())
	assert.Equal(t, "2025-07-09", sel.End.String())

	sel, v = sel.Pick(day(t, "2025-07-20"), blocked, today)
	require.True(t, v.Valid)
	assert.Equal(t, "2025-07-20", sel.Start.String())
	assert.True(t, sel.End.IsZero())
}
