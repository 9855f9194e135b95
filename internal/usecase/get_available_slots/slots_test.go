package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avtomart/AVM-TestDriveService/internal/domain"
	"github.com/avtomart/AVM-TestDriveService/pkg/types"
)

// testNow фиксированное "текущее время": пятница 7 июня 2024, 12:00
var testNow = time.Date(2024, 6, 7, 12, 0, 0, 0, time.UTC)

// monday 10 июня 2024 - понедельник
var monday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func shortDayHours() *domain.WorkingHours {
	return &domain.WorkingHours{
		DealershipID: 1,
		DayOfWeek:    time.Monday,
		OpenTime:     types.TimeString("09:00"),
		CloseTime:    types.TimeString("11:00"),
		IsOpen:       true,
	}
}

func activeBooking(start, end string) *domain.Booking {
	return &domain.Booking{
		CarID:       10,
		BookingDate: monday,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		Status:      domain.StatusConfirmed,
	}
}

func TestGenerateSlotGridFutureDay(t *testing.T) {
	grid, err := generateSlotGrid(shortDayHours(), monday, testNow)
	require.NoError(t, err)

	// 09:00-11:00 с шагом 30 минут: 4 слота
	require.Len(t, grid, 4)
	assert.Equal(t, types.TimeString("09:00"), grid[0])
	assert.Equal(t, types.TimeString("10:30"), grid[3])
}

func TestGenerateSlotGridSkipsPartialSlotAtClose(t *testing.T) {
	hours := shortDayHours()
	hours.CloseTime = types.TimeString("10:45")

	grid, err := generateSlotGrid(hours, monday, testNow)
	require.NoError(t, err)

	// Слот 10:30-11:00 не помещается до закрытия в 10:45
	require.Len(t, grid, 3)
	assert.Equal(t, types.TimeString("10:00"), grid[2])
}

func TestGenerateSlotGridEmptyCases(t *testing.T) {
	t.Run("past date", func(t *testing.T) {
		pastDate := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
		grid, err := generateSlotGrid(shortDayHours(), pastDate, testNow)
		require.NoError(t, err)
		assert.Empty(t, grid)
	})

	t.Run("closed day", func(t *testing.T) {
		hours := shortDayHours()
		hours.IsOpen = false
		grid, err := generateSlotGrid(hours, monday, testNow)
		require.NoError(t, err)
		assert.Empty(t, grid)
	})

	t.Run("no schedule", func(t *testing.T) {
		grid, err := generateSlotGrid(nil, monday, testNow)
		require.NoError(t, err)
		assert.Empty(t, grid)
	})
}

func TestGenerateSlotGridTodayFiltersStartedSlots(t *testing.T) {
	hours := &domain.WorkingHours{
		DealershipID: 1,
		DayOfWeek:    time.Friday,
		OpenTime:     types.TimeString("09:00"),
		CloseTime:    types.TimeString("14:00"),
		IsOpen:       true,
	}

	// now = 12:00, утренние слоты уже не предлагаем
	grid, err := generateSlotGrid(hours, testNow, testNow)
	require.NoError(t, err)

	require.Len(t, grid, 4)
	assert.Equal(t, types.TimeString("12:00"), grid[0])
	assert.Equal(t, types.TimeString("13:30"), grid[3])
}

func TestMarkAvailabilityConflicts(t *testing.T) {
	grid := []types.TimeString{"09:00", "09:30", "10:00", "10:30"}
	bookings := []*domain.Booking{activeBooking("09:30", "10:00")}

	slots, err := markAvailability(grid, bookings)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	assert.True(t, slots[0].Available)
	assert.False(t, slots[1].Available)
	assert.True(t, slots[2].Available)
	assert.True(t, slots[3].Available)
}

func TestMarkAvailabilityIgnoresInactiveBookings(t *testing.T) {
	cancelled := activeBooking("09:00", "09:30")
	cancelled.Status = domain.StatusCancelled

	slots, err := markAvailability([]types.TimeString{"09:00"}, []*domain.Booking{cancelled})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Available)
}

func TestMarkAvailabilityHourCapacity(t *testing.T) {
	// Два старта в часе 10:00-11:00 исчерпывают лимит часа:
	// слот без пересечений всё равно недоступен
	grid := []types.TimeString{"10:30", "11:00"}
	bookings := []*domain.Booking{
		activeBooking("10:00", "10:10"),
		activeBooking("10:20", "10:30"),
	}

	slots, err := markAvailability(grid, bookings)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.False(t, slots[0].Available) // лимит стартов в часе 10
	assert.True(t, slots[1].Available)  // час 11 свободен
}

func TestMarkAvailabilitySpilloverDoesNotCountInNextHour(t *testing.T) {
	// Бронирование 09:50-10:20 стартует в часе 9 и не занимает лимит часа 10
	grid := []types.TimeString{"10:30"}
	bookings := []*domain.Booking{
		activeBooking("09:50", "10:20"),
		activeBooking("10:20", "10:30"),
	}

	slots, err := markAvailability(grid, bookings)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Available)
}
