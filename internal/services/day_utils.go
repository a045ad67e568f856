package services

import "time"

// DateAtLocation truncates a timestamp to midnight of its calendar day in
// the given location. Every consumer of a (user, day) key goes through this
// so two components can never disagree on which day "now" belongs to.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

func SameCalendarDay(a time.Time, b time.Time, location *time.Location) bool {
	return DateAtLocation(a, location).Equal(DateAtLocation(b, location))
}

// WeekStart returns midnight of the Monday of the week containing value.
func WeekStart(value time.Time, location *time.Location) time.Time {
	day := DateAtLocation(value, location)
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return day.AddDate(0, 0, -offset)
}

func RemoveUint(values []uint, needle uint) []uint {
	filtered := make([]uint, 0, len(values))
	for _, value := range values {
		if value != needle {
			filtered = append(filtered, value)
		}
	}
	return filtered
}
