package stats

import "fmt"

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName renders a month number 1-12; anything else yields ""
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// HourLabel renders hour h as "h - h+1", with 23 wrapping to 0
func HourLabel(hour int) string {
	next := hour + 1
	if hour == 23 {
		next = 0
	}
	return fmt.Sprintf("%d - %d", hour, next)
}

// MonthDayLabel renders "M/D" without zero padding
func MonthDayLabel(md MonthDay) string {
	return fmt.Sprintf("%d/%d", md.Month, md.Day)
}
