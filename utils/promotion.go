package utils

import "time"

// DateLayout is the date format listing templates expect for sale dates
const DateLayout = "2006-01-02"

// PromotionWindow returns the sale start and end dates for a promotion that starts
// offsetDays after now and lasts durationDays.
func PromotionWindow(now time.Time, offsetDays, durationDays int) (start, end string) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := day.AddDate(0, 0, offsetDays)
	to := from.AddDate(0, 0, durationDays)
	return from.Format(DateLayout), to.Format(DateLayout)
}
