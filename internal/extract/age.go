package extract

import (
	"fmt"
	"time"
)

// Age computes a human-readable whole-year age from a birth date in either
// DD/MM/YYYY or YYYY-MM-DD form. Returns "" for unparseable dates or
// implausible birth years.
func Age(birthDate string, now time.Time) string {
	born, err := time.Parse("02/01/2006", birthDate)
	if err != nil {
		born, err = time.Parse("2006-01-02", birthDate)
	}
	if err != nil || born.Year() < 1900 {
		return ""
	}

	years := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		years--
	}
	if years < 0 {
		return ""
	}
	return fmt.Sprintf("%d anos", years)
}
