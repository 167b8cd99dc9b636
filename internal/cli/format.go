// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMoney turns a fixed-point amount such as "1234.50" into "$1,234.50".
// Text that is not a number is returned unchanged.
func FormatMoney(amount string) string {
	amount = strings.TrimSpace(amount)
	if _, err := strconv.ParseFloat(amount, 64); err != nil {
		return amount
	}

	neg := strings.HasPrefix(amount, "-")
	amount = strings.TrimPrefix(amount, "-")

	whole, frac, hasFrac := strings.Cut(amount, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return amount
	}

	s := "$" + FormatNumber(n)
	if hasFrac {
		s += "." + frac
	}
	if neg {
		s = "-" + s
	}
	return s
}

// FormatMiles formats a fixed-point distance such as "1234.56" as "1,234.6 mi".
func FormatMiles(miles string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(miles), 64)
	if err != nil {
		return miles
	}
	whole := int64(v)
	tenth := int64((v-float64(whole))*10 + 0.5)
	if tenth >= 10 {
		whole++
		tenth = 0
	}
	return fmt.Sprintf("%s.%d mi", FormatNumber(whole), tenth)
}

// FormatHours appends the unit to a fixed-point hour count.
func FormatHours(hours string) string {
	return hours + " h"
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatCount is FormatNumber for int.
func FormatCount(n int) string {
	return FormatNumber(int64(n))
}

// FormatShare formats part/total as a percentage string; "0.0%" when total is 0.
func FormatShare(part, total int) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}

// FormatStreak renders a day count as "N day(s)".
func FormatStreak(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}
