package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatUSD renders dollars with two decimals and thousand separators.
func FormatUSD(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := int64(math.Round(amount * 100))
	return fmt.Sprintf("%s$%s.%02d", sign, formatThousand(cents/100), cents%100)
}

// FormatKHR renders riel as a whole number with thousand separators.
func FormatKHR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%s ៛", sign, formatThousand(int64(math.Round(amount))))
}

// FormatAmount picks the formatter for currency ("USD" or "KHR").
func FormatAmount(amount float64, currency string) string {
	if strings.EqualFold(currency, "KHR") {
		return FormatKHR(amount)
	}
	return FormatUSD(amount)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
