package domain

import (
	"math"
	"strconv"
	"strings"
)

// FormatINR formats an amount in rupees with Indian digit grouping,
// e.g. 123456.789 becomes "₹1,23,456.79".
func FormatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	paise := int64(math.Round(amount * 100))
	whole := strconv.FormatInt(paise/100, 10)
	frac := paise % 100

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString("₹")
	b.WriteString(groupIndian(whole))
	b.WriteByte('.')
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))
	return b.String()
}

// groupIndian inserts separators after the last three digits and then
// every two digits.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
