package ledger

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// amountPattern captures the first run of digits and an optional Korean
// magnitude unit immediately following it.
var amountPattern = regexp.MustCompile(`(\d+)([만억조])?`)

// ParseKoreanAmount converts Korean numeral-with-unit notation ("30만",
// "2억", "1조") into a won amount. Text without a unit parses as the literal
// number. This is a total function: anything unparseable yields 0, and
// callers treat 0 as a valid default rather than an error.
func ParseKoreanAmount(text string) int64 {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}

	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0
	}

	switch m[2] {
	case "만":
		return n * 10_000
	case "억":
		return n * 100_000_000
	case "조":
		return n * 1_000_000_000_000
	default:
		return n
	}
}

// FormatNumber renders n with thousands grouping ("1234567" → "1,234,567").
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatWon renders a won amount with grouping and the currency marker.
func FormatWon(n int64) string {
	return FormatNumber(n) + "원"
}

// dottedDatePattern matches the localized "YYYY. M. D." date form, with an
// optional trailing period and flexible spacing.
var dottedDatePattern = regexp.MustCompile(`^(\d{4})\.\s*(\d{1,2})\.\s*(\d{1,2})\.?$`)

// ParseDottedDate converts "2024. 3. 15." style text into a calendar date.
// Returns false for any mismatch; callers omit the date instead of failing.
func ParseDottedDate(text string) (time.Time, bool) {
	m := dottedDatePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}
