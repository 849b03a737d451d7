// Package format renders listing values the way the pages show them.
package format

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DateLayout is the en-US short calendar date (M/D/YYYY).
const DateLayout = "1/2/2006"

// DateTimeLayout is the en-US date and time used on the item page.
const DateTimeLayout = "1/2/2006, 3:04:05 PM"

// RelativeTime describes how long ago t was relative to now:
// under an hour "Just now", under a day "N hour(s) ago", under a week
// "N day(s) ago", and a calendar date otherwise.
func RelativeTime(t, now time.Time) string {
	hours := int(now.Sub(t) / time.Hour)

	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return plural(hours, "hour") + " ago"
	}

	days := hours / 24
	if days < 7 {
		return plural(days, "day") + " ago"
	}
	return Date(t)
}

// Date formats t as a calendar date in the local time zone.
func Date(t time.Time) string {
	return t.Local().Format(DateLayout)
}

// DateTime formats t as a date and time in the local time zone.
func DateTime(t time.Time) string {
	return t.Local().Format(DateTimeLayout)
}

// Price formats an amount in US dollars: symbol, thousands separators and
// two decimals.
func Price(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	whole, cents, _ := strings.Cut(amount.StringFixed(2), ".")
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return sign + "$" + whole + "." + cents
	}
	return sign + "$" + humanize.BigComma(n) + "." + cents
}

// Bytes formats a byte count for hints such as "max 5.0 MiB".
func Bytes(n int64) string {
	return humanize.IBytes(uint64(n))
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
