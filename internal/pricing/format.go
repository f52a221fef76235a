// internal/pricing/format.go
package pricing

import (
	"encoding/json"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// NotAvailable is shown instead of a price that cannot be read as a number.
const NotAvailable = "N/A"

// FormatPrice renders v with exactly two fractional digits, or NotAvailable
// when v is not a number. It never fails.
func FormatPrice(v any) string {
	d, ok := parse(v)
	if !ok {
		return NotAvailable
	}
	return d.StringFixed(2)
}

func parse(v any) (decimal.Decimal, bool) {
	switch p := v.(type) {
	case nil:
		return decimal.Decimal{}, false
	case decimal.Decimal:
		return p, true
	case *decimal.Decimal:
		if p == nil {
			return decimal.Decimal{}, false
		}
		return *p, true
	case string:
		return parseString(p)
	case *string:
		if p == nil {
			return decimal.Decimal{}, false
		}
		return parseString(*p)
	case json.Number:
		return parseString(p.String())
	case float64:
		return fromFloat(p)
	case float32:
		return fromFloat(float64(p))
	case int:
		return decimal.NewFromInt(int64(p)), true
	case int8:
		return decimal.NewFromInt(int64(p)), true
	case int16:
		return decimal.NewFromInt(int64(p)), true
	case int32:
		return decimal.NewFromInt(int64(p)), true
	case int64:
		return decimal.NewFromInt(p), true
	case uint:
		return fromUint(uint64(p)), true
	case uint8:
		return fromUint(uint64(p)), true
	case uint16:
		return fromUint(uint64(p)), true
	case uint32:
		return fromUint(uint64(p)), true
	case uint64:
		return fromUint(p), true
	default:
		return decimal.Decimal{}, false
	}
}

// parseString reads the longest leading number after trimming, so "12abc"
// and "5 USD" are 12 and 5. A string with no leading digits is not a price.
func parseString(s string) (decimal.Decimal, bool) {
	num := leadingNumber(strings.TrimSpace(s))
	if num == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// leadingNumber returns the prefix of s matching [+-]?digits[.digits][e[+-]digits].
// An exponent marker is only taken when digits follow it.
func leadingNumber(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	digits := i - intStart
	if i < len(s) && s[i] == '.' {
		fracStart := i + 1
		j := fracStart
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > fracStart || digits > 0 {
			digits += j - fracStart
			i = j
		}
	}
	if digits == 0 {
		return ""
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expStart := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > expStart {
			end = j
		}
	}
	num := strings.TrimPrefix(strings.TrimSuffix(s[:end], "."), "+")
	num = strings.NewReplacer(".e", "e", ".E", "E").Replace(num)
	if strings.HasPrefix(num, "-.") {
		return "-0" + num[1:]
	}
	if strings.HasPrefix(num, ".") {
		return "0" + num
	}
	return num
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// decimal.NewFromFloat panics on NaN and infinities.
func fromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(f), true
}

func fromUint(u uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0)
}
