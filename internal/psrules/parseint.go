package psrules

import (
	"strconv"
	"strings"

	"github.com/airbus-cert/minusone/internal/ast"
	"github.com/airbus-cert/minusone/internal/rule"
	"github.com/airbus-cert/minusone/internal/traverse"
	"github.com/airbus-cert/minusone/internal/value"
)

// integerMultipliers maps PowerShell's binary-size suffixes to the factor
// they scale the literal by ("1kb" == 1024, not 1).
var integerMultipliers = map[string]int64{
	"kb": 1 << 10,
	"mb": 1 << 20,
	"gb": 1 << 30,
	"tb": 1 << 40,
	"pb": 1 << 50,
}

// integerTypeSuffixes are .NET numeric-literal type suffixes that affect
// only the runtime type, not the value: they are stripped and dropped.
var integerTypeSuffixes = []string{"ul", "lu", "l", "u", "d"}

// ParseInt folds a decimal_integer_literal node into Raw(Num(n)) when its
// text parses as a 64-bit integer. A trailing multiplier suffix (kb, mb,
// gb, tb, pb) scales the literal; a trailing .NET type suffix (l, d, u,
// ul) is stripped and dropped, since it only affects the runtime type.
type ParseInt struct{ rule.Base }

func (ParseInt) Name() string { return "ParseInt" }

func (ParseInt) Leave(h ast.Handle, _ traverse.BranchFlow) {
	if h.Kind() != "decimal_integer_literal" {
		return
	}
	n, ok := parseIntegerLiteral(h.Text())
	if !ok {
		return
	}
	h.Set(value.NewNum(n).AsRaw())
}

func parseIntegerLiteral(s string) (int64, bool) {
	digits, suffix := splitIntegerSuffix(s)
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	if suffix == "" {
		return n, true
	}
	if mult, ok := integerMultipliers[strings.ToLower(suffix)]; ok {
		return n * mult, true
	}
	for _, ts := range integerTypeSuffixes {
		if strings.EqualFold(suffix, ts) {
			return n, true
		}
	}
	return 0, false
}

// splitIntegerSuffix splits s into its leading decimal digits and a
// trailing non-digit suffix (possibly empty).
func splitIntegerSuffix(s string) (digits, suffix string) {
	end := len(s)
	for end > 0 {
		c := s[end-1]
		if c >= '0' && c <= '9' {
			break
		}
		end--
	}
	return s[:end], s[end:]
}
