package unit

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tohch4/pinty/errors"
)

// Ratio is an exact rational number used for unit and dimension
// exponents. The zero value is the rational 0. Ratios are normalized
// (positive denominator, lowest terms) so they compare with == and can
// be stored in maps by value.
type Ratio struct {
	num int64
	den int64
}

// R returns the integer n as a Ratio.
func R(n int64) Ratio {
	return Ratio{num: n, den: 1}
}

// RatioOf returns the normalized rational n/d.
// A zero denominator is a programming error and panics.
func RatioOf(n, d int64) Ratio {
	if d == 0 {
		panic("unit: zero denominator in RatioOf")
	}
	return normalize(n, d)
}

func normalize(n, d int64) Ratio {
	if n == 0 {
		return Ratio{num: 0, den: 1}
	}
	if d < 0 {
		n, d = -n, -d
	}
	g := gcd(abs64(n), d)
	return Ratio{num: n / g, den: d / g}
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ParseRatio parses "3", "-2" or "n/d" forms such as "1/2".
func ParseRatio(s string) (Ratio, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ratio{}, &errors.DefinitionSyntaxError{Field: "exponent", Msg: "empty exponent"}
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
		if err != nil {
			return Ratio{}, &errors.DefinitionSyntaxError{Field: "exponent", Msg: fmt.Sprintf("bad numerator in %q", s)}
		}
		d, err := strconv.ParseInt(strings.TrimSpace(den), 10, 64)
		if err != nil || d == 0 {
			return Ratio{}, &errors.DefinitionSyntaxError{Field: "exponent", Msg: fmt.Sprintf("bad denominator in %q", s)}
		}
		return normalize(n, d), nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Ratio{}, &errors.DefinitionSyntaxError{Field: "exponent", Msg: fmt.Sprintf("bad exponent %q", s)}
	}
	return R(n), nil
}

// Num returns the normalized numerator.
func (r Ratio) Num() int64 {
	return r.num
}

// Den returns the normalized denominator. It is 1 for the zero value.
func (r Ratio) Den() int64 {
	if r.den == 0 {
		return 1
	}
	return r.den
}

// Add returns r + o.
func (r Ratio) Add(o Ratio) Ratio {
	return normalize(r.Num()*o.Den()+o.Num()*r.Den(), r.Den()*o.Den())
}

// Sub returns r - o.
func (r Ratio) Sub(o Ratio) Ratio {
	return normalize(r.Num()*o.Den()-o.Num()*r.Den(), r.Den()*o.Den())
}

// Mul returns r * o.
func (r Ratio) Mul(o Ratio) Ratio {
	return normalize(r.Num()*o.Num(), r.Den()*o.Den())
}

// Neg returns -r.
func (r Ratio) Neg() Ratio {
	return Ratio{num: -r.Num(), den: r.Den()}
}

// Equal reports whether r and o are the same rational. Ratios are
// normalized, so this is plain field equality.
func (r Ratio) Equal(o Ratio) bool {
	return r.Num() == o.Num() && r.Den() == o.Den()
}

// IsZero reports whether r is the rational 0.
func (r Ratio) IsZero() bool {
	return r.Num() == 0
}

// IsOne reports whether r is the rational 1.
func (r Ratio) IsOne() bool {
	return r.Num() == 1 && r.Den() == 1
}

// IsInteger reports whether r has denominator 1.
func (r Ratio) IsInteger() bool {
	return r.Den() == 1
}

// Float64 returns the floating-point value of r.
func (r Ratio) Float64() float64 {
	return float64(r.Num()) / float64(r.Den())
}

// String renders "3", "-2" or "1/2".
func (r Ratio) String() string {
	if r.IsInteger() {
		return strconv.FormatInt(r.Num(), 10)
	}
	return strconv.FormatInt(r.Num(), 10) + "/" + strconv.FormatInt(r.Den(), 10)
}

// UnmarshalYAML accepts integer scalars and "n/d" strings so definition
// records can write exponents either way.
func (r *Ratio) UnmarshalYAML(value *yaml.Node) error {
	var asInt int64
	if err := value.Decode(&asInt); err == nil {
		*r = R(asInt)
		return nil
	}
	var asString string
	if err := value.Decode(&asString); err != nil {
		return &errors.DefinitionSyntaxError{Field: "exponent", Msg: "exponent must be an integer or a \"n/d\" string"}
	}
	parsed, err := ParseRatio(asString)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
