// Package input turns raw text fields into validated engine parameters.
package input

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/tensorplex-labs/rankgen/internal/ranking"
)

const (
	ManualValuePlaces = 4
	ThresholdPlaces   = 2
)

var (
	one = decimal.NewFromInt(1)
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ranking.ErrInvalidParameter, fmt.Sprintf(format, args...))
}

// ParseDecimalExact parses a decimal field. Both '.' and ',' are accepted as
// the decimal separator.
func ParseDecimalExact(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, invalid("Empty value!")
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, invalid("%q is not a decimal number", s)
	}
	return d, nil
}

func ParseDecimal(s string) (float64, error) {
	d, err := ParseDecimalExact(s)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}

// ParseTriangular parses the a, b and m fields of one ranking.
func ParseTriangular(a, b, m string) (ranking.TriangularParams, error) {
	var params ranking.TriangularParams
	var err error

	if params.A, err = ParseDecimal(a); err != nil {
		return params, fmt.Errorf("a: %w", err)
	}
	if params.B, err = ParseDecimal(b); err != nil {
		return params, fmt.Errorf("b: %w", err)
	}
	if params.M, err = ParseDecimal(m); err != nil {
		return params, fmt.Errorf("m: %w", err)
	}
	return params, nil
}

// ParseManualValue parses one manual alternative value in [0, 1], rounded to
// four decimal places.
func ParseManualValue(s string) (float64, error) {
	d, err := ParseDecimalExact(s)
	if err != nil {
		return 0, err
	}
	if d.IsNegative() || d.GreaterThan(one) {
		return 0, invalid("manual value %s must be within [0, 1]", d.String())
	}
	f, _ := d.Round(ManualValuePlaces).Float64()
	return f, nil
}

func splitValues(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ';'
	})
}

// ParseManualValues parses a whitespace or ';' separated list of manual values.
func ParseManualValues(s string) ([]float64, error) {
	fields := splitValues(s)
	if len(fields) == 0 {
		return nil, invalid("Empty value!")
	}

	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := ParseManualValue(f)
		if err != nil {
			return nil, fmt.Errorf("a%d: %w", i, err)
		}
		values[i] = v
	}
	return values, nil
}

// ParseValues parses a whitespace or ';' separated list of decimals.
func ParseValues(s string) ([]float64, error) {
	fields := splitValues(s)
	if len(fields) == 0 {
		return nil, invalid("Empty value!")
	}

	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := ParseDecimal(f)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		values[i] = v
	}
	return values, nil
}

// ParseThresholds parses p7 and q1, rounded to two places, and checks
// p7 + q1 <= 1.
func ParseThresholds(p7, q1 string) (ranking.Thresholds, error) {
	p, err := ParseDecimalExact(p7)
	if err != nil {
		return ranking.Thresholds{}, fmt.Errorf("p7: %w", err)
	}
	q, err := ParseDecimalExact(q1)
	if err != nil {
		return ranking.Thresholds{}, fmt.Errorf("q1: %w", err)
	}

	p = p.Round(ThresholdPlaces)
	q = q.Round(ThresholdPlaces)

	if p.IsNegative() || p.GreaterThan(one) {
		return ranking.Thresholds{}, invalid("p7 must be within [0, 1]")
	}
	if q.IsNegative() || q.GreaterThan(one) {
		return ranking.Thresholds{}, invalid("q1 must be within [0, 1]")
	}
	if p.Add(q).GreaterThan(one) {
		return ranking.Thresholds{}, invalid("p7 + q1 > 1")
	}

	pf, _ := p.Float64()
	qf, _ := q.Float64()
	return ranking.Thresholds{P7: pf, Q1: qf}, nil
}

// ParseSize parses the number of alternatives, which must be within [2, limit].
func ParseSize(s string, limit int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, invalid("Empty value!")
	}
	size, err := strconv.Atoi(s)
	if err != nil {
		return 0, invalid("%q is not an integer", s)
	}
	if size < ranking.MinSize {
		return 0, invalid("Size should be > %d", ranking.MinSize-1)
	}
	if size > limit {
		return 0, invalid("size can't be > %d", limit)
	}
	return size, nil
}
