package query

import (
	"cmp"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

type kind uint8

const (
	kindMissing kind = iota
	kindText
	kindNumber
	kindTime
)

// Value is a sortable column value. Values of different kinds never compare
// equal; a missing value sorts before any present one.
type Value struct {
	kind kind
	text string
	num  float64
	at   time.Time
}

// Missing is the value of an absent field.
var Missing = Value{}

// Text compares lexicographically and case-sensitively.
func Text(s string) Value {
	return Value{kind: kindText, text: s}
}

// FoldedText compares lexicographically after Unicode case folding.
func FoldedText(s string) Value {
	return Value{kind: kindText, text: Fold(s)}
}

// Number compares arithmetically.
func Number(f float64) Value {
	return Value{kind: kindNumber, num: f}
}

// Int compares arithmetically.
func Int(i int) Value {
	return Number(float64(i))
}

// Time compares chronologically. The zero time is treated as missing.
func Time(t time.Time) Value {
	if t.IsZero() {
		return Missing
	}
	return Value{kind: kindTime, at: t}
}

// Compare orders a before b (-1), equal (0) or after (+1).
func Compare(a, b Value) int {
	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}
	switch a.kind {
	case kindText:
		return strings.Compare(a.text, b.text)
	case kindNumber:
		return cmp.Compare(a.num, b.num)
	case kindTime:
		return a.at.Compare(b.at)
	default:
		return 0
	}
}

// Fold returns the case-folded form of s used for case-insensitive matching.
func Fold(s string) string {
	return cases.Fold().String(s)
}
