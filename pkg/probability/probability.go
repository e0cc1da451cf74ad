// Package probability provides the bounded probability value type used by the
// assembly kernel. A Probability is either a number in [0,1] or the explicit
// undefined state; it never holds a defined value outside that range.
package probability

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/chrissnell/assemblykernel/pkg/assemblyerr"
)

// negligibleReliabilityDifference is the largest difference in reliability
// index for which two probabilities are considered the same
const negligibleReliabilityDifference = 1e-6

// Probability is an immutable probability value. The zero value is a defined
// probability of 0.
type Probability struct {
	value     float64
	undefined bool
}

// New creates a probability, failing for defined values outside [0,1].
// NaN produces the undefined probability.
func New(v float64) (Probability, error) {
	if math.IsNaN(v) {
		return Undefined(), nil
	}
	if v < 0 {
		return Probability{}, assemblyerr.New("probability", assemblyerr.ProbabilityMayNotBeSmallerThanZero)
	}
	if v > 1 {
		return Probability{}, assemblyerr.New("probability", assemblyerr.ProbabilityMayNotBeLargerThanOne)
	}
	return Probability{value: v}, nil
}

// MustNew is like New but panics on invalid input
func MustNew(v float64) Probability {
	p, err := New(v)
	if err != nil {
		panic(err)
	}
	return p
}

// FromReturnPeriod creates the probability 1/n
func FromReturnPeriod(n float64) (Probability, error) {
	if n == 0 {
		return Probability{}, assemblyerr.New("returnPeriod", assemblyerr.ProbabilityMayNotBeLargerThanOne)
	}
	return New(1 / n)
}

// Undefined returns the undefined probability
func Undefined() Probability {
	return Probability{value: math.NaN(), undefined: true}
}

// Zero and One are the bounds of the probability range
var (
	Zero = Probability{value: 0}
	One  = Probability{value: 1}
)

func clamped(v float64) Probability {
	return Probability{value: math.Min(1, math.Max(0, v))}
}

// IsDefined is false only for the undefined probability
func (p Probability) IsDefined() bool {
	return !p.undefined
}

// Value returns the numeric value; NaN when undefined
func (p Probability) Value() float64 {
	if p.undefined {
		return math.NaN()
	}
	return p.value
}

// Inverse returns 1 - p
func (p Probability) Inverse() Probability {
	if p.undefined {
		return p
	}
	return Probability{value: 1 - p.value}
}

// Add returns p + o clamped to [0,1]
func (p Probability) Add(o Probability) Probability {
	if p.undefined || o.undefined {
		return Undefined()
	}
	return clamped(p.value + o.value)
}

// Sub returns p - o clamped to [0,1]
func (p Probability) Sub(o Probability) Probability {
	if p.undefined || o.undefined {
		return Undefined()
	}
	return clamped(p.value - o.value)
}

// Mul returns the product of two probabilities
func (p Probability) Mul(o Probability) Probability {
	if p.undefined || o.undefined {
		return Undefined()
	}
	return Probability{value: p.value * o.value}
}

// Div returns the plain quotient p / o. The result is a ratio, not a
// probability, and is not range checked.
func (p Probability) Div(o Probability) float64 {
	if p.undefined || o.undefined {
		return math.NaN()
	}
	return p.value / o.value
}

// MulFactor scales p by a factor, clamping the result to [0,1]
func (p Probability) MulFactor(f float64) Probability {
	if p.undefined || math.IsNaN(f) {
		return Undefined()
	}
	return clamped(p.value * f)
}

// DivFactor divides p by a factor, clamping the result to [0,1]
func (p Probability) DivFactor(f float64) Probability {
	if p.undefined || math.IsNaN(f) {
		return Undefined()
	}
	return clamped(p.value / f)
}

// Equal reports value equality. Two undefined probabilities are equal.
func (p Probability) Equal(o Probability) bool {
	if p.undefined || o.undefined {
		return p.undefined == o.undefined
	}
	return p.value == o.value
}

// Less reports p < o. Comparisons involving an undefined probability are false.
func (p Probability) Less(o Probability) bool {
	return !p.undefined && !o.undefined && p.value < o.value
}

// LessOrEqual reports p <= o
func (p Probability) LessOrEqual(o Probability) bool {
	return !p.undefined && !o.undefined && p.value <= o.value
}

// Greater reports p > o
func (p Probability) Greater(o Probability) bool {
	return o.Less(p)
}

// Compare returns -1, 0 or 1. Undefined sorts after every defined value.
func (p Probability) Compare(o Probability) int {
	switch {
	case p.undefined && o.undefined:
		return 0
	case p.undefined:
		return 1
	case o.undefined:
		return -1
	case p.value < o.value:
		return -1
	case p.value > o.value:
		return 1
	}
	return 0
}

// IsNegligibleDifference compares two probabilities on the reliability index
// scale, where differences between very small probabilities stay visible.
func (p Probability) IsNegligibleDifference(o Probability) bool {
	if p.undefined || o.undefined {
		return p.undefined == o.undefined
	}
	if p.value == o.value {
		return true
	}
	b1, b2 := ReliabilityIndex(p), ReliabilityIndex(o)
	if math.IsInf(b1, 0) || math.IsInf(b2, 0) {
		return false
	}
	return math.Abs(b1-b2) < negligibleReliabilityDifference
}

// ReliabilityIndex returns beta = -Phi^-1(p) for the standard normal
// distribution. p = 0 yields +Inf and p = 1 yields -Inf.
func ReliabilityIndex(p Probability) float64 {
	if p.undefined {
		return math.NaN()
	}
	return -distuv.UnitNormal.Quantile(p.value)
}

// FromReliabilityIndex converts a reliability index back to a probability
func FromReliabilityIndex(beta float64) Probability {
	if math.IsNaN(beta) {
		return Undefined()
	}
	return clamped(distuv.UnitNormal.CDF(-beta))
}

// String renders the probability in return period notation, e.g. "1/3000"
func (p Probability) String() string {
	switch {
	case p.undefined:
		return "undefined"
	case p.value == 0:
		return "0"
	case p.value == 1:
		return "1"
	}
	return fmt.Sprintf("1/%.0f", 1/p.value)
}

// MarshalJSON encodes an undefined probability as null
func (p Probability) MarshalJSON() ([]byte, error) {
	if p.undefined {
		return []byte("null"), nil
	}
	return json.Marshal(p.value)
}

func (p *Probability) UnmarshalJSON(data []byte) error {
	var v *float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return p.set(v)
}

// EncodeMsgpack writes an undefined probability as NaN. A msgpack nil would
// decode into a defined zero for non-pointer fields.
func (p Probability) EncodeMsgpack(enc *msgpack.Encoder) error {
	if p.undefined {
		return enc.EncodeFloat64(math.NaN())
	}
	return enc.EncodeFloat64(p.value)
}

// DecodeMsgpack accepts a float, NaN or nil
func (p *Probability) DecodeMsgpack(dec *msgpack.Decoder) error {
	code, err := dec.PeekCode()
	if err != nil {
		return err
	}
	if code == msgpcode.Nil {
		*p = Undefined()
		return dec.DecodeNil()
	}
	v, err := dec.DecodeFloat64()
	if err != nil {
		return err
	}
	return p.set(&v)
}

func (p *Probability) set(v *float64) error {
	if v == nil {
		*p = Undefined()
		return nil
	}
	np, err := New(*v)
	if err != nil {
		return err
	}
	*p = np
	return nil
}
