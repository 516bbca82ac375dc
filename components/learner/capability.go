package learner

import (
	"fmt"

	"github.com/favbox/opchain/internal/generic"
	"github.com/favbox/opchain/internal/gslice"
)

// Capability 学习器能力。取值集合是封闭的，不支持运行期注册。
type Capability uint8

const (
	PolynominalAttributes Capability = iota + 1
	BinominalAttributes
	NumericalAttributes
	PolynominalClass
	BinominalClass
	NumericalClass
	Updatable
	WeightedExamples
)

// capabilityTable 每个能力的 token 和描述。
var capabilityTable = map[Capability]generic.Pair[string, string]{
	PolynominalAttributes: {First: "POLYNOMINAL_ATTRIBUTES", Second: "polynominal attributes"},
	BinominalAttributes:   {First: "BINOMINAL_ATTRIBUTES", Second: "binominal attributes"},
	NumericalAttributes:   {First: "NUMERICAL_ATTRIBUTES", Second: "numerical attributes"},
	PolynominalClass:      {First: "POLYNOMINAL_CLASS", Second: "polynominal label"},
	BinominalClass:        {First: "BINOMINAL_CLASS", Second: "binominal label"},
	NumericalClass:        {First: "NUMERICAL_CLASS", Second: "numerical label"},
	Updatable:             {First: "UPDATABLE", Second: "updatable"},
	WeightedExamples:      {First: "WEIGHTED_EXAMPLES", Second: "weighted examples"},
}

// allCapabilities 固定顺序的完整列表。
var allCapabilities = [...]Capability{
	PolynominalAttributes,
	BinominalAttributes,
	NumericalAttributes,
	PolynominalClass,
	BinominalClass,
	NumericalClass,
	Updatable,
	WeightedExamples,
}

var capabilityByToken = gslice.ToMap(allCapabilities[:], func(c Capability) (string, Capability) {
	return capabilityTable[c].First, c
})

// Capabilities 返回全部能力，每次返回新的切片。
func Capabilities() []Capability {
	return append([]Capability{}, allCapabilities[:]...)
}

// ParseCapability 由 token 解析能力，例如 "BINOMINAL_CLASS"。
func ParseCapability(s string) (Capability, error) {
	if c, ok := capabilityByToken[s]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("unknown learner capability: %s", s)
}

// String 返回 token。
func (c Capability) String() string {
	if p, ok := capabilityTable[c]; ok {
		return p.First
	}
	return fmt.Sprintf("Capability(%d)", uint8(c))
}

// Description 返回可读描述。
func (c Capability) Description() string {
	if p, ok := capabilityTable[c]; ok {
		return p.Second
	}
	return c.String()
}

// MarshalText 以 token 形式序列化。
func (c Capability) MarshalText() ([]byte, error) {
	if _, ok := capabilityTable[c]; !ok {
		return nil, fmt.Errorf("unknown learner capability: %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText 由 token 反序列化。
func (c *Capability) UnmarshalText(b []byte) error {
	parsed, err := ParseCapability(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
