package schema

import "fmt"

// ValueType 属性取值类型。
type ValueType string

const (
	// Nominal 名义型（离散取值）。
	Nominal ValueType = "nominal"
	// Numerical 数值型。
	Numerical ValueType = "numerical"
)

// ParseValueType 解析取值类型名。
func ParseValueType(s string) (ValueType, error) {
	switch ValueType(s) {
	case Nominal, Numerical:
		return ValueType(s), nil
	default:
		return "", fmt.Errorf("unknown value type: %s", s)
	}
}

// Attribute 数据集中的一个属性（列）的类型信息。
type Attribute struct {
	Name      string    `json:"name" yaml:"name"`
	ValueType ValueType `json:"value_type" yaml:"value_type"`
	// NumValues 名义型属性的不同取值个数，数值型忽略。
	NumValues int `json:"num_values,omitempty" yaml:"num_values,omitempty"`
}

// IsNominal 是否名义型。
func (a *Attribute) IsNominal() bool {
	return a.ValueType == Nominal
}

// IsNumerical 是否数值型。
func (a *Attribute) IsNumerical() bool {
	return a.ValueType == Numerical
}

// IsBinominal 名义型且取值不超过两个。
func (a *Attribute) IsBinominal() bool {
	return a.IsNominal() && a.NumValues <= 2
}

// DatasetMeta 学习器所见的数据集类型信息：普通属性、标签和权重。
// 这里只描述类型，不保存数据本身。
type DatasetMeta struct {
	Attributes []Attribute `json:"attributes" yaml:"attributes"`
	Label      *Attribute  `json:"label,omitempty" yaml:"label,omitempty"`
	Weighted   bool        `json:"weighted,omitempty" yaml:"weighted,omitempty"`
}

// HasNominalAttributes 是否存在名义型普通属性。
func (m *DatasetMeta) HasNominalAttributes() bool {
	for i := range m.Attributes {
		if m.Attributes[i].IsNominal() {
			return true
		}
	}
	return false
}

// AllNominalBinary 所有名义型普通属性都是二值的。没有名义型属性时为 true。
func (m *DatasetMeta) AllNominalBinary() bool {
	for i := range m.Attributes {
		if m.Attributes[i].IsNominal() && !m.Attributes[i].IsBinominal() {
			return false
		}
	}
	return true
}

// HasNumericalAttributes 是否存在数值型普通属性。
func (m *DatasetMeta) HasNumericalAttributes() bool {
	for i := range m.Attributes {
		if m.Attributes[i].IsNumerical() {
			return true
		}
	}
	return false
}
