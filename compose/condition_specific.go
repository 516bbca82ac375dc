package compose

import "github.com/favbox/opchain/schema"

// SpecificInnerOperatorCondition 约束第 Index 个子算子：
// 必须能处理 WillGet，并在输出中包含 MustDeliver。Name 只用于描述。
type SpecificInnerOperatorCondition struct {
	Name        string
	Index       int
	WillGet     schema.IOList
	MustDeliver schema.IOList
}

// NewSpecificInnerOperatorCondition 创建条件。
func NewSpecificInnerOperatorCondition(name string, index int, willGet, mustDeliver schema.IOList) *SpecificInnerOperatorCondition {
	return &SpecificInnerOperatorCondition{
		Name:        name,
		Index:       index,
		WillGet:     willGet.Clone(),
		MustDeliver: mustDeliver.Clone(),
	}
}

// CheckIO 实现 InnerOperatorCondition。子算子不足 Index+1 个时返回个数错误。
func (s *SpecificInnerOperatorCondition) CheckIO(chain Chain, _ schema.IOList) (schema.IOList, error) {
	if s.Index < 0 || s.Index >= chain.NumberOfOperators() {
		return nil, &WrongNumberOfInnerOperatorsError{
			Chain:  chain.Name(),
			Min:    s.Index + 1,
			Max:    chain.MaxInnerOperators(),
			Actual: chain.NumberOfOperators(),
		}
	}

	op := chain.Operator(s.Index)
	output, err := op.CheckIO(s.WillGet.Clone())
	if err != nil {
		return nil, attachChain(chain.Name(), err)
	}

	for _, t := range s.MustDeliver {
		if !output.Contains(t) {
			return nil, &IllegalInputError{
				Chain:    chain.Name(),
				Operator: op.Name(),
				Missing:  t,
			}
		}
	}
	return output, nil
}

// HumanReadableDescription 实现 InnerOperatorCondition。
func (s *SpecificInnerOperatorCondition) HumanReadableDescription() string {
	return formatDescription(specificInnerDescription, map[string]any{
		"index":        s.Index + 1,
		"name":         s.Name,
		"will_get":     s.WillGet.String(),
		"must_deliver": s.MustDeliver.String(),
	})
}
