package compose

import "github.com/favbox/opchain/schema"

// LastInnerOperatorCondition 子算子首尾相接处理 WillGet，
// 最后一个启用的子算子的输出必须包含 MustDeliver。
type LastInnerOperatorCondition struct {
	WillGet     schema.IOList
	MustDeliver schema.IOList
}

// NewLastInnerOperatorCondition 创建条件。
func NewLastInnerOperatorCondition(willGet, mustDeliver schema.IOList) *LastInnerOperatorCondition {
	return &LastInnerOperatorCondition{
		WillGet:     willGet.Clone(),
		MustDeliver: mustDeliver.Clone(),
	}
}

// CheckIO 实现 InnerOperatorCondition。input 不参与检查。
func (l *LastInnerOperatorCondition) CheckIO(chain Chain, _ schema.IOList) (schema.IOList, error) {
	var last Operator
	output := l.WillGet.Clone()
	for i := 0; i < chain.NumberOfOperators(); i++ {
		op := chain.Operator(i)
		if !op.IsEnabled() {
			continue
		}

		var err error
		output, err = op.CheckIO(output)
		if err != nil {
			return nil, attachChain(chain.Name(), err)
		}
		last = op
	}

	if last == nil {
		return nil, &WrongNumberOfInnerOperatorsError{
			Chain:  chain.Name(),
			Min:    1,
			Max:    chain.MaxInnerOperators(),
			Actual: 0,
		}
	}

	for _, t := range l.MustDeliver {
		if !output.Contains(t) {
			return nil, &IllegalInputError{
				Chain:    chain.Name(),
				Operator: last.Name(),
				Missing:  t,
			}
		}
	}
	return output, nil
}

// HumanReadableDescription 实现 InnerOperatorCondition。
func (l *LastInnerOperatorCondition) HumanReadableDescription() string {
	return formatDescription(lastInnerDescription, map[string]any{
		"will_get":     l.WillGet.String(),
		"must_deliver": l.MustDeliver.String(),
	})
}
