package compose

import "github.com/favbox/opchain/schema"

// AllInnerOperatorCondition 每个子算子（无论是否启用）都必须能处理 WillGet，
// 并在其输出中包含 MustDeliver 的每个类型。至少需要一个子算子。
//
// 适用于集成学习一类的链：各分支接收同一份数据、各自交付模型，
// 分支之间不传递输出。
//
// 返回值是最后一个子算子的检查结果，而不是所有子算子输出的并集。
type AllInnerOperatorCondition struct {
	WillGet     schema.IOList
	MustDeliver schema.IOList
}

// NewAllInnerOperatorCondition 创建条件。
func NewAllInnerOperatorCondition(willGet, mustDeliver schema.IOList) *AllInnerOperatorCondition {
	return &AllInnerOperatorCondition{
		WillGet:     willGet.Clone(),
		MustDeliver: mustDeliver.Clone(),
	}
}

// CheckIO 实现 InnerOperatorCondition。input 不参与检查。
func (a *AllInnerOperatorCondition) CheckIO(chain Chain, _ schema.IOList) (schema.IOList, error) {
	n := chain.NumberOfOperators()
	if n == 0 {
		return nil, &WrongNumberOfInnerOperatorsError{
			Chain:  chain.Name(),
			Min:    1,
			Max:    chain.MaxInnerOperators(),
			Actual: 0,
		}
	}

	var output schema.IOList
	for i := 0; i < n; i++ {
		op := chain.Operator(i)

		var err error
		output, err = op.CheckIO(a.WillGet.Clone())
		if err != nil {
			return nil, attachChain(chain.Name(), err)
		}

		for _, t := range a.MustDeliver {
			if !output.Contains(t) {
				return nil, &IllegalInputError{
					Chain:    chain.Name(),
					Operator: op.Name(),
					Missing:  t,
				}
			}
		}
	}
	return output, nil
}

// HumanReadableDescription 实现 InnerOperatorCondition。
func (a *AllInnerOperatorCondition) HumanReadableDescription() string {
	return formatDescription(allInnerDescription, map[string]any{
		"will_get":     a.WillGet.String(),
		"must_deliver": a.MustDeliver.String(),
	})
}
