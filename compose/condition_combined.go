package compose

import "github.com/favbox/opchain/schema"

// CombinedInnerOperatorCondition 依次运行多个子条件。
//
// 每个子条件都接收链的原始输入，而不是前一个子条件的输出；
// 最后一个子条件的结果就是组合结果。靠前的子条件只用于发现错误，
// 任何一个子条件失败都会直接返回。
type CombinedInnerOperatorCondition struct {
	conditions []InnerOperatorCondition
}

// NewCombinedInnerOperatorCondition 按顺序组合子条件，nil 会被忽略。
func NewCombinedInnerOperatorCondition(conds ...InnerOperatorCondition) *CombinedInnerOperatorCondition {
	c := &CombinedInnerOperatorCondition{}
	for _, cond := range conds {
		c.AddCondition(cond)
	}
	return c
}

// AddCondition 追加子条件。
func (c *CombinedInnerOperatorCondition) AddCondition(cond InnerOperatorCondition) {
	if cond == nil {
		return
	}
	c.conditions = append(c.conditions, cond)
}

// Conditions 返回子条件列表的副本。
func (c *CombinedInnerOperatorCondition) Conditions() []InnerOperatorCondition {
	return append([]InnerOperatorCondition{}, c.conditions...)
}

// CheckIO 实现 InnerOperatorCondition。没有子条件时原样返回输入。
func (c *CombinedInnerOperatorCondition) CheckIO(chain Chain, input schema.IOList) (schema.IOList, error) {
	output := input.Clone()
	for _, cond := range c.conditions {
		var err error
		output, err = cond.CheckIO(chain, input.Clone())
		if err != nil {
			return nil, err
		}
	}
	return output, nil
}

// HumanReadableDescription 实现 InnerOperatorCondition，
// 把各子条件的描述渲染为 HTML 有序列表。
func (c *CombinedInnerOperatorCondition) HumanReadableDescription() string {
	descs := make([]string, 0, len(c.conditions))
	for _, cond := range c.conditions {
		descs = append(descs, cond.HumanReadableDescription())
	}
	return renderDescriptionList(descs)
}
