/*
 * condition.go - 内部算子条件
 *
 * 一条链在检查时把子算子交给自己的 InnerOperatorCondition：
 *   - SimpleChainCondition: 子算子首尾相接，每个启用的子算子接收前一个的输出
 *   - AllInnerOperatorCondition: 每个子算子都接收同一组输入并产出同一组必需输出
 *   - LastInnerOperatorCondition: 首尾相接，最后的输出必须包含指定类型
 *   - SpecificInnerOperatorCondition: 只约束指定位置的子算子
 *   - CombinedInnerOperatorCondition: 依次运行多个条件，最后一个的结果为准
 *
 * 条件只保存配置，不保存运行期状态；同一个条件对象可以被重复检查。
 */

package compose

import "github.com/favbox/opchain/schema"

// InnerOperatorCondition 对链的子算子的可检查约束。
type InnerOperatorCondition interface {
	// CheckIO 给定流入链的类型，检查子算子并返回条件产出的类型。
	CheckIO(chain Chain, input schema.IOList) (schema.IOList, error)
	// HumanReadableDescription 供界面展示的描述片段。
	HumanReadableDescription() string
}

// SimpleChainCondition 每个启用的子算子必须接受前一个子算子的输出，
// 第一个子算子接收链自身的输入。禁用的子算子被跳过；空链原样返回输入。
// 该条件不检查子算子个数。
type SimpleChainCondition struct{}

// CheckIO 实现 InnerOperatorCondition。
func (s *SimpleChainCondition) CheckIO(chain Chain, input schema.IOList) (schema.IOList, error) {
	output := input.Clone()
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
	}
	return output, nil
}

// HumanReadableDescription 实现 InnerOperatorCondition。
func (s *SimpleChainCondition) HumanReadableDescription() string {
	return simpleChainDescription
}
