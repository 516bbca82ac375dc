/*
 * operator.go - 单个算子的 IO 契约与检查
 *
 * 核心组件：
 *   - Operator: 算子的检查接口，链和条件只依赖它
 *   - BaseOperator: 声明式算子实现，按声明的输入输出完成检查与执行
 *   - Executor / ApplyFunc: 执行阶段的数据交接
 *
 * 检查规则（CheckIO）：
 *   1. 禁用的算子原样透传输入
 *   2. 按声明顺序为每个输入类型寻找第一个兼容的可用类型并消费
 *   3. 找不到时返回 IllegalInputError，指明算子和缺失类型
 *   4. 结果为剩余输入（KeepInput 时为全部输入）后接声明的输出
 *
 * CheckIO 是纯函数：不读写执行期状态，可重复调用。
 */

package compose

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/favbox/opchain/components"
	"github.com/favbox/opchain/internal/safe"
	"github.com/favbox/opchain/schema"
)

// Operator 算子的检查接口。
type Operator interface {
	// Name 算子名称，在错误信息和路径中使用。
	Name() string
	// IsEnabled 禁用的算子在链中被跳过。
	IsEnabled() bool
	// InputClasses 声明消费的类型。
	InputClasses() schema.IOList
	// OutputClasses 声明产出的类型。
	OutputClasses() schema.IOList
	// CheckIO 给定当前可用类型，返回本算子保证产出的类型。
	CheckIO(input schema.IOList) (schema.IOList, error)
}

// Executor 可执行的算子。
type Executor interface {
	Execute(ctx context.Context, in *schema.IOContainer) (*schema.IOContainer, error)
}

// ApplyFunc 算子的执行体。inputs 与声明的输入一一对应，
// 返回值需与声明的输出一一对应。
type ApplyFunc func(ctx context.Context, inputs []schema.IOObject) ([]schema.IOObject, error)

// ownedOperator 记录所属链，保证一个算子同一时刻只属于一条链。
type ownedOperator interface {
	parentChain() Chain
	setParentChain(c Chain)
	isNil() bool
}

// BaseOperator 声明式算子。
type BaseOperator struct {
	name      string
	component components.Component
	enabled   bool
	inputs    schema.IOList
	outputs   schema.IOList
	keepInput bool
	apply     ApplyFunc

	parent Chain
}

// NewOperator 创建算子。
func NewOperator(name string, opts ...OperatorOption) *BaseOperator {
	return newBaseOperator(name, newOperatorOptions(opts...))
}

func newBaseOperator(name string, o *operatorOptions) *BaseOperator {
	return &BaseOperator{
		name:      name,
		component: o.component,
		enabled:   !o.disabled,
		inputs:    o.inputs.Clone(),
		outputs:   o.outputs.Clone(),
		keepInput: o.keepInput,
		apply:     o.apply,
	}
}

// Name 实现 Operator。
func (o *BaseOperator) Name() string {
	return o.name
}

// Component 返回算子种类。
func (o *BaseOperator) Component() components.Component {
	return o.component
}

// IsEnabled 实现 Operator。
func (o *BaseOperator) IsEnabled() bool {
	return o.enabled
}

// SetEnabled 启用或禁用算子，只应在检查和执行之外调用。
func (o *BaseOperator) SetEnabled(enabled bool) {
	o.enabled = enabled
}

// InputClasses 实现 Operator，返回副本。
func (o *BaseOperator) InputClasses() schema.IOList {
	return o.inputs.Clone()
}

// OutputClasses 实现 Operator，返回副本。
func (o *BaseOperator) OutputClasses() schema.IOList {
	return o.outputs.Clone()
}

// Contract 返回算子的 IO 契约。
func (o *BaseOperator) Contract() schema.IOContract {
	return schema.IOContract{
		Consumes: o.InputClasses(),
		Produces: o.OutputClasses(),
	}
}

// Parent 返回所属链，不属于任何链时为 nil。
func (o *BaseOperator) Parent() Chain {
	return o.parent
}

func (o *BaseOperator) parentChain() Chain {
	return o.parent
}

func (o *BaseOperator) setParentChain(c Chain) {
	o.parent = c
}

func (o *BaseOperator) isNil() bool {
	return o == nil
}

// CheckIO 实现 Operator。
func (o *BaseOperator) CheckIO(input schema.IOList) (schema.IOList, error) {
	if !o.enabled {
		return input.Clone(), nil
	}

	remaining, err := o.consume(input)
	if err != nil {
		return nil, err
	}
	return remaining.Append(o.outputs...), nil
}

// consume 按声明顺序消费输入，返回向后传递的部分。
func (o *BaseOperator) consume(input schema.IOList) (schema.IOList, error) {
	remaining := input.Clone()
	for _, t := range o.inputs {
		idx := remaining.IndexOf(t)
		if idx < 0 {
			return nil, &IllegalInputError{Operator: o.name, Missing: t}
		}
		remaining = remaining.Without(idx)
	}

	if o.keepInput {
		return input.Clone(), nil
	}
	return remaining, nil
}

// Execute 实现 Executor。
// 取出声明的输入对象交给执行体，并逐个校验产出对象的类型。
func (o *BaseOperator) Execute(ctx context.Context, in *schema.IOContainer) (*schema.IOContainer, error) {
	if !o.enabled {
		return in, nil
	}

	out := schema.NewIOContainer(in.Objects()...)
	inputs := make([]schema.IOObject, 0, len(o.inputs))
	for _, t := range o.inputs {
		obj, err := out.Remove(t)
		if err != nil {
			return nil, &IllegalInputError{Operator: o.name, Missing: t}
		}
		inputs = append(inputs, obj)
	}
	if o.keepInput {
		out = schema.NewIOContainer(in.Objects()...)
	}

	results, err := o.runApply(ctx, inputs)
	if err != nil {
		return nil, wrapOperatorError(o.name, err)
	}

	if len(results) != len(o.outputs) {
		return nil, wrapOperatorError(o.name,
			fmt.Errorf("%w: got %d object(s), declared %s", ErrUnexpectedOutput, len(results), o.outputs))
	}
	for i, r := range results {
		if r == nil {
			return nil, wrapOperatorError(o.name, newUnexpectedOutputErr(i, o.outputs[i], ""))
		}
		if !r.Descriptor().IsA(o.outputs[i]) {
			return nil, wrapOperatorError(o.name, newUnexpectedOutputErr(i, o.outputs[i], r.Descriptor()))
		}
	}

	out.Append(results...)
	return out, nil
}

func (o *BaseOperator) runApply(ctx context.Context, inputs []schema.IOObject) (results []schema.IOObject, err error) {
	if o.apply == nil {
		if len(o.outputs) > 0 {
			return nil, fmt.Errorf("operator '%s' declares outputs %s but has no apply function", o.name, o.outputs)
		}
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = safe.NewPanicErr(r, debug.Stack())
		}
	}()

	return o.apply(ctx, inputs)
}
