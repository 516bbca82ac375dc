package compose

import (
	"github.com/favbox/opchain/components"
	"github.com/favbox/opchain/schema"
)

// operatorOptions 创建算子和算子链时的配置。
// 链专属的字段（子算子上下界、子算子、执行器）对普通算子无效。
type operatorOptions struct {
	component components.Component
	disabled  bool
	inputs    schema.IOList
	outputs   schema.IOList
	keepInput bool
	apply     ApplyFunc

	minInner, maxInner int
	children           []Operator
	executor           ChainExecutor
}

// OperatorOption 算子配置的函数式选项。
//
//	op := compose.NewOperator("normalize",
//		compose.WithInput(schema.ExampleSet),
//		compose.WithOutput(schema.ExampleSet),
//		compose.WithComponent(components.ComponentOfPreprocessing))
type OperatorOption func(o *operatorOptions)

func newOperatorOptions(opts ...OperatorOption) *operatorOptions {
	o := &operatorOptions{
		component: components.ComponentOfUnknown,
		maxInner:  Unbounded,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithInput 追加声明的输入类型，按声明顺序消费。
func WithInput(ts ...schema.TypeDescriptor) OperatorOption {
	return func(o *operatorOptions) {
		o.inputs = append(o.inputs, ts...)
	}
}

// WithOutput 追加声明的输出类型。
func WithOutput(ts ...schema.TypeDescriptor) OperatorOption {
	return func(o *operatorOptions) {
		o.outputs = append(o.outputs, ts...)
	}
}

// WithKeepInput 消费过的输入同样向后传递。
func WithKeepInput() OperatorOption {
	return func(o *operatorOptions) {
		o.keepInput = true
	}
}

// WithComponent 设置算子种类。
func WithComponent(c components.Component) OperatorOption {
	return func(o *operatorOptions) {
		o.component = c
	}
}

// WithDisabled 创建时即禁用。
func WithDisabled() OperatorOption {
	return func(o *operatorOptions) {
		o.disabled = true
	}
}

// WithApply 设置执行体。
func WithApply(fn ApplyFunc) OperatorOption {
	return func(o *operatorOptions) {
		o.apply = fn
	}
}

// WithInnerOperatorBounds 设置链的子算子个数上下界，max 可为 Unbounded。
// 仅对算子链有效。
func WithInnerOperatorBounds(minInner, maxInner int) OperatorOption {
	return func(o *operatorOptions) {
		o.minInner, o.maxInner = minInner, maxInner
	}
}

// WithChildren 创建链时加入子算子。仅对算子链有效。
func WithChildren(ops ...Operator) OperatorOption {
	return func(o *operatorOptions) {
		o.children = append(o.children, ops...)
	}
}

// WithChainExecutor 替换链的执行方式，默认顺序执行。仅对算子链有效。
func WithChainExecutor(fn ChainExecutor) OperatorOption {
	return func(o *operatorOptions) {
		o.executor = fn
	}
}
