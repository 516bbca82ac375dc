package learner

import (
	"context"
	"fmt"

	"github.com/favbox/opchain/components"
	"github.com/favbox/opchain/compose"
	"github.com/favbox/opchain/schema"
)

// LearnFunc 在数据集上训练并返回模型对象。
type LearnFunc func(ctx context.Context, data *schema.ExampleSetObject) (schema.IOObject, error)

type operatorConfig struct {
	check     *CapabilityCheck
	modelType schema.TypeDescriptor
	extra     []compose.OperatorOption
}

// OperatorOption 学习算子的配置。
type OperatorOption func(c *operatorConfig)

// WithCapabilityCheck 设置能力检查器，默认严格模式。
func WithCapabilityCheck(check *CapabilityCheck) OperatorOption {
	return func(c *operatorConfig) {
		if check != nil {
			c.check = check
		}
	}
}

// WithModelType 设置产出的模型类型，默认 schema.Model。
func WithModelType(t schema.TypeDescriptor) OperatorOption {
	return func(c *operatorConfig) {
		c.modelType = t
	}
}

// WithOperatorOptions 追加底层算子选项，例如 compose.WithKeepInput()。
func WithOperatorOptions(opts ...compose.OperatorOption) OperatorOption {
	return func(c *operatorConfig) {
		c.extra = append(c.extra, opts...)
	}
}

// NewOperator 创建学习算子：消费 ExampleSet，产出模型。
// 执行时先对输入数据集做能力检查，通过（或只警告）后才调用 fn。
func NewOperator(name string, l Learner, fn LearnFunc, opts ...OperatorOption) *compose.BaseOperator {
	cfg := &operatorConfig{modelType: schema.Model}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.check == nil {
		cfg.check = NewCapabilityCheck()
	}

	apply := func(ctx context.Context, inputs []schema.IOObject) ([]schema.IOObject, error) {
		data, ok := inputs[0].(*schema.ExampleSetObject)
		if !ok {
			return nil, fmt.Errorf("learner '%s' expects *schema.ExampleSetObject, got %T", name, inputs[0])
		}

		if err := cfg.check.Check(name, l, data.Meta); err != nil {
			return nil, err
		}

		m, err := fn(ctx, data)
		if err != nil {
			return nil, err
		}
		return []schema.IOObject{m}, nil
	}

	base := []compose.OperatorOption{
		compose.WithComponent(components.ComponentOfLearner),
		compose.WithInput(schema.ExampleSet),
		compose.WithOutput(cfg.modelType),
		compose.WithApply(apply),
	}
	return compose.NewOperator(name, append(base, cfg.extra...)...)
}
