package definition

import (
	"context"
	"fmt"
	"strings"

	"github.com/favbox/opchain/components"
	"github.com/favbox/opchain/components/learner"
	"github.com/favbox/opchain/compose"
	"github.com/favbox/opchain/internal/gmap"
	"github.com/favbox/opchain/internal/gslice"
	"github.com/favbox/opchain/schema"
)

// 条件类型。
const (
	ConditionSimple   = "simple"
	ConditionAll      = "all"
	ConditionCombined = "combined"
	ConditionLast     = "last"
	ConditionSpecific = "specific"
)

var conditionTypes = map[string]struct{}{
	ConditionSimple:   {},
	ConditionAll:      {},
	ConditionCombined: {},
	ConditionLast:     {},
	ConditionSpecific: {},
}

var operatorKinds = map[string]struct{}{
	KindOperator: {},
	KindChain:    {},
	KindLearner:  {},
}

type buildOptions struct {
	check      *learner.CapabilityCheck
	learnFn    learner.LearnFunc
	applyFuncs map[string]compose.ApplyFunc
	processOpt []compose.ProcessOption
}

// BuildOption 构建流程的配置。
type BuildOption func(o *buildOptions)

// WithCapabilityCheck 学习算子使用的能力检查器。
func WithCapabilityCheck(check *learner.CapabilityCheck) BuildOption {
	return func(o *buildOptions) {
		o.check = check
	}
}

// WithLearnFunc 学习算子的训练函数，默认产出一个只带类型的模型对象。
func WithLearnFunc(fn learner.LearnFunc) BuildOption {
	return func(o *buildOptions) {
		o.learnFn = fn
	}
}

// WithApplyFuncs 按算子名绑定执行体。
func WithApplyFuncs(fns map[string]compose.ApplyFunc) BuildOption {
	return func(o *buildOptions) {
		o.applyFuncs = gmap.Clone(fns)
	}
}

// WithProcessOptions 透传给 compose.NewProcess。
func WithProcessOptions(opts ...compose.ProcessOption) BuildOption {
	return func(o *buildOptions) {
		o.processOpt = append(o.processOpt, opts...)
	}
}

// Build 由定义构建流程。根定义总是构建为链。
func (d *Definition) Build(opts ...BuildOption) (*compose.Process, error) {
	o := &buildOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if d.Root == nil {
		return nil, fmt.Errorf("process definition '%s' has no root", d.Name)
	}

	root, err := o.buildChain(d.Root)
	if err != nil {
		return nil, err
	}

	popts := []compose.ProcessOption{}
	if d.Name != "" {
		popts = append(popts, compose.WithProcessName(d.Name))
	}
	return compose.NewProcess(root, append(popts, o.processOpt...)...), nil
}

func (o *buildOptions) buildOperator(def *OperatorDef) (compose.Operator, error) {
	if def == nil {
		return nil, fmt.Errorf("operator definition is nil")
	}
	if def.Name == "" {
		return nil, fmt.Errorf("operator definition without name")
	}

	kind := def.Kind()
	if _, ok := operatorKinds[kind]; !ok {
		return nil, fmt.Errorf("operator '%s': unknown type '%s', expected one of %s",
			def.Name, kind, strings.Join(gmap.Keys(operatorKinds), ", "))
	}

	switch kind {
	case KindChain:
		return o.buildChain(def)
	case KindLearner:
		return o.buildLearner(def)
	default:
		base, err := o.baseOptions(def)
		if err != nil {
			return nil, err
		}
		return compose.NewOperator(def.Name, base...), nil
	}
}

// baseOptions 普通算子和链共用的选项。
func (o *buildOptions) baseOptions(def *OperatorDef) ([]compose.OperatorOption, error) {
	consumes, err := schema.ParseIOList(def.Consumes)
	if err != nil {
		return nil, fmt.Errorf("operator '%s': %w", def.Name, err)
	}
	produces, err := schema.ParseIOList(def.Produces)
	if err != nil {
		return nil, fmt.Errorf("operator '%s': %w", def.Name, err)
	}
	component, ok := components.ParseComponent(def.Component)
	if !ok {
		return nil, fmt.Errorf("operator '%s': unknown component '%s'", def.Name, def.Component)
	}

	opts := []compose.OperatorOption{
		compose.WithInput(consumes...),
		compose.WithOutput(produces...),
	}
	if component != components.ComponentOfUnknown {
		opts = append(opts, compose.WithComponent(component))
	}
	if !def.IsEnabled() {
		opts = append(opts, compose.WithDisabled())
	}
	if def.KeepInput {
		opts = append(opts, compose.WithKeepInput())
	}
	if fn, ok := o.applyFuncs[def.Name]; ok {
		opts = append(opts, compose.WithApply(fn))
	}
	return opts, nil
}

func (o *buildOptions) buildChain(def *OperatorDef) (*compose.OperatorChain, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("chain definition without name")
	}

	opts, err := o.baseOptions(def)
	if err != nil {
		return nil, err
	}

	cond, err := buildCondition(def.Condition)
	if err != nil {
		return nil, fmt.Errorf("chain '%s': %w", def.Name, err)
	}

	maxInner := compose.Unbounded
	if def.Max != nil {
		maxInner = *def.Max
	}
	opts = append(opts, compose.WithInnerOperatorBounds(def.Min, maxInner))

	for _, c := range def.Children {
		child, err := o.buildOperator(c)
		if err != nil {
			return nil, err
		}
		opts = append(opts, compose.WithChildren(child))
	}

	return compose.NewOperatorChain(def.Name, cond, opts...), nil
}

func (o *buildOptions) buildLearner(def *OperatorDef) (compose.Operator, error) {
	caps, err := def.CapabilitySet()
	if err != nil {
		return nil, fmt.Errorf("learner '%s': %w", def.Name, err)
	}
	if len(def.Consumes) > 0 {
		return nil, fmt.Errorf("learner '%s': learners always consume %s", def.Name, schema.ExampleSet)
	}

	produces, err := schema.ParseIOList(def.Produces)
	if err != nil {
		return nil, fmt.Errorf("learner '%s': %w", def.Name, err)
	}
	if len(produces) > 1 {
		return nil, fmt.Errorf("learner '%s': produces at most one model, got %s", def.Name, produces)
	}
	modelType := schema.Model
	if len(produces) == 1 {
		if !produces[0].IsA(schema.Model) {
			return nil, fmt.Errorf("learner '%s': %s is not a model type", def.Name, produces[0])
		}
		modelType = produces[0]
	}

	extra := []compose.OperatorOption{}
	if !def.IsEnabled() {
		extra = append(extra, compose.WithDisabled())
	}
	if def.KeepInput {
		extra = append(extra, compose.WithKeepInput())
	}

	fn := o.learnFn
	if fn == nil {
		fn = untrainedModel(modelType)
	}

	return learner.NewOperator(def.Name, caps, fn,
		learner.WithCapabilityCheck(o.check),
		learner.WithModelType(modelType),
		learner.WithOperatorOptions(extra...)), nil
}

// untrainedModel 只产出类型正确的模型对象，用于演练流程。
func untrainedModel(kind schema.TypeDescriptor) learner.LearnFunc {
	return func(_ context.Context, data *schema.ExampleSetObject) (schema.IOObject, error) {
		return &schema.ModelObject{Kind: kind, Name: data.Name}, nil
	}
}

func buildCondition(def *ConditionDef) (compose.InnerOperatorCondition, error) {
	if def == nil {
		return &compose.SimpleChainCondition{}, nil
	}
	if _, ok := conditionTypes[def.Type]; !ok {
		return nil, fmt.Errorf("unknown condition type '%s', expected one of %s",
			def.Type, strings.Join(gmap.Keys(conditionTypes), ", "))
	}

	willGet, err := schema.ParseIOList(def.WillGet)
	if err != nil {
		return nil, err
	}
	mustDeliver, err := schema.ParseIOList(def.MustDeliver)
	if err != nil {
		return nil, err
	}

	switch def.Type {
	case ConditionAll:
		return compose.NewAllInnerOperatorCondition(willGet, mustDeliver), nil
	case ConditionLast:
		return compose.NewLastInnerOperatorCondition(willGet, mustDeliver), nil
	case ConditionSpecific:
		return compose.NewSpecificInnerOperatorCondition(def.Name, def.Index, willGet, mustDeliver), nil
	case ConditionCombined:
		combined := compose.NewCombinedInnerOperatorCondition()
		for _, sub := range def.Conditions {
			c, err := buildCondition(sub)
			if err != nil {
				return nil, err
			}
			combined.AddCondition(c)
		}
		return combined, nil
	default:
		return &compose.SimpleChainCondition{}, nil
	}
}

func filterLearners(defs []*OperatorDef) []*OperatorDef {
	return gslice.Filter(defs, func(op *OperatorDef) bool {
		return op.Kind() == KindLearner
	})
}
