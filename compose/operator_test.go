package compose

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/favbox/opchain/components"
	"github.com/favbox/opchain/internal/safe"
	"github.com/favbox/opchain/schema"
)

func TestBaseOperatorCheckIO(t *testing.T) {
	t.Run("consumes declared inputs and appends outputs", func(t *testing.T) {
		op := newOp("learner", []schema.TypeDescriptor{es}, []schema.TypeDescriptor{model})
		out, err := op.CheckIO(list(schema.ParameterSet, es))
		assert.NoError(t, err)
		assert.Equal(t, list(schema.ParameterSet, model), out)
	})

	t.Run("first compatible match", func(t *testing.T) {
		op := newOp("apply", []schema.TypeDescriptor{model}, nil)
		out, err := op.CheckIO(list(schema.ClusterModel, schema.PredictionModel))
		assert.NoError(t, err)
		assert.Equal(t, list(schema.PredictionModel), out)
	})

	t.Run("supertype does not satisfy subtype", func(t *testing.T) {
		op := newOp("apply", []schema.TypeDescriptor{schema.PredictionModel}, nil)
		_, err := op.CheckIO(list(model))

		var iie *IllegalInputError
		assert.True(t, errors.As(err, &iie))
		assert.Equal(t, "apply", iie.Operator)
		assert.Equal(t, schema.PredictionModel, iie.Missing)
		assert.Empty(t, iie.Chain)
	})

	t.Run("duplicate inputs each consume one element", func(t *testing.T) {
		op := newOp("join", []schema.TypeDescriptor{es, es}, []schema.TypeDescriptor{es})
		out, err := op.CheckIO(list(es, es))
		assert.NoError(t, err)
		assert.Equal(t, list(es), out)

		_, err = op.CheckIO(list(es))
		assert.ErrorIs(t, err, ErrIllegalInput)
	})

	t.Run("keep input", func(t *testing.T) {
		op := newOp("stats", []schema.TypeDescriptor{es}, []schema.TypeDescriptor{perf}, WithKeepInput())
		out, err := op.CheckIO(list(es))
		assert.NoError(t, err)
		assert.Equal(t, list(es, perf), out)
	})

	t.Run("disabled passes input through", func(t *testing.T) {
		op := newOp("learner", []schema.TypeDescriptor{model}, []schema.TypeDescriptor{perf}, WithDisabled())
		out, err := op.CheckIO(list(es))
		assert.NoError(t, err)
		assert.Equal(t, list(es), out)

		op.SetEnabled(true)
		_, err = op.CheckIO(list(es))
		assert.Error(t, err)
	})

	t.Run("input list is not modified", func(t *testing.T) {
		op := newOp("learner", []schema.TypeDescriptor{es}, []schema.TypeDescriptor{model})
		in := list(es, perf)
		_, err := op.CheckIO(in)
		assert.NoError(t, err)
		assert.Equal(t, list(es, perf), in)
	})
}

func TestBaseOperatorAccessors(t *testing.T) {
	op := NewOperator("learner",
		WithInput(es),
		WithOutput(model),
		WithComponent(components.ComponentOfLearner))

	assert.Equal(t, "learner", op.Name())
	assert.Equal(t, components.ComponentOfLearner, op.Component())
	assert.True(t, op.IsEnabled())
	assert.Nil(t, op.Parent())
	assert.Equal(t, schema.IOContract{Consumes: list(es), Produces: list(model)}, op.Contract())

	in := op.InputClasses()
	in[0] = perf
	assert.Equal(t, list(es), op.InputClasses())
}

type testModel struct{}

func (testModel) Descriptor() schema.TypeDescriptor { return schema.PredictionModel }

func TestBaseOperatorExecute(t *testing.T) {
	ctx := context.Background()
	data := &schema.ExampleSetObject{Name: "golf"}

	t.Run("hands declared inputs to apply", func(t *testing.T) {
		var got []schema.IOObject
		op := NewOperator("learner",
			WithInput(es),
			WithOutput(model),
			WithApply(func(_ context.Context, inputs []schema.IOObject) ([]schema.IOObject, error) {
				got = inputs
				return []schema.IOObject{testModel{}}, nil
			}))

		params := &schema.PerformanceObject{}
		out, err := op.Execute(ctx, schema.NewIOContainer(params, data))
		assert.NoError(t, err)
		assert.Equal(t, []schema.IOObject{data}, got)
		assert.Equal(t, list(perf, schema.PredictionModel), out.Descriptors())
	})

	t.Run("keep input", func(t *testing.T) {
		op := NewOperator("count",
			WithInput(es),
			WithOutput(perf),
			WithKeepInput(),
			WithApply(func(_ context.Context, _ []schema.IOObject) ([]schema.IOObject, error) {
				return []schema.IOObject{&schema.PerformanceObject{}}, nil
			}))

		out, err := op.Execute(ctx, schema.NewIOContainer(data))
		assert.NoError(t, err)
		assert.Equal(t, list(es, perf), out.Descriptors())
	})

	t.Run("missing input", func(t *testing.T) {
		op := NewOperator("apply", WithInput(model))
		_, err := op.Execute(ctx, schema.NewIOContainer(data))
		assert.ErrorIs(t, err, ErrIllegalInput)
	})

	t.Run("output of wrong type", func(t *testing.T) {
		op := NewOperator("learner",
			WithInput(es),
			WithOutput(schema.ClusterModel),
			WithApply(func(_ context.Context, _ []schema.IOObject) ([]schema.IOObject, error) {
				return []schema.IOObject{testModel{}}, nil
			}))

		_, err := op.Execute(ctx, schema.NewIOContainer(data))
		assert.ErrorIs(t, err, ErrUnexpectedOutput)

		var oe *OperatorError
		assert.True(t, errors.As(err, &oe))
		assert.Equal(t, []string{"learner"}, oe.Path)
	})

	t.Run("wrong number of outputs", func(t *testing.T) {
		op := NewOperator("learner",
			WithInput(es),
			WithOutput(model),
			WithApply(func(_ context.Context, _ []schema.IOObject) ([]schema.IOObject, error) {
				return nil, nil
			}))

		_, err := op.Execute(ctx, schema.NewIOContainer(data))
		assert.ErrorIs(t, err, ErrUnexpectedOutput)
	})

	t.Run("panic becomes error", func(t *testing.T) {
		op := NewOperator("learner",
			WithInput(es),
			WithApply(func(_ context.Context, _ []schema.IOObject) ([]schema.IOObject, error) {
				panic("boom")
			}))

		_, err := op.Execute(ctx, schema.NewIOContainer(data))
		assert.Error(t, err)
		assert.True(t, safe.IsPanicErr(err))
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("apply error is wrapped", func(t *testing.T) {
		cause := errors.New("training failed")
		op := NewOperator("learner",
			WithInput(es),
			WithApply(func(_ context.Context, _ []schema.IOObject) ([]schema.IOObject, error) {
				return nil, cause
			}))

		_, err := op.Execute(ctx, schema.NewIOContainer(data))
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "[OperatorError]")
	})

	t.Run("outputs without apply", func(t *testing.T) {
		op := NewOperator("learner", WithInput(es), WithOutput(model))
		_, err := op.Execute(ctx, schema.NewIOContainer(data))
		assert.Error(t, err)
	})

	t.Run("disabled returns input container", func(t *testing.T) {
		op := NewOperator("learner", WithInput(model), WithDisabled())
		in := schema.NewIOContainer(data)
		out, err := op.Execute(ctx, in)
		assert.NoError(t, err)
		assert.Same(t, in, out)
	})
}
