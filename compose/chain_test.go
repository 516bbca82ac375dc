package compose

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/favbox/opchain/components"
	"github.com/favbox/opchain/schema"
)

func TestChildrenOwnership(t *testing.T) {
	op := newOp("learner", []schema.TypeDescriptor{es}, []schema.TypeDescriptor{model})
	a := NewOperatorChain("a", nil)
	b := NewOperatorChain("b", nil)

	assert.NoError(t, a.AddOperator(op))
	assert.Equal(t, Chain(a), op.Parent())

	err := b.AddOperator(op)
	assert.ErrorIs(t, err, ErrOperatorOwned)
	assert.Equal(t, 0, b.NumberOfOperators())

	removed, err := a.RemoveOperator(0)
	assert.NoError(t, err)
	assert.Same(t, op, removed)
	assert.Nil(t, op.Parent())

	assert.NoError(t, b.AddOperator(op))
	assert.Equal(t, Chain(b), op.Parent())

	assert.Error(t, a.AddOperator(a))
	assert.Error(t, a.AddOperator(nil))
}

func TestChildrenRejectsCycles(t *testing.T) {
	a := NewOperatorChain("a", nil)
	b := NewOperatorChain("b", nil)
	c := NewOperatorChain("c", nil)
	assert.NoError(t, a.AddOperator(b))
	assert.NoError(t, b.AddOperator(c))

	err := b.AddOperator(a)
	assert.ErrorContains(t, err, "ancestor 'a'")
	assert.Equal(t, 1, b.NumberOfOperators())
	assert.Nil(t, a.Parent())

	assert.Error(t, c.AddOperator(a))
	assert.Error(t, c.InsertOperator(0, b))
	assert.Equal(t, 0, c.NumberOfOperators())

	out, err := a.CheckIO(list(es))
	assert.NoError(t, err)
	assert.Equal(t, list(es), out)

	// 移出后不再是上级链
	_, err = a.RemoveOperator(0)
	assert.NoError(t, err)
	assert.NoError(t, c.AddOperator(a))
	assert.Equal(t, Chain(c), a.Parent())
}

func TestChildrenRejectsTypedNil(t *testing.T) {
	c := NewOperatorChain("chain", nil)

	var op *BaseOperator
	assert.Error(t, c.AddOperator(op))

	var chain *OperatorChain
	assert.Error(t, c.AddOperator(chain))

	assert.Equal(t, 0, c.NumberOfOperators())
}

func TestChildrenOrder(t *testing.T) {
	c := NewOperatorChain("chain", nil)
	first := newOp("first", nil, nil)
	second := newOp("second", nil, nil)
	third := newOp("third", nil, nil)

	assert.NoError(t, c.AddOperator(third))
	assert.NoError(t, c.InsertOperator(0, first))
	assert.NoError(t, c.InsertOperator(1, second))
	assert.Error(t, c.InsertOperator(5, newOp("x", nil, nil)))

	names := make([]string, 0, c.NumberOfOperators())
	for i := 0; i < c.NumberOfOperators(); i++ {
		names = append(names, c.Operator(i).Name())
	}
	assert.Equal(t, []string{"first", "second", "third"}, names)

	second.SetEnabled(false)
	assert.Equal(t, 2, c.Children().EnabledCount())

	_, err := c.RemoveOperator(3)
	assert.Error(t, err)
}

func TestChainNumberOfInnerOperators(t *testing.T) {
	t.Run("between", func(t *testing.T) {
		c := NewOperatorChain("xval", nil,
			WithInnerOperatorBounds(2, 3),
			WithChildren(newOp("only", nil, nil)))

		_, err := c.CheckIO(list(es))
		var wn *WrongNumberOfInnerOperatorsError
		assert.True(t, errors.As(err, &wn))
		assert.Equal(t, 2, wn.Min)
		assert.Equal(t, 3, wn.Max)
		assert.Equal(t, 1, wn.Actual)
		assert.Equal(t, []string{"xval"}, wn.Path)
		assert.Contains(t, err.Error(), "between 2 and 3")
	})

	t.Run("exactly", func(t *testing.T) {
		c := NewOperatorChain("single", nil, WithInnerOperatorBounds(1, 1))
		err := c.CheckNumberOfInnerOperators()
		assert.ErrorIs(t, err, ErrWrongNumberOfInnerOperators)
		assert.Contains(t, err.Error(), "exactly 1")
	})

	t.Run("at least", func(t *testing.T) {
		c := NewOperatorChain("many", nil, WithInnerOperatorBounds(2, Unbounded))
		err := c.CheckNumberOfInnerOperators()
		assert.Contains(t, err.Error(), "at least 2")
	})

	t.Run("invalid bounds", func(t *testing.T) {
		c := NewOperatorChain("broken", nil, WithInnerOperatorBounds(3, 1))
		_, err := c.CheckIO(nil)
		assert.Error(t, err)
	})

	t.Run("removing below minimum is reported at check time", func(t *testing.T) {
		c := NewOperatorChain("pair", nil,
			WithInnerOperatorBounds(2, 2),
			WithChildren(newOp("a", nil, nil), newOp("b", nil, nil)))

		_, err := c.CheckIO(nil)
		assert.NoError(t, err)

		_, err = c.RemoveOperator(1)
		assert.NoError(t, err)
		_, err = c.CheckIO(nil)
		assert.ErrorIs(t, err, ErrWrongNumberOfInnerOperators)
	})
}

func TestOperatorChainCheckIO(t *testing.T) {
	t.Run("transparent chain returns inner output", func(t *testing.T) {
		c := NewOperatorChain("chain", nil, WithChildren(
			newOp("learner", []schema.TypeDescriptor{es}, []schema.TypeDescriptor{model}),
		))
		out, err := c.CheckIO(list(es, perf))
		assert.NoError(t, err)
		assert.Equal(t, list(perf, model), out)
	})

	t.Run("declared outputs", func(t *testing.T) {
		c := NewOperatorChain("train", nil,
			WithInput(es),
			WithOutput(model),
			WithChildren(newOp("learner", []schema.TypeDescriptor{es}, []schema.TypeDescriptor{model})))

		out, err := c.CheckIO(list(es, perf))
		assert.NoError(t, err)
		assert.Equal(t, list(perf, model), out)
	})

	t.Run("declared output not delivered", func(t *testing.T) {
		c := NewOperatorChain("train", nil,
			WithInput(es),
			WithOutput(model),
			WithChildren(
				newOp("filter", []schema.TypeDescriptor{es}, []schema.TypeDescriptor{es}),
				newOp("off", nil, []schema.TypeDescriptor{model}, WithDisabled())))

		_, err := c.CheckIO(list(es))
		var iie *IllegalInputError
		assert.True(t, errors.As(err, &iie))
		assert.Equal(t, "train", iie.Chain)
		assert.Equal(t, "filter", iie.Operator)
		assert.Equal(t, model, iie.Missing)
	})

	t.Run("missing chain input is reported before children", func(t *testing.T) {
		c := NewOperatorChain("evaluate", nil,
			WithInput(model),
			WithOutput(perf),
			WithChildren(newOp("apply", []schema.TypeDescriptor{model}, []schema.TypeDescriptor{perf})))

		_, err := c.CheckIO(list(es))
		var iie *IllegalInputError
		assert.True(t, errors.As(err, &iie))
		assert.Equal(t, "evaluate", iie.Operator)
		assert.Equal(t, model, iie.Missing)
	})

	t.Run("disabled chain passes input through", func(t *testing.T) {
		c := NewOperatorChain("chain", nil,
			WithDisabled(),
			WithInnerOperatorBounds(5, 5),
			WithChildren(newOp("needs-model", []schema.TypeDescriptor{model}, nil)))

		out, err := c.CheckIO(list(es))
		assert.NoError(t, err)
		assert.Equal(t, list(es), out)
	})

	t.Run("nested error path", func(t *testing.T) {
		inner := NewOperatorChain("inner", nil, WithChildren(
			newOp("bad", []schema.TypeDescriptor{model}, nil),
		))
		root := NewOperatorChain("root", nil, WithChildren(
			newOp("loader", nil, []schema.TypeDescriptor{es}),
			inner,
		))

		_, err := root.CheckIO(nil)
		var iie *IllegalInputError
		assert.True(t, errors.As(err, &iie))
		assert.Equal(t, "inner", iie.Chain)
		assert.Equal(t, "bad", iie.Operator)
		assert.Equal(t, []string{"root", "inner"}, iie.Path)
		assert.Equal(t,
			"illegal input: operator 'bad' in chain 'inner' requires Model, which is not available; operator path: [root, inner]",
			err.Error())
	})

	t.Run("nested all condition", func(t *testing.T) {
		ensemble := NewOperatorChain("ensemble",
			NewAllInnerOperatorCondition(list(es), list(model)),
			WithInput(es),
			WithOutput(model),
			WithChildren(
				newOp("tree", []schema.TypeDescriptor{es}, []schema.TypeDescriptor{model}),
				newOp("stump", []schema.TypeDescriptor{es}, []schema.TypeDescriptor{schema.PredictionModel}),
			))
		root := NewOperatorChain("root", nil, WithChildren(
			ensemble,
			newOp("apply", []schema.TypeDescriptor{model}, []schema.TypeDescriptor{perf}),
		))

		out, err := root.CheckIO(list(es))
		assert.NoError(t, err)
		assert.Equal(t, list(perf), out)
	})
}

func TestOperatorChainExecute(t *testing.T) {
	data := &schema.ExampleSetObject{Name: "golf"}

	train := func(name string, trace *[]string) *BaseOperator {
		return NewOperator(name,
			WithInput(es),
			WithOutput(es),
			WithApply(func(_ context.Context, inputs []schema.IOObject) ([]schema.IOObject, error) {
				*trace = append(*trace, name)
				return inputs, nil
			}))
	}

	t.Run("sequential hand-off skips disabled children", func(t *testing.T) {
		var trace []string
		off := train("b", &trace)
		off.SetEnabled(false)
		c := NewOperatorChain("chain", nil, WithChildren(train("a", &trace), off, train("c", &trace)))

		out, err := c.Execute(context.Background(), schema.NewIOContainer(data))
		assert.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, trace)
		assert.Equal(t, []schema.IOObject{data}, out.Objects())
	})

	t.Run("stops between children when cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var trace []string
		first := NewOperator("first",
			WithInput(es),
			WithOutput(es),
			WithApply(func(_ context.Context, inputs []schema.IOObject) ([]schema.IOObject, error) {
				trace = append(trace, "first")
				cancel()
				return inputs, nil
			}))
		c := NewOperatorChain("chain", nil, WithChildren(first, train("second", &trace)))

		_, err := c.Execute(ctx, schema.NewIOContainer(data))
		assert.ErrorIs(t, err, ErrProcessStopped)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, []string{"first"}, trace)
	})

	t.Run("nested error path", func(t *testing.T) {
		cause := errors.New("out of memory")
		inner := NewOperatorChain("inner", nil, WithChildren(
			NewOperator("learner", WithInput(es), WithApply(
				func(_ context.Context, _ []schema.IOObject) ([]schema.IOObject, error) {
					return nil, cause
				})),
		))
		root := NewOperatorChain("root", nil, WithChildren(inner))

		_, err := root.Execute(context.Background(), schema.NewIOContainer(data))
		assert.ErrorIs(t, err, cause)

		var oe *OperatorError
		assert.True(t, errors.As(err, &oe))
		assert.Equal(t, []string{"root", "inner", "learner"}, oe.Path)
	})

	t.Run("custom executor", func(t *testing.T) {
		called := false
		c := NewOperatorChain("chain", nil,
			WithChainExecutor(func(ctx context.Context, chain *OperatorChain, in *schema.IOContainer) (*schema.IOContainer, error) {
				called = true
				assert.Equal(t, "chain", chain.Name())
				return ExecuteSequentially(ctx, chain, in)
			}))

		_, err := c.Execute(context.Background(), schema.NewIOContainer(data))
		assert.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("missing chain input stops before children run", func(t *testing.T) {
		called := false
		c := NewOperatorChain("evaluate", nil,
			WithInput(model),
			WithOutput(perf),
			WithChildren(NewOperator("apply", WithInput(model), WithOutput(perf), WithApply(
				func(_ context.Context, _ []schema.IOObject) ([]schema.IOObject, error) {
					called = true
					return []schema.IOObject{&schema.PerformanceObject{}}, nil
				}))))

		_, err := c.Execute(context.Background(), schema.NewIOContainer(data))
		var iie *IllegalInputError
		assert.True(t, errors.As(err, &iie))
		assert.Equal(t, "evaluate", iie.Operator)
		assert.False(t, called)
	})

	t.Run("wrong number of inner operators", func(t *testing.T) {
		c := NewOperatorChain("chain", nil, WithInnerOperatorBounds(1, 1))
		_, err := c.Execute(context.Background(), schema.NewIOContainer(data))
		assert.ErrorIs(t, err, ErrWrongNumberOfInnerOperators)
	})
}

func TestDescribe(t *testing.T) {
	inner := NewOperatorChain("ensemble",
		NewAllInnerOperatorCondition(list(es), list(model)),
		WithInnerOperatorBounds(1, 4),
		WithChildren(newOp("tree", []schema.TypeDescriptor{es}, []schema.TypeDescriptor{model},
			WithComponent(components.ComponentOfLearner))))
	root := NewOperatorChain("root", nil, WithChildren(
		newOp("loader", nil, []schema.TypeDescriptor{es}, WithComponent(components.ComponentOfLoader), WithDisabled()),
		inner,
	))

	info := Describe(root)
	assert.True(t, info.IsChain())
	assert.Equal(t, components.ComponentOfChain, info.Component)
	assert.Equal(t, 0, info.MaxInner)
	assert.Equal(t, simpleChainDescription, info.Condition)
	assert.Len(t, info.Children, 2)

	loader := info.Children[0]
	assert.False(t, loader.IsChain())
	assert.False(t, loader.Enabled)
	assert.Equal(t, components.ComponentOfLoader, loader.Component)

	ens := info.Children[1]
	assert.Equal(t, 1, ens.MinInner)
	assert.Equal(t, 4, ens.MaxInner)
	assert.Contains(t, ens.Condition, "must deliver [Model]")

	var visited []string
	var depths []int
	info.Walk(func(i *OperatorInfo, depth int) {
		visited = append(visited, i.Name)
		depths = append(depths, depth)
	})
	assert.Equal(t, []string{"root", "loader", "ensemble", "tree"}, visited)
	assert.Equal(t, []int{0, 1, 1, 2}, depths)

	s := loader.ContractSchema()
	assert.NotNil(t, s)
	assert.Equal(t, "loader", s.Title)
}

func TestOperatorChainExecuteBranches(t *testing.T) {
	data := &schema.ExampleSetObject{Name: "golf"}
	learn := func(name string, kind schema.TypeDescriptor) *BaseOperator {
		return NewOperator(name,
			WithInput(es),
			WithOutput(kind),
			WithApply(func(_ context.Context, _ []schema.IOObject) ([]schema.IOObject, error) {
				return []schema.IOObject{&schema.ModelObject{Kind: kind, Name: name}}, nil
			}))
	}

	t.Run("all condition runs each child on the same input", func(t *testing.T) {
		c := NewOperatorChain("ensemble",
			NewAllInnerOperatorCondition(list(es), list(model)),
			WithInput(es),
			WithOutput(model),
			WithKeepInput(),
			WithChildren(learn("tree", schema.PredictionModel), learn("stump", model)))

		checked, err := c.CheckIO(list(es))
		assert.NoError(t, err)

		out, err := c.Execute(context.Background(), schema.NewIOContainer(data))
		assert.NoError(t, err)
		assert.Equal(t, checked, out.Descriptors())

		objs := out.Objects()
		assert.Same(t, data, objs[0])
		assert.Equal(t, "stump", objs[1].(*schema.ModelObject).Name)
	})

	t.Run("combined condition follows its last sub-condition", func(t *testing.T) {
		c := NewOperatorChain("ensemble",
			NewCombinedInnerOperatorCondition(
				&SimpleChainCondition{},
				NewAllInnerOperatorCondition(list(es), list(model))),
			WithChildren(learn("tree", model), learn("stump", model)))

		out, err := c.Execute(context.Background(), schema.NewIOContainer(data))
		assert.NoError(t, err)
		assert.Equal(t, list(model), out.Descriptors())
	})

	t.Run("declared output not delivered at run time", func(t *testing.T) {
		c := NewOperatorChain("train", nil,
			WithInput(es),
			WithOutput(perf),
			WithChainExecutor(func(_ context.Context, _ *OperatorChain, in *schema.IOContainer) (*schema.IOContainer, error) {
				return in, nil
			}))

		_, err := c.Execute(context.Background(), schema.NewIOContainer(data))
		assert.ErrorIs(t, err, ErrUnexpectedOutput)
	})
}
