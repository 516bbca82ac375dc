/*
 * chain.go - 算子链：有序子算子 + 内部条件
 *
 * 核心组件：
 *   - Chain: 条件检查时依赖的链接口
 *   - Children: 子算子容器，负责顺序与归属
 *   - OperatorChain: BaseOperator + Children + InnerOperatorCondition 的组合
 *
 * 设计特点：
 *   - 组合代替继承：任何复合算子都可以持有一个 Children
 *   - 一条链独占一个条件对象，创建时确定，nil 视为 SimpleChainCondition
 *   - 一个算子同一时刻只属于一条链，移除后才能加入其他链
 *   - 构建错误延迟到 CheckIO / Execute 时返回
 *
 * 检查流程（CheckIO）：
 *   1. 禁用则透传
 *   2. 检查子算子个数上下界
 *   3. 链声明了输出时，先按 BaseOperator 规则消费输入
 *   4. 由条件检查子算子，得到内部输出
 *   5. 链声明了输出时，要求内部输出包含声明的每个输出；否则链是透明的，直接返回内部输出
 *
 * 执行（Execute）按同样的规则组装结果，执行方式默认由条件决定（见 defaultExecutor）。
 */

package compose

import (
	"context"
	"errors"
	"fmt"

	"github.com/favbox/opchain/components"
	"github.com/favbox/opchain/schema"
)

// Chain 链接口，条件只通过它访问子算子。
type Chain interface {
	Operator
	NumberOfOperators() int
	Operator(i int) Operator
	MinInnerOperators() int
	MaxInnerOperators() int
}

// ChainExecutor 链的执行方式。
type ChainExecutor func(ctx context.Context, chain *OperatorChain, in *schema.IOContainer) (*schema.IOContainer, error)

// ErrOperatorOwned 算子已属于另一条链。
var ErrOperatorOwned = errors.New("operator already belongs to a chain")

// Children 子算子容器。
type Children struct {
	owner Chain
	ops   []Operator
}

// NewChildren 创建归属于 owner 的容器。
func NewChildren(owner Chain) *Children {
	return &Children{owner: owner}
}

// Len 子算子个数。
func (c *Children) Len() int {
	return len(c.ops)
}

// At 返回第 i 个子算子。
func (c *Children) At(i int) Operator {
	return c.ops[i]
}

// EnabledCount 启用的子算子个数。
func (c *Children) EnabledCount() int {
	n := 0
	for _, op := range c.ops {
		if op.IsEnabled() {
			n++
		}
	}
	return n
}

// Add 追加子算子。
func (c *Children) Add(op Operator) error {
	return c.Insert(len(c.ops), op)
}

// Insert 在位置 i 插入子算子。
// 不接受 nil 和类型化的 nil 指针，也不接受 owner 自身或它的任一上级链。
func (c *Children) Insert(i int, op Operator) error {
	if op == nil {
		return errors.New("operator is nil")
	}
	if i < 0 || i > len(c.ops) {
		return fmt.Errorf("insert index %d out of range [0, %d]", i, len(c.ops))
	}
	if owned, ok := op.(ownedOperator); ok {
		if owned.isNil() {
			return errors.New("operator is nil")
		}
		if p := owned.parentChain(); p != nil {
			return fmt.Errorf("%w: '%s' is in chain '%s'", ErrOperatorOwned, op.Name(), p.Name())
		}
		if err := c.checkCycle(op); err != nil {
			return err
		}
		owned.setParentChain(c.owner)
	}

	c.ops = append(c.ops, nil)
	copy(c.ops[i+1:], c.ops[i:])
	c.ops[i] = op
	return nil
}

// checkCycle 从 owner 沿所属链向上查找，op 出现在其中时加入会形成环。
func (c *Children) checkCycle(op Operator) error {
	if c.owner == nil {
		return nil
	}
	if op == Operator(c.owner) {
		return fmt.Errorf("chain '%s' cannot contain itself", op.Name())
	}
	for p := parentOf(c.owner); p != nil; p = parentOf(p) {
		if op == Operator(p) {
			return fmt.Errorf("chain '%s' cannot contain its ancestor '%s'", c.owner.Name(), op.Name())
		}
	}
	return nil
}

func parentOf(ch Chain) Chain {
	if owned, ok := ch.(ownedOperator); ok && !owned.isNil() {
		return owned.parentChain()
	}
	return nil
}

// Remove 移除并返回第 i 个子算子，同时解除归属。
func (c *Children) Remove(i int) (Operator, error) {
	if i < 0 || i >= len(c.ops) {
		return nil, fmt.Errorf("remove index %d out of range [0, %d)", i, len(c.ops))
	}
	op := c.ops[i]
	c.ops = append(c.ops[:i], c.ops[i+1:]...)
	if owned, ok := op.(ownedOperator); ok {
		owned.setParentChain(nil)
	}
	return op, nil
}

// OperatorChain 算子链。
type OperatorChain struct {
	*BaseOperator
	children *Children

	condition          InnerOperatorCondition
	minInner, maxInner int
	executor           ChainExecutor

	// err 构建过程中的第一个错误
	err error
}

// NewOperatorChain 创建算子链，cond 为 nil 时使用 SimpleChainCondition。
func NewOperatorChain(name string, cond InnerOperatorCondition, opts ...OperatorOption) *OperatorChain {
	o := newOperatorOptions(opts...)
	if o.component == components.ComponentOfUnknown {
		o.component = components.ComponentOfChain
	}
	if cond == nil {
		cond = &SimpleChainCondition{}
	}

	c := &OperatorChain{
		BaseOperator: newBaseOperator(name, o),
		condition:    cond,
		minInner:     o.minInner,
		maxInner:     o.maxInner,
		executor:     o.executor,
	}
	c.children = NewChildren(c)

	if o.minInner < 0 || o.minInner > o.maxInner {
		c.err = fmt.Errorf("chain '%s' has invalid inner operator bounds [%d, %d]", name, o.minInner, o.maxInner)
	}

	for _, op := range o.children {
		if err := c.children.Add(op); err != nil && c.err == nil {
			c.err = err
		}
	}

	return c
}

// Condition 返回链的内部条件。
func (c *OperatorChain) Condition() InnerOperatorCondition {
	return c.condition
}

// Children 返回子算子容器。
func (c *OperatorChain) Children() *Children {
	return c.children
}

// AddOperator 追加子算子。
func (c *OperatorChain) AddOperator(op Operator) error {
	return c.children.Add(op)
}

// InsertOperator 在位置 i 插入子算子。
func (c *OperatorChain) InsertOperator(i int, op Operator) error {
	return c.children.Insert(i, op)
}

// RemoveOperator 移除第 i 个子算子。
func (c *OperatorChain) RemoveOperator(i int) (Operator, error) {
	return c.children.Remove(i)
}

// NumberOfOperators 实现 Chain。
func (c *OperatorChain) NumberOfOperators() int {
	return c.children.Len()
}

// Operator 实现 Chain。
func (c *OperatorChain) Operator(i int) Operator {
	return c.children.At(i)
}

// MinInnerOperators 实现 Chain。
func (c *OperatorChain) MinInnerOperators() int {
	return c.minInner
}

// MaxInnerOperators 实现 Chain。
func (c *OperatorChain) MaxInnerOperators() int {
	return c.maxInner
}

func (c *OperatorChain) isNil() bool {
	return c == nil
}

// CheckNumberOfInnerOperators 检查 min ≤ n ≤ max。
func (c *OperatorChain) CheckNumberOfInnerOperators() error {
	n := c.children.Len()
	if n < c.minInner || n > c.maxInner {
		return &WrongNumberOfInnerOperatorsError{
			Chain:  c.Name(),
			Min:    c.minInner,
			Max:    c.maxInner,
			Actual: n,
		}
	}
	return nil
}

// CheckIO 实现 Operator。
func (c *OperatorChain) CheckIO(input schema.IOList) (schema.IOList, error) {
	if c.err != nil {
		return nil, c.err
	}
	if !c.IsEnabled() {
		return input.Clone(), nil
	}

	if err := c.CheckNumberOfInnerOperators(); err != nil {
		return nil, wrapOperatorError(c.Name(), err)
	}

	var remaining schema.IOList
	if len(c.outputs) > 0 {
		var err error
		if remaining, err = c.consume(input); err != nil {
			return nil, wrapOperatorError(c.Name(), err)
		}
	}

	inner, err := c.condition.CheckIO(c, input)
	if err != nil {
		return nil, wrapOperatorError(c.Name(), attachChain(c.Name(), err))
	}

	if len(c.outputs) == 0 {
		return inner, nil
	}
	for _, t := range c.outputs {
		if !inner.Contains(t) {
			return nil, wrapOperatorError(c.Name(), &IllegalInputError{
				Chain:    c.Name(),
				Operator: c.lastEnabledName(),
				Missing:  t,
			})
		}
	}
	return remaining.Append(c.outputs...), nil
}

// lastEnabledName 最后一个启用的子算子名，没有时返回链名。
func (c *OperatorChain) lastEnabledName() string {
	for i := c.children.Len() - 1; i >= 0; i-- {
		if op := c.children.At(i); op.IsEnabled() {
			return op.Name()
		}
	}
	return c.Name()
}

// Execute 实现 Executor。
func (c *OperatorChain) Execute(ctx context.Context, in *schema.IOContainer) (*schema.IOContainer, error) {
	if c.err != nil {
		return nil, c.err
	}
	if !c.IsEnabled() {
		return in, nil
	}
	if err := c.CheckNumberOfInnerOperators(); err != nil {
		return nil, wrapOperatorError(c.Name(), err)
	}
	if len(c.outputs) > 0 {
		if _, err := c.consume(in.Descriptors()); err != nil {
			return nil, wrapOperatorError(c.Name(), err)
		}
	}

	exec := c.executor
	if exec == nil {
		exec = defaultExecutor(c.condition)
	}

	out, err := exec(ctx, c, in)
	if err != nil {
		return nil, wrapOperatorError(c.Name(), err)
	}

	if len(c.outputs) == 0 {
		return out, nil
	}
	res, err := c.collect(in, out)
	if err != nil {
		return nil, wrapOperatorError(c.Name(), err)
	}
	return res, nil
}

// collect 按 CheckIO 的规则组装声明了输出的链的结果：
// 剩余输入之后接上从内部结果中逐个取出的声明输出。
func (c *OperatorChain) collect(in, inner *schema.IOContainer) (*schema.IOContainer, error) {
	res := schema.NewIOContainer(in.Objects()...)
	if !c.keepInput {
		for _, t := range c.inputs {
			if _, err := res.Remove(t); err != nil {
				return nil, &IllegalInputError{Chain: c.Name(), Operator: c.Name(), Missing: t}
			}
		}
	}

	pool := schema.NewIOContainer(inner.Objects()...)
	for _, t := range c.outputs {
		obj, err := pool.Remove(t)
		if err != nil {
			return nil, fmt.Errorf("%w: chain '%s' did not deliver %s", ErrUnexpectedOutput, c.Name(), t)
		}
		res.Append(obj)
	}
	return res, nil
}

// defaultExecutor 按条件选择执行方式。
// AllInnerOperatorCondition 的子算子各自处理同一份输入，组合条件以最后一个子条件为准，其余顺序执行。
func defaultExecutor(cond InnerOperatorCondition) ChainExecutor {
	switch c := cond.(type) {
	case *AllInnerOperatorCondition:
		return ExecuteBranches
	case *CombinedInnerOperatorCondition:
		if n := len(c.conditions); n > 0 {
			return defaultExecutor(c.conditions[n-1])
		}
	}
	return ExecuteSequentially
}

// ExecuteSequentially 按顺序执行启用的子算子，上一个的输出作为下一个的输入。
// 每个子算子开始前检查 ctx，已取消时返回 ErrProcessStopped。
func ExecuteSequentially(ctx context.Context, chain *OperatorChain, in *schema.IOContainer) (*schema.IOContainer, error) {
	cur := in
	for i := 0; i < chain.NumberOfOperators(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, newStoppedError(err)
		}

		child := chain.Operator(i)
		if !child.IsEnabled() {
			continue
		}

		ex, ok := child.(Executor)
		if !ok {
			return nil, fmt.Errorf("operator '%s' is not executable", child.Name())
		}

		var err error
		cur, err = ex.Execute(ctx, cur)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// ExecuteBranches 每个子算子分别处理输入的一份副本，返回最后一个子算子的结果。
// 禁用的子算子原样返回输入副本。
func ExecuteBranches(ctx context.Context, chain *OperatorChain, in *schema.IOContainer) (*schema.IOContainer, error) {
	out := in
	for i := 0; i < chain.NumberOfOperators(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, newStoppedError(err)
		}

		branch := schema.NewIOContainer(in.Objects()...)
		child := chain.Operator(i)
		if !child.IsEnabled() {
			out = branch
			continue
		}

		ex, ok := child.(Executor)
		if !ok {
			return nil, fmt.Errorf("operator '%s' is not executable", child.Name())
		}

		var err error
		out, err = ex.Execute(ctx, branch)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
