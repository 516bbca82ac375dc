package compose

/*
 * introspect.go - 算子树的内省信息
 *
 * 核心组件：
 *   - OperatorInfo: 单个算子的元数据（种类、契约、条件描述、子算子）
 *   - CheckInfo: 一次检查的完整信息
 *   - CheckCallback: 检查完成后的通知
 *
 * 使用场景：
 *   - 命令行与界面层展示算子树、条件描述和 IO 契约
 *   - 检查结果的序列化（见 report.go）
 */

import (
	"context"

	"github.com/eino-contrib/jsonschema"

	"github.com/favbox/opchain/components"
	"github.com/favbox/opchain/schema"
)

// OperatorInfo 算子元数据。
type OperatorInfo struct {
	Name      string               `json:"name"`
	Component components.Component `json:"component"`
	Enabled   bool                 `json:"enabled"`
	Contract  schema.IOContract    `json:"contract"`

	// 以下字段只对链有效
	Condition string          `json:"condition,omitempty"`
	MinInner  int             `json:"min_inner,omitempty"`
	MaxInner  int             `json:"max_inner,omitempty"`
	Children  []*OperatorInfo `json:"children,omitempty"`
}

// IsChain 是否为链。
func (i *OperatorInfo) IsChain() bool {
	return i.Component == components.ComponentOfChain || len(i.Children) > 0 || i.Condition != ""
}

// ContractSchema 返回算子契约的 JSON Schema。
func (i *OperatorInfo) ContractSchema() *jsonschema.Schema {
	return i.Contract.ToJSONSchema(i.Name)
}

// Walk 深度优先遍历，父节点先于子节点。
func (i *OperatorInfo) Walk(fn func(info *OperatorInfo, depth int)) {
	i.walk(fn, 0)
}

func (i *OperatorInfo) walk(fn func(info *OperatorInfo, depth int), depth int) {
	fn(i, depth)
	for _, c := range i.Children {
		c.walk(fn, depth+1)
	}
}

// Describe 收集算子及其子孙的元数据。
func Describe(op Operator) *OperatorInfo {
	info := &OperatorInfo{
		Name:      op.Name(),
		Component: components.ComponentOfUnknown,
		Enabled:   op.IsEnabled(),
		Contract: schema.IOContract{
			Consumes: op.InputClasses(),
			Produces: op.OutputClasses(),
		},
	}

	if c, ok := op.(interface{ Component() components.Component }); ok {
		info.Component = c.Component()
	}

	chain, ok := op.(Chain)
	if !ok {
		return info
	}

	if c, ok := op.(interface{ Condition() InnerOperatorCondition }); ok && c.Condition() != nil {
		info.Condition = c.Condition().HumanReadableDescription()
	}
	info.MinInner = chain.MinInnerOperators()
	if chain.MaxInnerOperators() != Unbounded {
		info.MaxInner = chain.MaxInnerOperators()
	}
	for idx := 0; idx < chain.NumberOfOperators(); idx++ {
		info.Children = append(info.Children, Describe(chain.Operator(idx)))
	}
	return info
}

// CheckInfo 一次检查的完整信息。
type CheckInfo struct {
	ProcessName string
	Input       schema.IOList
	Output      schema.IOList
	Err         error
	Root        *OperatorInfo
}

// CheckCallback 检查完成回调，无论检查成功与否都会被调用。
type CheckCallback interface {
	OnFinish(ctx context.Context, info *CheckInfo)
}

// CheckCallbackFunc 函数形式的 CheckCallback。
type CheckCallbackFunc func(ctx context.Context, info *CheckInfo)

// OnFinish 实现 CheckCallback。
func (f CheckCallbackFunc) OnFinish(ctx context.Context, info *CheckInfo) {
	f(ctx, info)
}
