/*
 * descriptor.go - 数据类型标识与 IO 类型列表
 *
 * 核心组件：
 *   - TypeDescriptor: 轻量的语义类型标签，代替运行时的类对象
 *   - IOList: 有序、可重复的类型列表，算子声明和检查都基于它
 *
 * 设计特点：
 *   - 注册表驱动：类型必须先注册，带单继承的父类型
 *   - 可赋值判断：IsA 沿父链向上查找，PredictionModel IsA Model
 *   - 首个兼容匹配：IndexOf 返回第一个可赋值的位置，算子按声明顺序消费输入
 */

package schema

import (
	"fmt"
	"strings"
	"sync"

	"github.com/favbox/opchain/internal/gslice"
)

// TypeDescriptor 数据类型标签，语义上等价于一个类名。
// 相等性按名称比较，可直接作为 map 键使用。
type TypeDescriptor string

// descriptorRegistry 类型注册表，记录每个类型的父类型。
type descriptorRegistry struct {
	mu      sync.RWMutex
	parents map[TypeDescriptor]TypeDescriptor
}

var registry = &descriptorRegistry{
	parents: make(map[TypeDescriptor]TypeDescriptor),
}

// 内置类型。AnyObject（注册名 IOObject）是所有类型的根。
var (
	AnyObject         = mustRegisterRoot("IOObject")
	ExampleSet        = MustRegister("ExampleSet", AnyObject)
	Model             = MustRegister("Model", AnyObject)
	PredictionModel   = MustRegister("PredictionModel", Model)
	ClusterModel      = MustRegister("ClusterModel", Model)
	PerformanceVector = MustRegister("PerformanceVector", AnyObject)
	AttributeWeights  = MustRegister("AttributeWeights", AnyObject)
	ParameterSet      = MustRegister("ParameterSet", AnyObject)
)

func mustRegisterRoot(name string) TypeDescriptor {
	t := TypeDescriptor(name)
	registry.parents[t] = ""
	return t
}

// Register 注册新类型。parent 为空时挂到 AnyObject 下。
// 重复注册同名类型会返回错误，父类型必须已注册。
func Register(name string, parent TypeDescriptor) (TypeDescriptor, error) {
	if name == "" {
		return "", fmt.Errorf("type descriptor name is empty")
	}
	if parent == "" {
		parent = AnyObject
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	t := TypeDescriptor(name)
	if _, ok := registry.parents[t]; ok {
		return "", fmt.Errorf("type descriptor[%s] already registered", name)
	}
	if _, ok := registry.parents[parent]; !ok {
		return "", fmt.Errorf("parent type descriptor[%s] of [%s] not registered", parent, name)
	}

	registry.parents[t] = parent
	return t, nil
}

// MustRegister 同 Register，失败时 panic，用于包级变量初始化。
func MustRegister(name string, parent TypeDescriptor) TypeDescriptor {
	t, err := Register(name, parent)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup 按名称查找已注册的类型。
func Lookup(name string) (TypeDescriptor, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	t := TypeDescriptor(name)
	if _, ok := registry.parents[t]; !ok {
		return "", fmt.Errorf("unknown type descriptor: %s", name)
	}
	return t, nil
}

// ParseIOList 将名称列表解析为 IOList，任何未注册的名称都会导致错误。
func ParseIOList(names []string) (IOList, error) {
	l := make(IOList, 0, len(names))
	for _, n := range names {
		t, err := Lookup(n)
		if err != nil {
			return nil, err
		}
		l = append(l, t)
	}
	return l, nil
}

// Name 返回类型名称。
func (t TypeDescriptor) Name() string {
	return string(t)
}

// String 实现 fmt.Stringer。
func (t TypeDescriptor) String() string {
	return string(t)
}

// Parent 返回父类型，根类型或未注册类型返回空。
func (t TypeDescriptor) Parent() TypeDescriptor {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.parents[t]
}

// IsA 判断 t 是否可以赋值给 other，即 other 是 t 自身或其祖先。
func (t TypeDescriptor) IsA(other TypeDescriptor) bool {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	for cur := t; cur != ""; cur = registry.parents[cur] {
		if cur == other {
			return true
		}
	}
	return false
}

// IOList 有序的类型列表，允许重复。
type IOList []TypeDescriptor

// NewIOList 创建 IOList。
func NewIOList(ts ...TypeDescriptor) IOList {
	return append(IOList{}, ts...)
}

// IndexOf 返回第一个可赋值给 t 的元素位置，没有返回 -1。
func (l IOList) IndexOf(t TypeDescriptor) int {
	for i, e := range l {
		if e.IsA(t) {
			return i
		}
	}
	return -1
}

// Contains 判断列表中是否存在可赋值给 t 的元素。
func (l IOList) Contains(t TypeDescriptor) bool {
	return l.IndexOf(t) >= 0
}

// Without 返回移除第 i 个元素后的副本，原列表不变。
func (l IOList) Without(i int) IOList {
	r := make(IOList, 0, len(l))
	r = append(r, l[:i]...)
	return append(r, l[i+1:]...)
}

// Clone 返回副本，nil 也返回非 nil 的空列表。
func (l IOList) Clone() IOList {
	return append(IOList{}, l...)
}

// Append 返回追加元素后的副本。
func (l IOList) Append(ts ...TypeDescriptor) IOList {
	r := make(IOList, 0, len(l)+len(ts))
	r = append(r, l...)
	return append(r, ts...)
}

// Equal 按顺序逐个比较。nil 与空列表相等。
func (l IOList) Equal(o IOList) bool {
	if len(l) != len(o) {
		return false
	}
	for i := range l {
		if l[i] != o[i] {
			return false
		}
	}
	return true
}

// Names 返回类型名称列表。
func (l IOList) Names() []string {
	return gslice.Map(l, TypeDescriptor.Name)
}

// String 渲染为 [A, B] 形式。
func (l IOList) String() string {
	return "[" + strings.Join(l.Names(), ", ") + "]"
}
