/*
 * ioobject.go - 执行阶段在算子间传递的数据对象
 *
 * 核心组件：
 *   - IOObject: 携带类型标签的数据对象
 *   - IOContainer: 有序的数据容器，按类型取出（消费）对象
 *
 * 与检查阶段的关系：
 *   - IOContainer.Descriptors() 返回当前可用类型，可直接交给 CheckIO
 *   - Remove 与 IOList.IndexOf 使用相同的首个兼容匹配规则
 */

package schema

import "fmt"

// IOObject 在算子之间传递的数据对象。
type IOObject interface {
	Descriptor() TypeDescriptor
}

// IOContainer 有序的数据对象容器。
type IOContainer struct {
	objects []IOObject
}

// NewIOContainer 创建容器。
func NewIOContainer(objs ...IOObject) *IOContainer {
	return &IOContainer{objects: append([]IOObject{}, objs...)}
}

// Remove 取出第一个类型可赋值给 t 的对象。
func (c *IOContainer) Remove(t TypeDescriptor) (IOObject, error) {
	for i, o := range c.objects {
		if o.Descriptor().IsA(t) {
			c.objects = append(c.objects[:i:i], c.objects[i+1:]...)
			return o, nil
		}
	}
	return nil, fmt.Errorf("no object of type %s in container %s", t, c.Descriptors())
}

// Append 追加对象。
func (c *IOContainer) Append(objs ...IOObject) {
	c.objects = append(c.objects, objs...)
}

// Len 对象个数。
func (c *IOContainer) Len() int {
	return len(c.objects)
}

// Objects 返回对象列表的副本。
func (c *IOContainer) Objects() []IOObject {
	return append([]IOObject{}, c.objects...)
}

// Descriptors 返回当前对象的类型列表。
func (c *IOContainer) Descriptors() IOList {
	l := make(IOList, 0, len(c.objects))
	for _, o := range c.objects {
		l = append(l, o.Descriptor())
	}
	return l
}

// ExampleSetObject 数据集对象，执行时只携带类型信息。
type ExampleSetObject struct {
	Name string
	Meta DatasetMeta
}

// Descriptor 实现 IOObject。
func (e *ExampleSetObject) Descriptor() TypeDescriptor {
	return ExampleSet
}

// ModelObject 训练产出的模型对象，Kind 为 Model 或其子类型。
type ModelObject struct {
	Kind TypeDescriptor
	Name string
}

// Descriptor 实现 IOObject，Kind 为空时视为 Model。
func (m *ModelObject) Descriptor() TypeDescriptor {
	if m.Kind == "" {
		return Model
	}
	return m.Kind
}

// PerformanceObject 评估结果对象。
type PerformanceObject struct {
	Values map[string]float64
}

// Descriptor 实现 IOObject。
func (p *PerformanceObject) Descriptor() TypeDescriptor {
	return PerformanceVector
}
