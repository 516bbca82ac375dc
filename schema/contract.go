package schema

import (
	"github.com/eino-contrib/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	contractKeyInputs  = "inputs"
	contractKeyOutputs = "outputs"
)

// IOContract 算子的输入输出契约：按声明顺序消费 Consumes，产出 Produces。
type IOContract struct {
	Consumes IOList `json:"consumes"`
	Produces IOList `json:"produces"`
}

// ToJSONSchema 将契约转换为 JSON Schema，供外部界面或文档工具展示。
//
// 生成的结构为一个 object，inputs / outputs 两个数组属性按声明顺序出现，
// 数组元素用 enum 列出类型名；有输入时 inputs 为必填。
func (c *IOContract) ToJSONSchema(title string) *jsonschema.Schema {
	sc := &jsonschema.Schema{
		Title:      title,
		Type:       "object",
		Properties: orderedmap.New[string, *jsonschema.Schema](),
		Required:   make([]string, 0, 1),
	}

	sc.Properties.Set(contractKeyInputs, ioListToJSONSchema("consumed data in declaration order", c.Consumes))
	sc.Properties.Set(contractKeyOutputs, ioListToJSONSchema("produced data in declaration order", c.Produces))

	if len(c.Consumes) > 0 {
		sc.Required = append(sc.Required, contractKeyInputs)
	}

	return sc
}

func ioListToJSONSchema(desc string, l IOList) *jsonschema.Schema {
	items := &jsonschema.Schema{Type: "string"}
	if len(l) > 0 {
		items.Enum = make([]any, len(l))
		for i, t := range l {
			items.Enum[i] = t.Name()
		}
	}

	return &jsonschema.Schema{
		Type:        "array",
		Description: desc,
		Items:       items,
	}
}
