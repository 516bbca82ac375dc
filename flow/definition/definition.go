/*
 * definition.go - 保存在 YAML 中的流程定义
 *
 * 文档结构：
 *
 *	name: golf
 *	input: [ExampleSet]
 *	root:
 *	  name: root
 *	  children:
 *	    - {name: normalize, consumes: [ExampleSet], produces: [ExampleSet]}
 *	    - name: tree
 *	      capabilities: [NUMERICAL_ATTRIBUTES, BINOMINAL_CLASS]
 *
 * 算子种类的推断：
 *   - type 显式给出时以它为准（operator / chain / learner）
 *   - 有 condition 或 children 的是链
 *   - 有 capabilities 的是学习算子
 *   - 其余为普通算子
 */

package definition

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/favbox/opchain/components/learner"
	"github.com/favbox/opchain/internal/generic"
	"github.com/favbox/opchain/schema"
)

// 算子种类。
const (
	KindOperator = "operator"
	KindChain    = "chain"
	KindLearner  = "learner"
)

// Definition 流程定义。
type Definition struct {
	Name  string       `yaml:"name"`
	Input []string     `yaml:"input,omitempty"`
	Root  *OperatorDef `yaml:"root"`
}

// OperatorDef 算子或链的定义。
type OperatorDef struct {
	Name      string   `yaml:"name"`
	Type      string   `yaml:"type,omitempty"`
	Enabled   *bool    `yaml:"enabled,omitempty"`
	Component string   `yaml:"component,omitempty"`
	Consumes  []string `yaml:"consumes,omitempty"`
	Produces  []string `yaml:"produces,omitempty"`
	KeepInput bool     `yaml:"keep_input,omitempty"`

	// Capabilities 学习算子声明的能力 token。
	Capabilities []string `yaml:"capabilities,omitempty"`

	// 以下字段只对链有效
	Min       int            `yaml:"min,omitempty"`
	Max       *int           `yaml:"max,omitempty"`
	Condition *ConditionDef  `yaml:"condition,omitempty"`
	Children  []*OperatorDef `yaml:"children,omitempty"`
}

// ConditionDef 内部条件的定义。
type ConditionDef struct {
	Type        string          `yaml:"type"`
	WillGet     []string        `yaml:"will_get,omitempty"`
	MustDeliver []string        `yaml:"must_deliver,omitempty"`
	Conditions  []*ConditionDef `yaml:"conditions,omitempty"`
	Index       int             `yaml:"index,omitempty"`
	Name        string          `yaml:"name,omitempty"`
}

// Load 从 r 读取定义，拒绝未知字段。
func Load(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	def := &Definition{}
	if err := dec.Decode(def); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty process definition")
		}
		return nil, fmt.Errorf("decode process definition: %w", err)
	}
	if def.Root == nil {
		return nil, fmt.Errorf("process definition '%s' has no root", def.Name)
	}
	return def, nil
}

// LoadFile 从文件读取定义。
func LoadFile(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	def, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// InputList 解析初始可用类型。
func (d *Definition) InputList() (schema.IOList, error) {
	return schema.ParseIOList(d.Input)
}

// Learners 深度优先返回全部学习算子定义。
func (d *Definition) Learners() []*OperatorDef {
	var defs []*OperatorDef
	d.Root.walk(func(op *OperatorDef) {
		defs = append(defs, op)
	})
	return filterLearners(defs)
}

// Disable 按名称禁用算子定义，同名的都会被禁用。
// 用于在不改动文件的情况下检查去掉某些算子后的流程。
func (d *Definition) Disable(names ...string) error {
	for _, name := range names {
		found := false
		d.Root.walk(func(op *OperatorDef) {
			if op.Name == name {
				op.Enabled = generic.PtrOf(false)
				found = true
			}
		})
		if !found {
			return fmt.Errorf("operator '%s' not found in process '%s'", name, d.Name)
		}
	}
	return nil
}

func (o *OperatorDef) walk(fn func(op *OperatorDef)) {
	if o == nil {
		return
	}
	fn(o)
	for _, c := range o.Children {
		c.walk(fn)
	}
}

// Kind 返回算子种类，未显式给出时按字段推断。
func (o *OperatorDef) Kind() string {
	switch {
	case o.Type != "":
		return o.Type
	case o.Condition != nil || len(o.Children) > 0:
		return KindChain
	case o.Capabilities != nil:
		return KindLearner
	default:
		return KindOperator
	}
}

// IsEnabled enabled 缺省为 true。
func (o *OperatorDef) IsEnabled() bool {
	return o.Enabled == nil || *o.Enabled
}

// CapabilitySet 解析学习算子声明的能力。
func (o *OperatorDef) CapabilitySet() (learner.CapabilitySet, error) {
	caps := make([]learner.Capability, 0, len(o.Capabilities))
	for _, token := range o.Capabilities {
		c, err := learner.ParseCapability(token)
		if err != nil {
			return nil, err
		}
		caps = append(caps, c)
	}
	return learner.NewCapabilitySet(caps...), nil
}
