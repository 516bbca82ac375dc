/*
 * check.go - 学习器能力检查
 *
 * 按固定顺序检查数据集对学习器的要求：
 *   1. 名义型属性：全部二值时要求 BINOMINAL_ATTRIBUTES，否则 POLYNOMINAL_ATTRIBUTES
 *   2. 数值型属性：要求 NUMERICAL_ATTRIBUTES
 *   3. 标签：二值名义型 BINOMINAL_CLASS，多值名义型 POLYNOMINAL_CLASS，数值型 NUMERICAL_CLASS
 *   4. 开启权重检查且数据集带权重：WEIGHTED_EXAMPLES
 *
 * 每一项独立检查，结果收集在 Report 中；调用方决定返回第一个错误还是只记录警告。
 */

package learner

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/favbox/opchain/internal/generic"
	"github.com/favbox/opchain/schema"
)

// CodeUnsupportedCapability 缺少能力时的错误码。
const CodeUnsupportedCapability = 501

// ErrCapabilityMissing 学习器缺少数据集要求的能力。
var ErrCapabilityMissing = errors.New("learner capability missing")

// CapabilityError 学习器缺少某项能力。
type CapabilityError struct {
	Learner    string
	Capability Capability
	Code       int
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("[%d] learner '%s' does not support %s", e.Code, e.Learner, e.Capability.Description())
}

// Is 支持 errors.Is(err, ErrCapabilityMissing)。
func (e *CapabilityError) Is(target error) bool {
	return target == ErrCapabilityMissing
}

// Report 一次能力检查的结果，按检查顺序记录缺失的能力。
type Report struct {
	Learner  string
	Required []Capability
	missing  []*CapabilityError
}

// OK 没有缺失的能力。
func (r *Report) OK() bool {
	return len(r.missing) == 0
}

// Err 返回第一个缺失能力的错误，全部满足时返回 nil。
func (r *Report) Err() error {
	if len(r.missing) == 0 {
		return nil
	}
	return r.missing[0]
}

// Missing 返回全部缺失能力的错误。
func (r *Report) Missing() []*CapabilityError {
	return append([]*CapabilityError{}, r.missing...)
}

func (r *Report) require(l Learner, c Capability) {
	r.Required = append(r.Required, c)
	if l.SupportsCapability(c) {
		return
	}
	r.missing = append(r.missing, &CapabilityError{
		Learner:    r.Learner,
		Capability: c,
		Code:       CodeUnsupportedCapability,
	})
}

// CapabilityCheck 学习器能力检查器，创建后只读，可并发使用。
type CapabilityCheck struct {
	opts *options
}

// NewCapabilityCheck 创建检查器。
func NewCapabilityCheck(opts ...Option) *CapabilityCheck {
	o := &options{logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(o)
	}
	return &CapabilityCheck{opts: o}
}

// OnlyWarn 是否只警告。
func (c *CapabilityCheck) OnlyWarn() bool {
	return c.opts.onlyWarn
}

// Evaluate 对数据集逐项检查学习器能力，学习器名取其类型名。
func (c *CapabilityCheck) Evaluate(l Learner, meta schema.DatasetMeta) *Report {
	return c.evaluate(generic.NameOf(l), l, meta)
}

func (c *CapabilityCheck) evaluate(name string, l Learner, meta schema.DatasetMeta) *Report {
	r := &Report{Learner: name}

	if meta.HasNominalAttributes() {
		if meta.AllNominalBinary() {
			r.require(l, BinominalAttributes)
		} else {
			r.require(l, PolynominalAttributes)
		}
	}

	if meta.HasNumericalAttributes() {
		r.require(l, NumericalAttributes)
	}

	if label := meta.Label; label != nil {
		switch {
		case label.IsBinominal():
			r.require(l, BinominalClass)
		case label.IsNominal():
			r.require(l, PolynominalClass)
		case label.IsNumerical():
			r.require(l, NumericalClass)
		}
	}

	if c.opts.weightCheck && meta.Weighted {
		r.require(l, WeightedExamples)
	}

	return r
}

// Check 检查学习器能力。
// 只警告模式下每个缺失的能力记录一条警告并返回 nil，否则返回第一个缺失能力的错误。
func (c *CapabilityCheck) Check(name string, l Learner, meta schema.DatasetMeta) error {
	if name == "" {
		name = generic.NameOf(l)
	}

	r := c.evaluate(name, l, meta)
	if r.OK() {
		return nil
	}

	if !c.opts.onlyWarn {
		return r.Err()
	}

	for _, e := range r.missing {
		c.opts.logger.Warnw("learner capability missing, continuing",
			"learner", e.Learner,
			"capability", e.Capability.String(),
			"code", e.Code,
			"error", e.Error())
	}
	return nil
}
