package compose

/*
 * error.go - 检查与执行阶段的错误定义
 *
 * 核心组件：
 *   - IllegalInputError: 某个检查点缺少所需类型
 *   - WrongNumberOfInnerOperatorsError: 子算子个数不满足链的上下界
 *   - OperatorError: 执行阶段的算子错误，携带算子路径
 *   - ErrProcessStopped: 执行被取消
 *
 * 错误分类：
 *   - 配置错误（前两类）总是向上传播，重试不会改变结果
 *   - 运行错误通过 OperatorError 包装原始错误，支持 errors.Is / errors.As
 *
 * 路径追踪：
 *   - 错误每穿过一层链，链名被加到 Path 最前面，最终 Path 从根链开始
 */

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/favbox/opchain/schema"
)

// Unbounded 子算子个数没有上界。
const Unbounded = math.MaxInt

var (
	// ErrIllegalInput 所需类型在检查点不可用。
	ErrIllegalInput = errors.New("illegal input")
	// ErrWrongNumberOfInnerOperators 子算子个数越界。
	ErrWrongNumberOfInnerOperators = errors.New("wrong number of inner operators")
	// ErrProcessStopped 执行在子算子之间被取消。
	ErrProcessStopped = errors.New("process stopped")
	// ErrUnexpectedOutput 算子执行产出的对象与声明的输出类型不符。
	ErrUnexpectedOutput = errors.New("unexpected output")
)

// pathError 可以累积算子路径的错误。
type pathError interface {
	prependPath(name string)
}

// IllegalInputError 所需类型不可用。
type IllegalInputError struct {
	// Chain 报告错误的链，算子自身检查时为空，由外层条件补齐。
	Chain string
	// Operator 出错的算子。
	Operator string
	// Missing 缺失的类型。
	Missing schema.TypeDescriptor
	// Path 从根链到报告错误的链。
	Path []string
}

func (e *IllegalInputError) Error() string {
	sb := strings.Builder{}
	sb.WriteString("illegal input: operator '")
	sb.WriteString(e.Operator)
	sb.WriteString("'")
	if e.Chain != "" && e.Chain != e.Operator {
		sb.WriteString(" in chain '")
		sb.WriteString(e.Chain)
		sb.WriteString("'")
	}
	sb.WriteString(" requires ")
	sb.WriteString(e.Missing.Name())
	sb.WriteString(", which is not available")
	writePath(&sb, e.Path)
	return sb.String()
}

// Is 支持 errors.Is(err, ErrIllegalInput)。
func (e *IllegalInputError) Is(target error) bool {
	return target == ErrIllegalInput
}

func (e *IllegalInputError) prependPath(name string) {
	e.Path = append([]string{name}, e.Path...)
}

// WrongNumberOfInnerOperatorsError 子算子个数越界。
type WrongNumberOfInnerOperatorsError struct {
	Chain    string
	Min, Max int
	Actual   int
	Path     []string
}

func (e *WrongNumberOfInnerOperatorsError) Error() string {
	sb := strings.Builder{}
	switch {
	case e.Max == Unbounded:
		sb.WriteString(fmt.Sprintf("chain '%s' needs at least %d inner operator(s), but has %d", e.Chain, e.Min, e.Actual))
	case e.Min == e.Max:
		sb.WriteString(fmt.Sprintf("chain '%s' needs exactly %d inner operator(s), but has %d", e.Chain, e.Min, e.Actual))
	default:
		sb.WriteString(fmt.Sprintf("chain '%s' needs between %d and %d inner operators, but has %d", e.Chain, e.Min, e.Max, e.Actual))
	}
	writePath(&sb, e.Path)
	return sb.String()
}

// Is 支持 errors.Is(err, ErrWrongNumberOfInnerOperators)。
func (e *WrongNumberOfInnerOperatorsError) Is(target error) bool {
	return target == ErrWrongNumberOfInnerOperators
}

func (e *WrongNumberOfInnerOperatorsError) prependPath(name string) {
	e.Path = append([]string{name}, e.Path...)
}

// OperatorError 执行阶段的算子错误。
type OperatorError struct {
	Path []string
	Err  error
}

func (e *OperatorError) Error() string {
	sb := strings.Builder{}
	sb.WriteString("[OperatorError] ")
	sb.WriteString(e.Err.Error())
	writePath(&sb, e.Path)
	return sb.String()
}

// Unwrap 返回原始错误。
func (e *OperatorError) Unwrap() error {
	return e.Err
}

func (e *OperatorError) prependPath(name string) {
	e.Path = append([]string{name}, e.Path...)
}

func writePath(sb *strings.Builder, path []string) {
	if len(path) == 0 {
		return
	}
	sb.WriteString("; operator path: [")
	sb.WriteString(strings.Join(path, ", "))
	sb.WriteString("]")
}

// wrapOperatorError 为错误追加一层算子路径。
// 已知类型的错误原地累积路径，其他错误包装为 OperatorError。
func wrapOperatorError(name string, err error) error {
	if err == nil {
		return nil
	}

	var pe pathError
	if errors.As(err, &pe) {
		pe.prependPath(name)
		return err
	}

	return &OperatorError{
		Path: []string{name},
		Err:  err,
	}
}

// attachChain 为条件内部产生的 IllegalInputError 补齐所属链。
func attachChain(chain string, err error) error {
	var iie *IllegalInputError
	if errors.As(err, &iie) && iie.Chain == "" {
		iie.Chain = chain
	}
	return err
}

func newStoppedError(cause error) error {
	return fmt.Errorf("%w: %w", ErrProcessStopped, cause)
}

func newUnexpectedOutputErr(idx int, expected, got schema.TypeDescriptor) error {
	return fmt.Errorf("%w: output #%d is %s, declared %s", ErrUnexpectedOutput, idx, got, expected)
}
