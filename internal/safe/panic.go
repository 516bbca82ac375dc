package safe

import (
	"errors"
	"fmt"
)

// panicErr 包装 panic 信息和堆栈跟踪的错误类型。
type panicErr struct {
	info  any
	stack []byte
}

func (p *panicErr) Error() string {
	return fmt.Sprintf("panic error: %v, \nstack: %s", p.info, string(p.stack))
}

// NewPanicErr 创建新的 panic 错误。
// 算子执行体中的 panic 会被恢复并转换成该错误，沿算子路径向上返回。
func NewPanicErr(info any, stack []byte) error {
	return &panicErr{
		info:  info,
		stack: stack,
	}
}

// IsPanicErr 判断 err 的错误链中是否有 NewPanicErr 创建的错误。
func IsPanicErr(err error) bool {
	var pe *panicErr
	return errors.As(err, &pe)
}
