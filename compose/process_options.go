package compose

import "go.uber.org/zap"

// processOptions 流程配置。
type processOptions struct {
	name      string
	logger    *zap.SugaredLogger
	callbacks []CheckCallback
}

// ProcessOption 流程配置的函数式选项。
//
//	p := compose.NewProcess(root,
//		compose.WithProcessName("golf"),
//		compose.WithLogger(logger.Sugar()))
type ProcessOption func(o *processOptions)

// WithProcessName 设置流程名，默认使用根链名。
func WithProcessName(name string) ProcessOption {
	return func(o *processOptions) {
		o.name = name
	}
}

// WithLogger 设置日志，默认不输出。
func WithLogger(l *zap.SugaredLogger) ProcessOption {
	return func(o *processOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCheckCallbacks 追加检查完成回调。
func WithCheckCallbacks(cbs ...CheckCallback) ProcessOption {
	return func(o *processOptions) {
		o.callbacks = append(o.callbacks, cbs...)
	}
}
