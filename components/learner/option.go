package learner

import "go.uber.org/zap"

// options 能力检查配置。
type options struct {
	onlyWarn    bool
	weightCheck bool
	logger      *zap.SugaredLogger
}

// Option 能力检查的函数式选项。
type Option func(o *options)

// WithOnlyWarn 缺少能力时只记录警告，不返回错误。
func WithOnlyWarn(onlyWarn bool) Option {
	return func(o *options) {
		o.onlyWarn = onlyWarn
	}
}

// WithWeightCheck 数据集带权重时要求 WeightedExamples。
func WithWeightCheck(enabled bool) Option {
	return func(o *options) {
		o.weightCheck = enabled
	}
}

// WithLogger 设置警告日志，默认不输出。
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
