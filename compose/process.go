/*
 * process.go - 流程：根链 + 检查 + 执行
 *
 * 使用流程：
 *   1. 构建根链：NewOperatorChain("root", nil, WithChildren(...))
 *   2. 创建流程：NewProcess(root, WithProcessName(...))
 *   3. 检查：report, err := p.Check(ctx, schema.NewIOList(schema.ExampleSet))
 *   4. 执行：out, err := p.Run(ctx, schema.NewIOContainer(exampleSet))
 *
 * Run 总是先检查，检查失败的流程不会执行任何算子。
 */

package compose

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/favbox/opchain/schema"
)

// Process 一个可检查、可执行的算子流程。
type Process struct {
	name      string
	root      *OperatorChain
	logger    *zap.SugaredLogger
	callbacks []CheckCallback
}

// NewProcess 创建流程。
func NewProcess(root *OperatorChain, opts ...ProcessOption) *Process {
	o := &processOptions{logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(o)
	}
	if o.name == "" && root != nil {
		o.name = root.Name()
	}

	return &Process{
		name:      o.name,
		root:      root,
		logger:    o.logger,
		callbacks: o.callbacks,
	}
}

// Name 流程名。
func (p *Process) Name() string {
	return p.name
}

// Root 根链。
func (p *Process) Root() *OperatorChain {
	return p.root
}

// Check 以 input 为初始可用类型检查整个流程。
// 无论成功与否都返回报告；检查失败时同时返回错误。
func (p *Process) Check(ctx context.Context, input schema.IOList) (*CheckReport, error) {
	if p.root == nil {
		return nil, errors.New("process has no root chain")
	}

	output, err := p.root.CheckIO(input)
	info := &CheckInfo{
		ProcessName: p.name,
		Input:       input.Clone(),
		Output:      output,
		Err:         err,
		Root:        Describe(p.root),
	}

	for _, cb := range p.callbacks {
		cb.OnFinish(ctx, info)
	}

	if err != nil {
		p.logger.Debugw("process check failed", "process", p.name, "input", input.String(), "error", err)
	} else {
		p.logger.Debugw("process check passed", "process", p.name, "input", input.String(), "output", output.String())
	}

	return newCheckReport(info), err
}

// Run 检查并执行流程。每次执行分配一个 run id 记录在日志中。
func (p *Process) Run(ctx context.Context, in *schema.IOContainer) (*schema.IOContainer, error) {
	if _, err := p.Check(ctx, in.Descriptors()); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := p.logger.With("process", p.name, "run_id", runID)
	log.Infow("process started", "input", in.Descriptors().String())

	out, err := p.root.Execute(ctx, in)
	if err != nil {
		if errors.Is(err, ErrProcessStopped) {
			log.Warnw("process stopped", "error", err)
		} else {
			log.Errorw("process failed", "error", err)
		}
		return nil, err
	}

	log.Infow("process finished", "output", out.Descriptors().String())
	return out, nil
}
