package compose

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/favbox/opchain/schema"
)

// CheckReport 一次检查的可序列化报告。
type CheckReport struct {
	Process string        `json:"process"`
	OK      bool          `json:"ok"`
	Input   schema.IOList `json:"input"`
	Output  schema.IOList `json:"output,omitempty"`
	Error   string        `json:"error,omitempty"`
	Root    *OperatorInfo `json:"root"`
}

func newCheckReport(info *CheckInfo) *CheckReport {
	r := &CheckReport{
		Process: info.ProcessName,
		OK:      info.Err == nil,
		Input:   info.Input,
		Output:  info.Output,
		Root:    info.Root,
	}
	if info.Err != nil {
		r.Error = info.Err.Error()
	}
	return r
}

// JSON 以缩进格式序列化报告。
func (r *CheckReport) JSON() ([]byte, error) {
	return sonic.ConfigDefault.MarshalIndent(r, "", "  ")
}

// Text 渲染为便于终端阅读的文本。
func (r *CheckReport) Text() string {
	sb := strings.Builder{}

	status := "OK"
	if !r.OK {
		status = "FAILED"
	}
	sb.WriteString(fmt.Sprintf("process '%s': %s\n", r.Process, status))
	sb.WriteString(fmt.Sprintf("input:  %s\n", r.Input))
	if r.OK {
		sb.WriteString(fmt.Sprintf("output: %s\n", r.Output))
	} else {
		sb.WriteString(fmt.Sprintf("error:  %s\n", r.Error))
	}

	if r.Root == nil {
		return sb.String()
	}

	sb.WriteString("operators:\n")
	r.Root.Walk(func(info *OperatorInfo, depth int) {
		sb.WriteString(strings.Repeat("  ", depth+1))
		sb.WriteString(info.Name)
		sb.WriteString(fmt.Sprintf(" (%s)", info.Component))
		if !info.Enabled {
			sb.WriteString(" [disabled]")
		}
		sb.WriteString(fmt.Sprintf(" %s -> %s\n", info.Contract.Consumes, info.Contract.Produces))
	})
	return sb.String()
}
