package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/favbox/opchain/schema"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// ErrCheckFailed 检查未通过，报告已经输出。
var ErrCheckFailed = errors.New("check failed")

// newLogger 按配置创建日志，日志写到 stderr，不影响命令输出。
func newLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	if viper.GetBool("dev") {
		cfg = zap.NewDevelopmentConfig()
	}
	if lvl := viper.GetString("log-level"); lvl != "" {
		if l, err := zapcore.ParseLevel(lvl); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(l)
		}
	}

	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

func outputFormat() (string, error) {
	switch f := viper.GetString("format"); f {
	case "", formatText:
		return formatText, nil
	case formatJSON:
		return formatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format '%s', expected text or json", f)
	}
}

func writeJSON(w io.Writer, v any) error {
	b, err := sonic.ConfigDefault.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func loadDataset(path string) (schema.DatasetMeta, error) {
	var meta schema.DatasetMeta
	raw, err := os.ReadFile(path)
	if err != nil {
		return meta, err
	}
	if err = yaml.Unmarshal(raw, &meta); err != nil {
		return meta, fmt.Errorf("%s: %w", path, err)
	}
	return meta, nil
}
