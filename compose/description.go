package compose

import (
	"strings"
	"sync"

	"github.com/nikolalohinski/gonja"
	"github.com/nikolalohinski/gonja/config"
	"github.com/nikolalohinski/gonja/exec"
	"github.com/slongfield/pyfmt"
)

// 单个条件的描述模板，由 pyfmt 渲染。
const (
	simpleChainDescription   = "Each enabled inner operator must be able to handle the output of its predecessor."
	allInnerDescription      = "All inner operators must be able to handle {will_get} and must deliver {must_deliver}."
	lastInnerDescription     = "The inner operators must be able to handle {will_get} in sequence and the last one must deliver {must_deliver}."
	specificInnerDescription = "Inner operator #{index} ({name}) must be able to handle {will_get} and must deliver {must_deliver}."
)

// descriptionListTemplate 组合条件的描述列表，由 gonja 渲染。
const descriptionListTemplate = `<ol>{% for d in descriptions %}<li>{{ d }}</li>{% endfor %}</ol>`

// formatDescription 渲染描述模板，失败时返回模板原文。
func formatDescription(tpl string, vs map[string]any) string {
	s, err := pyfmt.Fmt(tpl, vs)
	if err != nil {
		return tpl
	}
	return s
}

var (
	listTplOnce sync.Once
	listTpl     *exec.Template
	listTplErr  error
)

func getDescriptionListTemplate() (*exec.Template, error) {
	listTplOnce.Do(func() {
		env := gonja.NewEnvironment(config.DefaultConfig, gonja.DefaultLoader)
		listTpl, listTplErr = env.FromString(descriptionListTemplate)
	})
	return listTpl, listTplErr
}

// renderDescriptionList 把描述片段渲染为 HTML 有序列表。
// 模板不可用时退化为分号连接的纯文本。
func renderDescriptionList(descs []string) string {
	tpl, err := getDescriptionListTemplate()
	if err == nil {
		var out string
		out, err = tpl.Execute(map[string]any{"descriptions": descs})
		if err == nil {
			return out
		}
	}
	return strings.Join(descs, "; ")
}
