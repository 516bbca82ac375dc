package schema

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// MarshalJSON 以名称字符串编码类型。
func (t TypeDescriptor) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(string(t))
}

// UnmarshalJSON 解码并校验类型已注册。
func (t *TypeDescriptor) UnmarshalJSON(data []byte) error {
	var name string
	if err := sonic.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("decode type descriptor: %w", err)
	}
	d, err := Lookup(name)
	if err != nil {
		return err
	}
	*t = d
	return nil
}

// MarshalIOList 将 IOList 编码为 JSON 字符串数组。
func MarshalIOList(l IOList) ([]byte, error) {
	return sonic.Marshal(l.Names())
}

// UnmarshalIOList 解码 JSON 字符串数组，所有名称必须已注册。
func UnmarshalIOList(data []byte) (IOList, error) {
	var names []string
	if err := sonic.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("decode io list: %w", err)
	}
	return ParseIOList(names)
}
