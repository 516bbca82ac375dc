package generic

import (
	"reflect"
	"regexp"
	"runtime"
	"strings"
)

var (
	regOfAnonymousFunc = regexp.MustCompile(`^func[0-9]+`)
	regOfNumber        = regexp.MustCompile(`^\d+$`)
)

// NameOf 返回任意值的短类型名，nil 返回空串。
// 学习器、算子等没有显式名称时，用它生成错误信息里的标识。
//
// 示例:
//
//	NameOf(&svmLearner{})   // "svmLearner"
//	NameOf(NameOf)          // "NameOf"
//	NameOf(func() {})       // ""
func NameOf(v any) string {
	if v == nil {
		return ""
	}
	return ParseTypeName(reflect.ValueOf(v))
}

// ParseTypeName 返回值的类型名称。
// 指针会被逐层解引用；函数类型返回函数名，匿名函数返回空串。
func ParseTypeName(val reflect.Value) string {
	typ := val.Type()
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	if typ.Kind() != reflect.Func {
		return typ.Name()
	}

	funcName := runtime.FuncForPC(val.Pointer()).Name()
	idx := strings.LastIndex(funcName, ".")
	if idx < 0 {
		return funcName
	}

	name := funcName[idx+1:]
	if regOfAnonymousFunc.MatchString(name) || regOfNumber.MatchString(name) {
		return ""
	}
	return name
}
