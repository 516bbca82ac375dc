package gmap

import (
	"cmp"
	"slices"
)

// Keys 返回 Map 的全部键，按升序排列，保证输出稳定。
//
//	Keys(map[string]int{"b": 1, "a": 2}) ⏩ []string{"a", "b"}
func Keys[K cmp.Ordered, V any](m map[K]V) []K {
	r := make([]K, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	slices.Sort(r)
	return r
}

// Clone 浅拷贝 Map，nil 返回 nil。
func Clone[K comparable, V any, M ~map[K]V](m M) M {
	if m == nil {
		return nil
	}
	r := make(M, len(m))
	for k, v := range m {
		r[k] = v
	}
	return r
}
