// Package gslice 提供基于泛型的切片工具函数。
package gslice

// ToMap 将切片按 mapper 转换为 Map，键冲突时后者覆盖前者。
//
//	ToMap([]Foo{{1, "one"}}, func(f Foo) (int, string) { return f.ID, f.Name }) ⏩ map[int]string{1: "one"}
func ToMap[T any, K comparable, V any](s []T, mapper func(T) (K, V)) map[K]V {
	m := make(map[K]V, len(s))
	for _, e := range s {
		k, v := mapper(e)
		m[k] = v
	}
	return m
}

// Map 对每个元素应用 f，返回新切片。nil 输入返回空切片。
func Map[T, R any](s []T, f func(T) R) []R {
	r := make([]R, 0, len(s))
	for _, e := range s {
		r = append(r, f(e))
	}
	return r
}

// Filter 返回满足 pred 的元素，保持原顺序。
func Filter[S ~[]T, T any](s S, pred func(T) bool) S {
	r := make(S, 0, len(s))
	for _, e := range s {
		if pred(e) {
			r = append(r, e)
		}
	}
	return r
}
