package generic

// PtrOf 返回传入值 v 的指针。
// 常用于可选配置字段，例如定义文件中的 enabled。
//
//	def := OperatorDef{Enabled: PtrOf(false)}
func PtrOf[T any](v T) *T {
	return &v
}

// Pair 表示一个包含两个值的键值对。
type Pair[F, S any] struct {
	First  F
	Second S
}
