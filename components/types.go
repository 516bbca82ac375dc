/*
Package components 定义工作台中算子的种类。
*/
package components

// Component 表示算子的种类，用于展示和分组，不参与类型检查。
type Component string

const (
	// ComponentOfUnknown 未分类的算子。
	ComponentOfUnknown Component = "Unknown"
	// ComponentOfLoader 数据加载算子，从外部来源读取数据集。
	ComponentOfLoader Component = "Loader"
	// ComponentOfPreprocessing 预处理算子，例如归一化、属性过滤。
	ComponentOfPreprocessing Component = "Preprocessing"
	// ComponentOfLearner 学习算子，消费数据集并产出模型。
	ComponentOfLearner Component = "Learner"
	// ComponentOfEvaluator 评估算子，产出性能向量。
	ComponentOfEvaluator Component = "Evaluator"
	// ComponentOfVisualizer 可视化算子。
	ComponentOfVisualizer Component = "Visualizer"
	// ComponentOfChain 算子链，包含有序的子算子。
	ComponentOfChain Component = "Chain"
)

// ParseComponent 解析种类名，空串视为 Unknown。
func ParseComponent(s string) (Component, bool) {
	switch c := Component(s); c {
	case "":
		return ComponentOfUnknown, true
	case ComponentOfUnknown, ComponentOfLoader, ComponentOfPreprocessing, ComponentOfLearner,
		ComponentOfEvaluator, ComponentOfVisualizer, ComponentOfChain:
		return c, true
	default:
		return "", false
	}
}
