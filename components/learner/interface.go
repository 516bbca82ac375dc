package learner

//go:generate  mockgen -destination ../../internal/mock/components/learner/Learner_mock.go --package learner -source interface.go

// Learner 学习器的能力查询接口。
// 能力检查只依赖它，不关心学习器如何训练。
type Learner interface {
	SupportsCapability(c Capability) bool
}

// CapabilitySet 基于集合的 Learner 实现。
type CapabilitySet map[Capability]struct{}

// NewCapabilitySet 创建能力集合。
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

// SupportsCapability 实现 Learner。
func (s CapabilitySet) SupportsCapability(c Capability) bool {
	_, ok := s[c]
	return ok
}

// List 按固定顺序返回集合中的能力。
func (s CapabilitySet) List() []Capability {
	caps := make([]Capability, 0, len(s))
	for _, c := range allCapabilities {
		if s.SupportsCapability(c) {
			caps = append(caps, c)
		}
	}
	return caps
}
