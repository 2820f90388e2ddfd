package reasoning

import (
	"math"

	"github.com/arjunsehgal/vitalis/internal/domain"
)

// ToolRegistry selects the most informative analysis tool for the current
// state: among tools that have not run this session, the one whose target
// category is most uncertain (confidence closest to 0.5). Returns nil when
// every tool has run or no hypothesis would benefit, which ends the loop.
type ToolRegistry struct {
	tools []domain.AnalysisTool
}

func NewToolRegistry(tools ...domain.AnalysisTool) *ToolRegistry {
	return &ToolRegistry{tools: tools}
}

func (r *ToolRegistry) Register(tool domain.AnalysisTool) {
	r.tools = append(r.tools, tool)
}

func (r *ToolRegistry) SelectTool(state *domain.AgentState) domain.AnalysisTool {
	var best domain.AnalysisTool
	bestUncertainty := -1.0

	for _, tool := range r.tools {
		if state.HasObservationFrom(tool.Name()) {
			continue
		}
		conf, ok := confidenceFor(state, tool.TargetDebtType())
		if !ok {
			continue
		}
		uncertainty := 1.0 - math.Abs(conf-0.5)*2.0
		if uncertainty > bestUncertainty {
			bestUncertainty = uncertainty
			best = tool
		}
	}
	return best
}

func confidenceFor(state *domain.AgentState, debt domain.DebtType) (float64, bool) {
	for _, h := range state.Hypotheses {
		if h.DebtType == debt {
			return h.Confidence, true
		}
	}
	return 0, false
}
