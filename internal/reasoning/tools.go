package reasoning

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/arjunsehgal/vitalis/internal/domain"
)

const (
	digitalFrictionToolName = "digital_friction"

	// A passive event starting within this span after a glucose crash is an
	// effect of prior fatigue, not an independent cause.
	reactiveSpan = 30 * time.Minute

	digitalToolConfidence   = 0.8
	reactiveMetabolicCredit = 0.15
)

// DigitalFrictionTool splits passive screen minutes into genuine versus
// reactive use. Reactive scrolling right after a glucose crash gets its
// causal credit reassigned to the metabolic category.
type DigitalFrictionTool struct{}

func NewDigitalFrictionTool() *DigitalFrictionTool {
	return &DigitalFrictionTool{}
}

func (t *DigitalFrictionTool) Name() string { return digitalFrictionToolName }

func (t *DigitalFrictionTool) TargetDebtType() domain.DebtType { return domain.DebtDigital }

func (t *DigitalFrictionTool) Analyze(ctx context.Context, hypotheses []*domain.Hypothesis, store domain.HealthStore, window domain.Window) (domain.ToolObservation, error) {
	behaviors, err := store.QueryBehaviors(ctx, window.From, window.To)
	if err != nil {
		return domain.ToolObservation{}, fmt.Errorf("query behaviors: %w", err)
	}
	readings, err := store.QueryGlucose(ctx, window.From, window.To)
	if err != nil {
		return domain.ToolObservation{}, fmt.Errorf("query glucose: %w", err)
	}

	crash := domain.DetectGlucoseCrash(readings)

	var genuineMinutes, reactiveMinutes float64
	for _, b := range behaviors {
		if !b.Kind.Passive() {
			continue
		}
		if crash != nil && isReactive(b.StartedAt, crash.DetectedAt) {
			reactiveMinutes += b.DurationMinutes
		} else {
			genuineMinutes += b.DurationMinutes
		}
	}

	total := genuineMinutes + reactiveMinutes
	evidence := map[domain.DebtType]float64{domain.DebtDigital: 0}
	detail := "no passive screen use in window"
	if total > 0 {
		score := math.Min(genuineMinutes/60.0, 1.0) * (genuineMinutes / total)
		evidence[domain.DebtDigital] = score
		detail = fmt.Sprintf("%.0f genuine / %.0f reactive passive minutes", genuineMinutes, reactiveMinutes)
	}
	if reactiveMinutes > genuineMinutes {
		// Reassigning causal credit, not scoring our own category.
		evidence[domain.DebtMetabolic] = reactiveMetabolicCredit
	}

	return domain.ToolObservation{
		ToolName:   t.Name(),
		Evidence:   evidence,
		Confidence: digitalToolConfidence,
		Detail:     detail,
	}, nil
}

// isReactive reports whether a passive event starting at start falls in the
// 0–30 minute shadow of a crash.
func isReactive(start, crashAt time.Time) bool {
	offset := start.Sub(crashAt)
	return offset >= 0 && offset <= reactiveSpan
}
