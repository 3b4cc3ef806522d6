package insights

import "sort"

// Engine runs all registered detectors against an Input and collects the
// resulting insights.
type Engine struct {
	detectors []Detector
}

// NewEngine creates an engine with all built-in detectors registered.
func NewEngine() *Engine {
	return &Engine{
		detectors: []Detector{
			NavigationAnomaly,
			UnusedFeatures,
			WorkflowShortcut,
			KeyboardProductivity,
		},
	}
}

// Register appends a detector to the registry.
func (e *Engine) Register(d Detector) {
	e.detectors = append(e.detectors, d)
}

// Run executes every detector and returns the insights deduplicated by id,
// ordered by kind (warnings first, stable within a kind) and capped at
// in.Params.MaxInsights. Unset params take their stock values.
func (e *Engine) Run(in *Input) []Insight {
	run := *in
	run.Params = in.Params.WithDefaults()

	seen := make(map[string]bool)
	var all []Insight
	for _, d := range e.detectors {
		for _, ins := range d(&run) {
			if seen[ins.ID] {
				continue
			}
			seen[ins.ID] = true
			all = append(all, ins)
		}
	}
	return RankInsights(all, run.Params.MaxInsights)
}

// RankInsights sorts insights by kind severity, keeping detector order
// within a kind, and truncates to limit when limit is positive.
func RankInsights(insights []Insight, limit int) []Insight {
	sorted := make([]Insight, len(insights))
	copy(sorted, insights)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Kind.severity() < sorted[j].Kind.severity()
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
