package scoring

// EventType names the points in the pipeline where the engine reports
// what it did.
type EventType string

const (
	EventFilterApplied EventType = "filter_applied"
	EventRuleFired     EventType = "rule_fired"
	EventRuleSkipped   EventType = "rule_skipped"
	EventRanked        EventType = "ranked"
)

// Event is one structured observation from a scoring pass.
type Event struct {
	Type      EventType
	ProductID string
	Rule      string
	Points    float64
	Eligible  int
	Total     int
	Fallback  bool
}

// Observer receives engine events. It replaces an ambient debug flag:
// callers that want insight inject one, everyone else pays nothing.
type Observer func(Event)

func (e *Engine) emit(ev Event) {
	if e.observer != nil {
		e.observer(ev)
	}
}
