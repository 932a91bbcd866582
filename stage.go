package rollcall

// Stage is one step of a pipeline run. Stages run in declaration order.
type Stage int

// Pipeline stages.
const (
	StageLoad Stage = iota
	StageResolveColumns
	StageClassifyExceptions
	StageReportExceptions
	StageCollectSelections
	StageFilter
	StageDeduplicate
	StageBuildContactMap
	StageResolveContacts
	StageReportUnresolved
	StageHandoff
)

var stageNames = [...]string{
	StageLoad:               "load",
	StageResolveColumns:     "resolve_columns",
	StageClassifyExceptions: "classify_exceptions",
	StageReportExceptions:   "report_exceptions",
	StageCollectSelections:  "collect_selections",
	StageFilter:             "filter",
	StageDeduplicate:        "deduplicate",
	StageBuildContactMap:    "build_contact_map",
	StageResolveContacts:    "resolve_contacts",
	StageReportUnresolved:   "report_unresolved",
	StageHandoff:            "handoff",
}

// String returns the snake_case stage name.
func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// Stages returns every stage in run order.
func Stages() []Stage {
	out := make([]Stage, len(stageNames))
	for i := range out {
		out[i] = Stage(i)
	}
	return out
}

// needsContacts reports whether the stage reads the contacts table.
func (s Stage) needsContacts() bool {
	return s >= StageBuildContactMap
}
