package rollcall

import (
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/rollcall/pkg/contacts"
	"github.com/agentstation/rollcall/pkg/reconcile"
	"github.com/agentstation/rollcall/pkg/roster"
)

// Result holds what a run produced. Fields of stages that did not run are
// left zero.
type Result struct {
	RunID      string   `json:"run_id" yaml:"run_id"`
	StartedAt  utc.Time `json:"started_at" yaml:"started_at"`
	FinishedAt utc.Time `json:"finished_at" yaml:"finished_at"`

	// Completed lists the stages that finished, in order.
	Completed []Stage `json:"-" yaml:"-"`

	RosterRows   int                   `json:"roster_rows" yaml:"roster_rows"`
	ContactRows  int                   `json:"contact_rows" yaml:"contact_rows"`
	Exceptions   []reconcile.Exception `json:"exceptions" yaml:"exceptions"`
	Selection    reconcile.Selection   `json:"selection" yaml:"selection"`
	FilteredRows int                   `json:"filtered_rows" yaml:"filtered_rows"`
	Members      []reconcile.Member    `json:"members" yaml:"members"`
	Resolution   contacts.Resolution   `json:"resolution" yaml:"resolution"`
	Delivery     *Delivery             `json:"delivery,omitempty" yaml:"delivery,omitempty"`

	RosterBinding  roster.Binding `json:"-" yaml:"-"`
	ContactBinding roster.Binding `json:"-" yaml:"-"`

	elapsed time.Duration
}

// Elapsed returns the wall time of the run.
func (r *Result) Elapsed() time.Duration {
	return r.elapsed
}

// Ran reports whether the stage completed.
func (r *Result) Ran(stage Stage) bool {
	for _, s := range r.Completed {
		if s == stage {
			return true
		}
	}
	return false
}
