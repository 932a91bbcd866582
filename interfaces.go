package rollcall

import (
	"context"

	"github.com/agentstation/rollcall/pkg/contacts"
	"github.com/agentstation/rollcall/pkg/reconcile"
	"github.com/agentstation/rollcall/pkg/roster"
)

// Source names one input table.
type Source struct {
	Path string `json:"path" yaml:"path"`
	// Sheet selects a worksheet; empty means the first one.
	Sheet string `json:"sheet,omitempty" yaml:"sheet,omitempty"`
}

// Loader reads a table with every cell as text.
type Loader interface {
	Load(ctx context.Context, src Source) (*roster.Table, error)
}

// Prompter asks the user to choose values from a closed list. An empty
// answer means no filter on that field.
type Prompter interface {
	Select(ctx context.Context, title string, options []string) ([]string, error)
}

// Dispatcher hands recipient addresses to a notification channel.
type Dispatcher interface {
	Dispatch(ctx context.Context, h Handoff) (*Delivery, error)
}

// Handoff is what a run passes to the dispatcher. Recipients are trimmed,
// non-blank and unique ignoring case.
type Handoff struct {
	RunID      string
	Recipients []string
	Selection  reconcile.Selection
}

// Reporter presents the findings of a run.
type Reporter interface {
	Exceptions(exceptions []reconcile.Exception) error
	Selections(sel reconcile.Selection) error
	Members(members []reconcile.Member) error
	Resolution(res contacts.Resolution) error
	Delivery(d *Delivery) error
}

// Delivery describes a completed handoff.
type Delivery struct {
	// Mode is the dispatch mode that handled the message.
	Mode       string   `json:"mode" yaml:"mode"`
	Recipients []string `json:"recipients" yaml:"recipients"`
	// Sent is false when the message was only saved for review.
	Sent      bool   `json:"sent" yaml:"sent"`
	DraftPath string `json:"draft_path,omitempty" yaml:"draft_path,omitempty"`
	MessageID string `json:"message_id,omitempty" yaml:"message_id,omitempty"`
}
