package mailer

import (
	"os"
	"path/filepath"

	"github.com/agentstation/utc"

	"github.com/agentstation/rollcall/pkg/constants"
	"github.com/agentstation/rollcall/pkg/errors"
)

// DraftStore keeps composed messages as .eml files for review.
type DraftStore struct {
	Dir string
}

// Save writes msg as an unsent draft and returns its path.
func (s DraftStore) Save(msg *Message, at utc.Time) (string, error) {
	if err := os.MkdirAll(s.Dir, constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", s.Dir, err)
	}

	draft := *msg
	draft.Draft = true
	data, err := draft.Bytes()
	if err != nil {
		return "", err
	}

	name := at.Format("20060102T150405Z") + "-" + shortID(msg.ID) + ".eml"
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	return path, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "draft"
	}
	return id
}
