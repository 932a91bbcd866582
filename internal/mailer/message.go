package mailer

import (
	"bytes"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"strings"
	"time"

	"github.com/agentstation/utc"
)

// Message is a composed HTML email.
type Message struct {
	ID      string
	From    string
	To      []string
	Subject string
	HTML    string
	Date    utc.Time
	// Draft marks the message as unsent so mail clients open it for editing.
	Draft bool
}

// Bytes renders the message in RFC 5322 form with a quoted-printable body.
func (m *Message) Bytes() ([]byte, error) {
	var buf bytes.Buffer

	header := func(k, v string) {
		fmt.Fprintf(&buf, "%s: %s\r\n", k, v)
	}
	if m.From != "" {
		header("From", m.From)
	}
	header("To", strings.Join(m.To, ", "))
	header("Subject", mime.QEncoding.Encode("utf-8", m.Subject))
	header("Date", m.Date.Format(time.RFC1123Z))
	if m.ID != "" {
		header("Message-ID", "<"+m.ID+">")
	}
	if m.Draft {
		header("X-Unsent", "1")
	}
	header("MIME-Version", "1.0")
	header("Content-Type", "text/html; charset=UTF-8")
	header("Content-Transfer-Encoding", "quoted-printable")
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(m.HTML)); err != nil {
		return nil, err
	}
	if err := qp.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
