package compliance

import (
	"fmt"
	"io"
	"time"

	"github.com/nao1215/markdown"
)

// Notice is a removal-request document addressed to one platform,
// asking for erasure of the sensitive data found there. It is built
// from a single exposure's findings, already converted to masked
// violation records.
type Notice struct {
	// UserName is the data principal making the request.
	UserName string

	// Platform is the addressed data fiduciary, e.g. "GitHub".
	Platform string

	// Records are the violations backing the request.
	Records []Record

	// Date is the request date. Callers inject it so notice
	// generation stays deterministic in tests.
	Date time.Time
}

// Write renders the notice as Markdown.
//
// Design decision: Markdown instead of a filled-in plain-text template
// because the same document serves both the HTTP download endpoint and
// direct rendering in terminals or issue trackers, and the markdown
// builder guarantees structurally valid output.
func (n Notice) Write(w io.Writer) error {
	md := markdown.NewMarkdown(w)

	md.H1("Data Removal Request under the DPDP Act, 2023")
	md.PlainText("")
	md.PlainTextf("Date: %s", n.Date.Format("02 January 2006"))
	md.PlainTextf("To: The Grievance Officer, %s", n.Platform)
	md.PlainText("")
	md.PlainTextf(
		"I, %s, exercise my rights as a data principal under the Digital Personal Data Protection Act, 2023, "+
			"and request the erasure of the following personal data discovered on your platform:",
		n.UserName,
	)
	md.PlainText("")

	items := make([]string, 0, len(n.Records))
	for _, record := range n.Records {
		item := fmt.Sprintf("%s: %s (%s)", record.DataType, record.Violation, record.Section)
		if record.MaskedValue != "" {
			item += fmt.Sprintf(", value `%s`", record.MaskedValue)
		}
		items = append(items, item)
	}
	md.BulletList(items...)
	md.PlainText("")

	md.PlainText(
		"Continued processing of this data without consent may attract penalties under the Act. " +
			"Please confirm erasure within the statutory response period.",
	)
	md.PlainText("")
	md.PlainTextf("Sincerely,\n%s", n.UserName)

	return md.Build()
}
