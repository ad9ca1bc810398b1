package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestReferenceMarkdown(t *testing.T) {
	md := ReferenceMarkdown()

	for _, want := range []string{
		"| `DD-MM-YYYY HH:mm` | `12-05-2024 18:00` |",
		"| `YYYY-MM-DD HH:mm` | `2024-05-12 18:00` |",
		"| `DD-Mon-YYYY HH:mm` | `12-May-2024 18:00` |",
		"[T][ ] buy milk\n",
		"[D][X] submit report (by: 12-05-2024 18:00)\n",
		"[E][ ] team sync (from: 01-01-2024 09:00 to: 01-01-2024 10:00)\n",
		"deadline submit report /by 12-05-2024 18:00\n",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("reference is missing %q", want)
		}
	}
}

func TestReferencePlain(t *testing.T) {
	var buf bytes.Buffer
	if err := Reference(&buf, false); err != nil {
		t.Fatalf("Reference: %v", err)
	}
	if !strings.Contains(buf.String(), "buy milk") {
		t.Errorf("rendered reference lacks the sample tasks:\n%s", buf.String())
	}
}
