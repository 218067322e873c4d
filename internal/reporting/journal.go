package reporting

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"proofrun/pkg/proof"
)

// WriteJournal writes the structured results journal: a JSON array with one
// record per passed proof followed by one per failure record. The format is
// fixed, down to indentation and comma placement, for the tooling that
// consumes it:
//
//	{
//	  "type": "unittest",
//	  "name": "<suite>::<proof>",
//	  "passed": true
//	}
//
// Double quotes in passed names are replaced by single quotes before
// emission; failed names are written as-is. The announcement line goes to
// out before the file is touched.
func WriteJournal(out io.Writer, path string, passed []string, failures []proof.Failure) error {
	fmt.Fprintf(out, " - Writing results to: %s\n", path)

	var buf bytes.Buffer
	buf.WriteString("[\n")

	first := true
	for _, name := range passed {
		writeRecord(&buf, &first, strings.ReplaceAll(name, `"`, `'`), true)
	}
	for _, f := range failures {
		writeRecord(&buf, &first, f.Name(), false)
	}

	buf.WriteString("\n]\n")

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing results file: %w", err)
	}
	return nil
}

func writeRecord(buf *bytes.Buffer, first *bool, name string, passed bool) {
	if !*first {
		buf.WriteString(",\n")
	}
	*first = false
	buf.WriteString("  {\n")
	buf.WriteString("    \"type\": \"unittest\",\n")
	fmt.Fprintf(buf, "    \"name\": \"%s\",\n", name)
	fmt.Fprintf(buf, "    \"passed\": %t\n", passed)
	buf.WriteString("  }")
}
