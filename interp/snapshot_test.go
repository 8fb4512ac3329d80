package interp_test

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/abatkin/expressions/interp"
	"github.com/abatkin/expressions/parser"
)

// TestProgramOutputSnapshots runs a handful of representative programs and
// snapshots their as_str_lossy print output, rather than hand-writing each
// expected string inline.
func TestProgramOutputSnapshots(t *testing.T) {
	programs := map[string]string{
		"string_builtins": `
s = "  Hello World  "
print(s.trim())
print(s.trim().toUpper())
print(s.trim().toLower())
print(s.contains("World"))
`,
		"list_builtins": `
xs = [3, 1, 4, 1, 5]
print(xs.length)
print(xs.contains(4))
print(xs.get(10, -1))
print(xs.join("-"))
`,
		"dict_builtins": `
d = {"a": 1, "b": 2, "c": 3}
print(d.length)
print(keys(d))
print(values(d))
print(items(d))
`,
		"ternary_and_logic": `
for (i = 0; i < 5; i = i + 1) {
  label = i % 2 == 0 ? "even" : "odd"
  print(i, label)
}
`,
	}

	names := []string{"string_builtins", "list_builtins", "dict_builtins", "ternary_and_logic"}
	for _, name := range names {
		src := programs[name]
		t.Run(name, func(t *testing.T) {
			prog, err := parser.ParseProgram(src)
			require.NoError(t, err)
			var buf bytes.Buffer
			_, err = interp.RunProgram(prog, interp.HostConfig{Stdout: &buf})
			require.NoError(t, err)
			snaps.MatchSnapshot(t, buf.String())
		})
	}
}
