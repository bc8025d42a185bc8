package shader

import (
	"fmt"
	"strings"
)

// Define is a preprocessor symbol injected into shader source.
type Define struct {
	Name  string
	Value string
}

// Preprocess inserts #define lines directly after the #version directive,
// or at the top when the source has none.
func Preprocess(src string, defines ...Define) string {
	if len(defines) == 0 {
		return src
	}

	var block strings.Builder
	for _, d := range defines {
		fmt.Fprintf(&block, "#define %s %s\n", d.Name, d.Value)
	}

	lines := strings.SplitAfter(src, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "#version") {
			break
		}
		if !strings.HasSuffix(line, "\n") {
			line += "\n"
		}
		head := strings.Join(lines[:i], "") + line
		return head + block.String() + strings.Join(lines[i+1:], "")
	}
	return block.String() + src
}
