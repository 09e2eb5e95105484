// Package stacktrace trims raw goroutine stacks down to the frames that
// belong to this repository, keeping panic logs readable.
package stacktrace

import "strings"

// InternalPaths extracts "internal/...go:line" frames from a debug.Stack dump.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	frames := make([]string, 0, len(lines))

	for i := 0; i < len(lines)-1; i++ {
		line := strings.TrimSpace(lines[i+1])
		if !strings.Contains(line, "/internal/") || !strings.Contains(line, ".go") {
			continue
		}

		idx := strings.Index(line, ".go:")
		if idx == -1 {
			continue
		}

		end := strings.Index(line[idx:], " ")
		if end == -1 {
			end = len(line)
		} else {
			end += idx
		}

		frame := line[:end]
		if j := strings.Index(frame, "/internal/"); j != -1 {
			frames = append(frames, frame[j+1:])
		}
	}

	return frames
}
