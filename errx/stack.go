package errx

import (
	"fmt"
	"runtime"
)

// maxStackDepth bounds the frame buffer no matter what stackLength asks for
const maxStackDepth = 512

// captureStack records up to depth frames as display lines. skip 0 is the caller
// of captureStack.
func captureStack(skip, depth int) []string {
	if depth <= 0 {
		return nil
	}
	if depth > maxStackDepth {
		depth = maxStackDepth
	}

	// +1 for runtime.Callers, +1 for captureStack
	pc := make([]uintptr, depth)
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pc[:n])
	lines := make([]string, 0, n)
	for len(lines) < depth {
		fr, more := frames.Next()
		lines = append(lines, formatFrame(fr))
		if !more {
			break
		}
	}
	return lines
}

func formatFrame(fr runtime.Frame) string {
	fn := fr.Function
	if fn == "" {
		fn = "<unknown>"
	}
	return fmt.Sprintf("    at %s (%s:%d)", fn, fr.File, fr.Line)
}
