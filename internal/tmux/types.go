// pattern: Functional Core

package tmux

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"sessionizer/internal/selection"
)

// Session is one entry of tmux list-sessions.
type Session struct {
	Name     string
	Windows  int
	Attached bool
}

// Plan returns the tmux invocations that bring sel into view. Inside tmux the
// client is switched; outside, the terminal attaches. A missing session is
// created detached first, rooted at the selected directory.
func Plan(sel selection.Selection, insideTmux, exists bool) [][]string {
	target := "=" + sel.SessionName

	var plan [][]string
	if !exists {
		plan = append(plan, []string{"new-session", "-d", "-s", sel.SessionName, "-c", sel.Path})
	}
	if insideTmux {
		plan = append(plan, []string{"switch-client", "-t", target})
	} else {
		plan = append(plan, []string{"attach-session", "-t", target})
	}
	return plan
}

// RenderPlan formats a plan as shell command lines, one per invocation.
func RenderPlan(bin string, plan [][]string) string {
	lines := make([]string, len(plan))
	for i, args := range plan {
		lines[i] = shellquote.Join(append([]string{bin}, args...)...)
	}
	return strings.Join(lines, "\n")
}
