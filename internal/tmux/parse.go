// pattern: Functional Core

package tmux

import (
	"bufio"
	"strconv"
	"strings"
)

// ParseListSessions parses tmux list-sessions output into sessions.
// The output format is: "name: N windows (created DATE) [(attached)]"
// Empty lines and malformed lines are skipped gracefully.
func ParseListSessions(output string) []Session {
	var sessions []Session

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		session := parseSessionLine(line)
		if session.Name != "" {
			sessions = append(sessions, session)
		}
	}

	return sessions
}

// parseSessionLine parses a single line from tmux list-sessions output.
func parseSessionLine(line string) Session {
	var session Session

	name, rest, ok := strings.Cut(line, ": ")
	if !ok {
		return session
	}
	session.Name = name

	// tmux prints "1 windows" on old versions and "1 window" on newer ones
	if idx := strings.Index(rest, " window"); idx > 0 {
		if n, err := strconv.Atoi(rest[:idx]); err == nil {
			session.Windows = n
		}
	}

	session.Attached = strings.HasSuffix(line, "(attached)")

	return session
}
