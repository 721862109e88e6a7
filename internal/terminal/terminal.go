// Package terminal detects the hosting terminal or multiplexer and builds
// the command that opens the dashboard in a split pane next to the
// assistant's session.
package terminal

import (
	"fmt"
	"os"
	"runtime"
)

type Kind int

const (
	Unknown Kind = iota
	Zellij
	WezTerm
	Kitty
	Tmux
)

func (k Kind) String() string {
	switch k {
	case Zellij:
		return "Zellij"
	case WezTerm:
		return "WezTerm"
	case Kitty:
		return "Kitty"
	case Tmux:
		return "tmux"
	default:
		return "Unknown"
	}
}

// Detect identifies the hosting terminal from environment variables.
// Multiplexers win over the terminals they run inside, so the priority is
// Zellij > WezTerm > Kitty > tmux.
func Detect() Kind {
	return DetectEnv(os.Getenv)
}

// DetectEnv is Detect with an injectable environment lookup.
func DetectEnv(getenv func(string) string) Kind {
	switch {
	case getenv("ZELLIJ") != "" || getenv("ZELLIJ_SESSION_NAME") != "":
		return Zellij
	case getenv("WEZTERM_PANE") != "" || getenv("WEZTERM_EXECUTABLE") != "":
		return WezTerm
	case getenv("KITTY_PID") != "" || getenv("KITTY_WINDOW_ID") != "":
		return Kitty
	case getenv("TMUX") != "":
		return Tmux
	default:
		return Unknown
	}
}

// SplitCommand is a program invocation that opens the dashboard pane.
type SplitCommand struct {
	Program string
	Args    []string
}

// SplitCommandFor builds the pane-splitting command for the detected
// terminal, launching binary in attach mode. Returns false for Unknown.
func SplitCommandFor(kind Kind, binary string) (SplitCommand, bool) {
	switch kind {
	case WezTerm:
		return SplitCommand{
			Program: "wezterm",
			Args:    []string{"cli", "split-pane", "--right", "--percent", "35", "--", binary, "--attach"},
		}, true
	case Zellij:
		return SplitCommand{
			Program: "zellij",
			Args:    []string{"action", "new-pane", "--direction", "right", "--", binary, "--attach"},
		}, true
	case Tmux:
		return SplitCommand{
			Program: "tmux",
			Args:    []string{"split-window", "-h", "-l", "35%", fmt.Sprintf("%s --attach", binary)},
		}, true
	case Kitty:
		return SplitCommand{
			Program: "kitty",
			Args:    []string{"@", "launch", "--location=vsplit", binary, "--attach"},
		}, true
	default:
		return SplitCommand{}, false
	}
}

// FallbackCommand opens the dashboard in a new terminal window when no
// splittable terminal was detected.
func FallbackCommand(binary string) SplitCommand {
	if runtime.GOOS == "darwin" {
		return SplitCommand{
			Program: "open",
			Args:    []string{"-a", "Terminal", binary, "--args", "--attach"},
		}
	}
	return SplitCommand{
		Program: "xterm",
		Args:    []string{"-e", fmt.Sprintf("%s --attach", binary)},
	}
}
