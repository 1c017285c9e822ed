package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// clipboardTools lists the utilities tried on non-darwin, non-windows
// systems, in order.
var clipboardTools = []struct {
	name string
	args []string
}{
	{"wl-copy", nil},
	{"xclip", []string{"-selection", "clipboard"}},
	{"xsel", []string{"--clipboard", "--input"}},
	{"clip.exe", nil},
}

func runClipboardCommand(name string, args []string, data string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(data)
	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s failed: %s", name, msg)
		}
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

func copyToClipboard(data string) error {
	switch runtime.GOOS {
	case "darwin":
		if _, err := exec.LookPath("pbcopy"); err != nil {
			return fmt.Errorf("pbcopy not found in PATH")
		}
		return runClipboardCommand("pbcopy", nil, data)
	case "windows":
		if _, err := exec.LookPath("clip"); err != nil {
			return fmt.Errorf("clip not found in PATH")
		}
		return runClipboardCommand("clip", nil, data)
	default:
		for _, tool := range clipboardTools {
			if path, _ := exec.LookPath(tool.name); path != "" {
				return runClipboardCommand(path, tool.args, data)
			}
		}
		return fmt.Errorf("no clipboard utility found (tried wl-copy, xclip, xsel, clip.exe)")
	}
}

// osc52Sequence wraps the payload in an OSC 52 clipboard escape, adding the
// tmux or screen passthrough envelope when needed.
func osc52Sequence(data string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(data))
	seq := fmt.Sprintf("\x1b]52;c;%s\x07", encoded)
	if os.Getenv("TMUX") != "" {
		return "\x1bPtmux;" + seq + "\x1b\\"
	}
	if strings.HasPrefix(os.Getenv("TERM"), "screen") {
		return "\x1bP" + seq + "\x1b\\"
	}
	return seq
}

func copyToOSC52(data string) error {
	if _, err := io.WriteString(os.Stdout, osc52Sequence(data)); err != nil {
		return fmt.Errorf("failed to write OSC 52 sequence: %w", err)
	}
	return nil
}
