// Package browser opens product URLs in the user's default browser.
package browser

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// NoBrowserEnv suppresses browser launching when set to a non-empty
// value; callers print the URL instead. Useful over SSH and in scripts.
const NoBrowserEnv = "FRUITFUL_NO_BROWSER"

// Suppressed reports whether browser launching is disabled by
// environment.
func Suppressed() bool {
	return os.Getenv(NoBrowserEnv) != ""
}

// Open launches the platform browser for url. On WSL the Windows-side
// wslview is preferred; xdg-open inside WSL typically has no display
// to talk to.
func Open(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		if isWSL() {
			if _, err := exec.LookPath("wslview"); err == nil {
				cmd = exec.Command("wslview", url)
				break
			}
		}
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// isWSL detects Windows Subsystem for Linux via the kernel banner.
func isWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(data)), "microsoft")
}
