// Package browser opens article links in the user's web browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Launcher starts an external command without waiting for it.
type Launcher func(name string, args ...string) error

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open launches the platform browser on rawURL. Only http and https
// links are accepted.
func Open(rawURL string) error {
	return OpenWith(startCommand, runtime.GOOS, rawURL)
}

// OpenWith is Open with an explicit launcher and target OS.
func OpenWith(launch Launcher, goos, rawURL string) error {
	if err := Check(rawURL); err != nil {
		return err
	}
	name, args := command(goos, rawURL)
	if err := launch(name, args...); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	return nil
}

// Check reports whether rawURL may be handed to a browser.
func Check(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	return nil
}

func command(goos, rawURL string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{rawURL}
	case "windows":
		// rundll32 avoids cmd.exe parsing the URL
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}
	default:
		return "xdg-open", []string{rawURL}
	}
}
