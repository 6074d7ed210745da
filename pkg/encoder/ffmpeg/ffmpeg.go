// Package ffmpeg builds and runs the external encoder invocation that
// turns a PNG frame sequence into a video container file.
package ffmpeg

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/framecast/framecast/pkg/logger"
)

// InputPattern is the frame file pattern inside the sequence directory.
const InputPattern = "%04d.png"

var ErrUnsupportedPlatform = errors.New("ffmpeg: unsupported platform")

// Command returns the encoder argv for the host platform. The command is
// meant to run with the frame sequence directory as its working directory
// so that InputPattern resolves.
func Command(fps float64, format string, out string) ([]string, error) {
	return command(runtime.GOOS, fps, format, out)
}

func command(goos string, fps float64, format string, out string) ([]string, error) {
	switch goos {
	case "linux", "darwin":
		line := fmt.Sprintf("ffmpeg -y -framerate %v -i %s%s '%s'",
			fps, InputPattern, formatFlags(format), out)
		return []string{"/bin/sh", "-c", line}, nil
	case "windows":
		line := fmt.Sprintf(`ffmpeg -y -framerate %v -i %s%s "%s"`,
			fps, InputPattern, formatFlags(format), out)
		return []string{"cmd", "/C", line}, nil
	}
	return nil, ErrUnsupportedPlatform
}

// formatFlags returns extra codec flags for the container.
// Only mp4 needs the web-friendly pixel format and faststart moov.
func formatFlags(format string) string {
	if format == "mp4" {
		return " -pix_fmt yuv420p -movflags +faststart"
	}
	return ""
}

// Run executes argv synchronously in dir and fails on a non-zero exit.
func Run(dir string, argv []string, log *logger.Logger) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		log.Debug().Msgf("[ffmpeg] %s", strings.TrimSpace(string(out)))
	}
	if err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			return fmt.Errorf("ffmpeg exited with status %v", exit.ExitCode())
		}
		return fmt.Errorf("ffmpeg failed to run: %w", err)
	}
	return nil
}

// Encode runs the full finalize invocation over the frame directory.
func Encode(dir string, fps float64, format string, out string, log *logger.Logger) error {
	argv, err := Command(fps, format, out)
	if err != nil {
		return err
	}
	log.Info().Msgf("[ffmpeg] %v", strings.Join(argv, " "))
	return Run(dir, argv, log)
}
