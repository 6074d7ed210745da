package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/pflag"
)

// Formats is the closed set of supported output containers.
// The first entry is the default.
var Formats = []string{"mp4", "mkv", "webm"}

// Recording holds the options of one capture session.
type Recording struct {
	// Threads is the number of parallel encode workers, 1..NumCPU.
	Threads int `fig:"threads"`
	// Fps is passed to the video encoder at finalize; it does not
	// throttle capture.
	Fps float64 `fig:"fps"`
	// Root is the writable storage root holding session directories.
	Root string `fig:"root"`
	// Name is the base name of the session directory, made unique
	// with a numeric suffix on collision.
	Name string `fig:"name"`
	// Format selects the output container, one of Formats.
	Format string `fig:"format"`
	// Cleanup removes the frame files and their directory after a
	// successful encode.
	Cleanup bool `fig:"cleanup"`
	// CompressionLevel is the PNG compression level, 0 (default)
	// to -3 (best speed to no compression mapping of image/png).
	CompressionLevel int `fig:"compression"`
}

// WithDefaults fills every unset option with its documented default.
func (c Recording) WithDefaults() Recording {
	if c.Threads == 0 {
		c.Threads = runtime.NumCPU()
	}
	if c.Fps == 0 {
		c.Fps = 30
	}
	if c.Root == "" {
		c.Root = "recordings"
	}
	if c.Name == "" {
		c.Name = "rec_" + time.Now().Format("20060102_150405")
	}
	if c.Format == "" {
		c.Format = Formats[0]
	}
	return c
}

func (c Recording) Validate() error {
	if c.Threads < 1 || c.Threads > runtime.NumCPU() {
		return fmt.Errorf("threads %v is out of range 1..%v", c.Threads, runtime.NumCPU())
	}
	if c.Fps <= 0 {
		return fmt.Errorf("fps %v is not positive", c.Fps)
	}
	if !supported(c.Format) {
		return fmt.Errorf("format %q is not one of %v", c.Format, Formats)
	}
	if c.CompressionLevel > 0 || c.CompressionLevel < -3 {
		return fmt.Errorf("compression level %v is out of range -3..0", c.CompressionLevel)
	}
	return nil
}

func supported(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

func (c *Recording) WithFlags(fs *pflag.FlagSet) *Recording {
	fs.IntVarP(&c.Threads, "threads", "t", c.Threads, "Number of parallel encode workers")
	fs.Float64VarP(&c.Fps, "fps", "r", c.Fps, "Output video framerate")
	fs.StringVarP(&c.Root, "root", "", c.Root, "Writable storage root for recordings")
	fs.StringVarP(&c.Name, "name", "o", c.Name, "Base name of the session directory")
	fs.StringVarP(&c.Format, "format", "f", c.Format, "Output container format")
	fs.BoolVarP(&c.Cleanup, "cleanup", "", c.Cleanup, "Remove intermediate frames after a successful encode")
	return c
}
