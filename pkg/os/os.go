package os

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
)

func Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

func CheckCreateDir(path string) error {
	if !Exists(path) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

// UniquePath returns base+ext when no such path exists, otherwise the
// first of base1+ext, base2+ext, ... that doesn't exist yet.
func UniquePath(base string, ext string) string {
	if p := base + ext; !Exists(p) {
		return p
	}
	for i := 1; ; i++ {
		if p := fmt.Sprintf("%s%d%s", base, i, ext); !Exists(p) {
			return p
		}
	}
}

func ExpectTermination() chan struct{} {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{}, 1)
	go func() {
		<-signals
		done <- struct{}{}
	}()
	return done
}
