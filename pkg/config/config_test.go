package config

import (
	"runtime"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		conf Recording
		ok   bool
	}{
		{conf: Recording{Threads: 1, Fps: 30, Format: "mp4"}, ok: true},
		{conf: Recording{Threads: runtime.NumCPU(), Fps: 60, Format: "webm"}, ok: true},
		{conf: Recording{Threads: 0, Fps: 30, Format: "mp4"}},
		{conf: Recording{Threads: runtime.NumCPU() + 1, Fps: 30, Format: "mp4"}},
		{conf: Recording{Threads: 1, Fps: 0, Format: "mp4"}},
		{conf: Recording{Threads: 1, Fps: -30, Format: "mkv"}},
		{conf: Recording{Threads: 1, Fps: 30, Format: "avi"}},
		{conf: Recording{Threads: 1, Fps: 30, Format: ""}},
		{conf: Recording{Threads: 1, Fps: 30, Format: "mp4", CompressionLevel: 1}},
		{conf: Recording{Threads: 1, Fps: 30, Format: "mp4", CompressionLevel: -4}},
		{conf: Recording{Threads: 1, Fps: 30, Format: "mp4", CompressionLevel: -3}, ok: true},
	}

	for _, test := range tests {
		err := test.conf.Validate()
		if test.ok != (err == nil) {
			t.Errorf("expected ok=%v, but was %v with: %+v", test.ok, err, test.conf)
		}
	}
}

func TestWithDefaults(t *testing.T) {
	c := Recording{}.WithDefaults()

	if c.Threads != runtime.NumCPU() {
		t.Errorf("expected %v threads, but was %v", runtime.NumCPU(), c.Threads)
	}
	if c.Fps != 30 {
		t.Errorf("expected 30 fps, but was %v", c.Fps)
	}
	if c.Format != Formats[0] {
		t.Errorf("expected format %v, but was %v", Formats[0], c.Format)
	}
	if c.Root != "recordings" {
		t.Errorf("expected recordings root, but was %v", c.Root)
	}
	if !strings.HasPrefix(c.Name, "rec_") {
		t.Errorf("expected a time-derived name, but was %v", c.Name)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("expected defaults to validate, but was %v", err)
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("FRAMECAST_FPS", "60")
	t.Setenv("FRAMECAST_FORMAT", "webm")
	t.Setenv("FRAMECAST_CLEANUP", "true")

	var c Recording
	if err := LoadConfigEnv(&c); err != nil {
		t.Fatal(err)
	}
	if c.Fps != 60 {
		t.Errorf("expected 60 fps from the environment, but was %v", c.Fps)
	}
	if c.Format != "webm" {
		t.Errorf("expected webm format from the environment, but was %v", c.Format)
	}
	if !c.Cleanup {
		t.Error("expected cleanup enabled from the environment")
	}
}

func TestWithDefaultsKeepsSetValues(t *testing.T) {
	c := Recording{Threads: 1, Fps: 24, Name: "take", Format: "mkv"}.WithDefaults()

	if c.Threads != 1 || c.Fps != 24 || c.Name != "take" || c.Format != "mkv" {
		t.Errorf("expected set values to survive, but was %+v", c)
	}
}
