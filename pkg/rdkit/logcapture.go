package rdkit

import (
	"sync"
	"time"
)

// LogCapture collects RDKit's own log output (parse warnings and the
// like) for one named log channel, e.g. "rdApp.*".
type LogCapture struct {
	h      *Handle
	name   string
	mu     sync.Mutex
	handle uintptr
}

// CaptureLogs redirects the named channel into a buffer.
func (h *Handle) CaptureLogs(name string) (*LogCapture, error) {
	return h.openLog("set_log_capture", name, h.lib.SetLogCapture)
}

// TeeLogs copies the named channel into a buffer while still writing it to
// stderr.
func (h *Handle) TeeLogs(name string) (*LogCapture, error) {
	return h.openLog("set_log_tee", name, h.lib.SetLogTee)
}

func (h *Handle) openLog(fn, name string, open func(string) uintptr) (c *LogCapture, err error) {
	start := time.Now()
	defer func() { h.observe(fn, start, err) }()
	if name == "" {
		return nil, errInvalidArgument("log name must not be empty")
	}
	p := open(name)
	if p == 0 {
		return nil, errBadPointer(fn)
	}
	c = &LogCapture{h: h, name: name, handle: p}
	h.trackFinalizer(c, (*LogCapture).finalize)
	return c, nil
}

func (c *LogCapture) finalize() { _ = c.Close() }

func (c *LogCapture) Name() string { return c.name }

// Buffer returns everything captured since the last Clear.
func (c *LogCapture) Buffer() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == 0 {
		return "", errReleased("log capture")
	}
	return c.h.callString("get_log_buffer", func() uintptr { return c.h.lib.GetLogBuffer(c.handle) })
}

func (c *LogCapture) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == 0 {
		return errReleased("log capture")
	}
	return checkStatus("clear_log_buffer", c.h.lib.ClearLogBuffer(c.handle))
}

// Close destroys the native handle and restores the channel.  Calling it
// again is a no-op.
func (c *LogCapture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == 0 {
		return nil
	}
	err := checkStatus("destroy_log_handle", c.h.lib.DestroyLogHandle(&c.handle))
	c.handle = 0
	return err
}

//Personal.AI order the ending
