// Package logging configures the standard logger for the command line tools.
package logging

import (
	"bytes"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects where log output goes.
type Config struct {
	// Prefix is prepended to every line.
	Prefix string
	// Color enables a colored prefix when stderr is a terminal.
	Color bool
	// File, when set, receives a copy of the output, rotated by size.
	File string
}

// Setup points the standard logger at stderr and the optional log file. The
// returned closer flushes and closes the file.
func Setup(cfg Config) io.Closer {
	var stderr io.Writer = os.Stderr
	prefix := cfg.Prefix
	if cfg.Color && isatty.IsTerminal(os.Stderr.Fd()) {
		stderr = colorable.NewColorableStderr()
		prefix = color.New(color.FgCyan).Sprint(cfg.Prefix)
	}

	var closer io.Closer = nopCloser{}
	out := stderr
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		}
		// the file gets the plain prefix
		out = io.MultiWriter(stderr, &prefixWriter{prefix: prefix, plain: cfg.Prefix, w: file})
		closer = file
	}

	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	log.SetPrefix(prefix)
	log.SetOutput(out)
	return closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// prefixWriter swaps the colored prefix for the plain one.
type prefixWriter struct {
	prefix string
	plain  string
	w      io.Writer
}

func (p *prefixWriter) Write(b []byte) (int, error) {
	if p.prefix == p.plain {
		return p.w.Write(b)
	}
	line := bytes.Replace(b, []byte(p.prefix), []byte(p.plain), 1)
	if _, err := p.w.Write(line); err != nil {
		return 0, err
	}
	return len(b), nil
}
