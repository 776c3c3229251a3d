package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/docask"
)

var _ docask.FrameworkDetector = (*LoggingDetector)(nil)

// LoggingDetector wraps a FrameworkDetector with logging of detections.
type LoggingDetector struct {
	next   docask.FrameworkDetector
	logger *slog.Logger
}

// NewLoggingDetector creates a new LoggingDetector.
func NewLoggingDetector(next docask.FrameworkDetector, logger *slog.Logger) *LoggingDetector {
	return &LoggingDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector and logs the framework found.
func (d *LoggingDetector) Detect(html string) docask.Framework {
	begin := time.Now()
	framework := d.next.Detect(html)
	name := string(framework)
	if framework == docask.FrameworkUnknown {
		name = "(unknown)"
	}
	d.logger.Info("framework detection",
		"framework", name,
		"duration", time.Since(begin),
	)
	return framework
}

// RequiresJS delegates to the wrapped detector.
func (d *LoggingDetector) RequiresJS(framework docask.Framework) (requires bool, known bool) {
	return d.next.RequiresJS(framework)
}
