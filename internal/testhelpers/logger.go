// Package testhelpers holds small fixtures shared by this module's
// Ginkgo-based integration suites.
package testhelpers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/onsi/ginkgo/v2"
)

// TestLogger implements log.Logger for the Ginkgo suites, writing through
// GinkgoWriter so output interleaves correctly with `go test -v` and
// `ginkgo -v` alike.
type TestLogger struct{}

// NewTestLogger creates a new TestLogger for Ginkgo tests.
func NewTestLogger() *TestLogger {
	return &TestLogger{}
}

// Debug implements log.Logger.
func (l *TestLogger) Debug(msg string, keysAndValues ...any) {
	l.log(color.FgHiBlack, "DEBUG", msg, keysAndValues)
}

// Info implements log.Logger.
func (l *TestLogger) Info(msg string, keysAndValues ...any) {
	l.log(color.FgBlue, "INFO", msg, keysAndValues)
}

// Warn implements log.Logger.
func (l *TestLogger) Warn(msg string, keysAndValues ...any) {
	l.log(color.FgYellow, "WARN", msg, keysAndValues)
}

// Error implements log.Logger.
func (l *TestLogger) Error(msg string, keysAndValues ...any) {
	l.log(color.FgRed, "ERROR", msg, keysAndValues)
}

func (l *TestLogger) log(attr color.Attribute, level, msg string, args []any) {
	formatted := msg
	if len(args) > 0 {
		pairs := make([]string, 0, len(args)/2)
		for i := 0; i+1 < len(args); i += 2 {
			pairs = append(pairs, fmt.Sprintf("%v=%v", args[i], args[i+1]))
		}
		formatted = fmt.Sprintf("%s (%s)", msg, strings.Join(pairs, ", "))
	}

	paint := color.New(attr).SprintFunc()
	ginkgo.GinkgoWriter.Printf("%s %s\n", paint("["+level+"]"), formatted)
}
