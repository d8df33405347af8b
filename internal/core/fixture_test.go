package core_test

import (
	"errors"
	"fmt"
)

// Calculator is the real type the tests stand in for.
type Calculator struct {
	RealCalls int
}

// Record is a structured result.
type Record struct {
	ID   int
	Name string
}

func (c *Calculator) Check(n int) error {
	c.RealCalls++

	if n < 0 {
		return errNegative
	}

	return nil
}

func (c *Calculator) Divide(a, b int, remainder *int) int {
	c.RealCalls++
	*remainder = a % b

	return a / b
}

func (c *Calculator) Label(a int, b any) string {
	c.RealCalls++

	return fmt.Sprintf("real %d %v", a, b)
}

func (c *Calculator) Lookup(key string) (*Record, bool) {
	c.RealCalls++

	return &Record{ID: len(key), Name: key}, true
}

func (c *Calculator) Stats() (int, string, error) {
	c.RealCalls++

	return 3, "three", nil
}

func (c *Calculator) Sum(values ...int) int {
	c.RealCalls++

	total := 0
	for _, value := range values {
		total += value
	}

	return total
}

// Sender has no implementation; it is mocked by type only.
type Sender interface {
	Send(to string, body []byte) error
}

// unexported variables.
var (
	errDivideByZero = errors.New("divide by zero")
	errNegative     = errors.New("negative")
)

// recordingTracer collects trace lines.
type recordingTracer struct {
	lines []string
}

func (r *recordingTracer) Logf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

// fakeReporter stands in for *testing.T where fatal paths are exercised.
type fakeReporter struct {
	fatals   []string
	cleanups []func()
}

func (f *fakeReporter) Cleanup(cleanup func()) {
	f.cleanups = append(f.cleanups, cleanup)
}

func (f *fakeReporter) Fatalf(format string, args ...any) {
	f.fatals = append(f.fatals, fmt.Sprintf(format, args...))
}

func (f *fakeReporter) Helper() {}
