package deploysample

import (
	"context"
	"sync"
	"time"
)

type nopLogger struct{}

func (*nopLogger) Debug(event interface{})                 {}
func (*nopLogger) Info(event interface{})                  {}
func (*nopLogger) Warn(event interface{})                  {}
func (*nopLogger) Error(event interface{})                 {}
func (*nopLogger) SetField(name string, value interface{}) {}
func (logger *nopLogger) Copy() Logger {
	return logger
}

var testLogger = &nopLogger{}

func testLogFn(context.Context) Logger { return testLogger }

// fieldLogger keeps the fields set on it and hands out itself on Copy so
// tests can inspect what a decorator attached.
type fieldLogger struct {
	nopLogger
	lock   sync.Mutex
	fields map[string]interface{}
	copies int
}

func newFieldLogger() *fieldLogger {
	return &fieldLogger{fields: make(map[string]interface{})}
}

func (l *fieldLogger) SetField(name string, value interface{}) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.fields[name] = value
}

func (l *fieldLogger) Copy() Logger {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.copies++
	return l
}

type nopStat struct{}

func (*nopStat) Gauge(stat string, value float64, tags ...string)        {}
func (*nopStat) Count(stat string, count float64, tags ...string)        {}
func (*nopStat) Histogram(stat string, value float64, tags ...string)    {}
func (*nopStat) Timing(stat string, value time.Duration, tags ...string) {}
func (*nopStat) AddTags(tags ...string)                                  {}
func (*nopStat) GetTags() []string {
	return []string{}
}

var testStat = &nopStat{}

func testStatFn(context.Context) Stat { return testStat }

type statCall struct {
	Name string
	Tags []string
}

// countingStat records Count and Timing calls.
type countingStat struct {
	nopStat
	lock    sync.Mutex
	counts  []statCall
	timings []statCall
}

func (s *countingStat) Count(stat string, count float64, tags ...string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.counts = append(s.counts, statCall{Name: stat, Tags: tags})
}

func (s *countingStat) Timing(stat string, value time.Duration, tags ...string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.timings = append(s.timings, statCall{Name: stat, Tags: tags})
}

func (s *countingStat) Counts() []statCall {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]statCall(nil), s.counts...)
}

var testName = "test"
