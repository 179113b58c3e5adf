package log

import "testing"

func TestNewReturnsUsableLogger(t *testing.T) {
	l := New()
	l.Infof("test %d", 1)
	l.Errorf("test %d", 2)
	l.Debugf("test %d", 3)
}

func TestNullLoggerDiscardsOutput(t *testing.T) {
	l := NewNullLogger()
	l.Infof("should not panic")
	l.Errorf("should not panic")
	l.Debugf("should not panic")
}
