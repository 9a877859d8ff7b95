package domain

// Logger is the logging capability injected into the classifiers and the
// change aggregator. Keeping it an interface (instead of the process-wide
// logrus singleton used at the CLI edges) lets unit tests assert on warnings
// without a live logging backend.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
