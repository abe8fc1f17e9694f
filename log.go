package halgo

import "github.com/sirupsen/logrus"

// Logger receives the warnings emitted when deprecated links are resolved.
// Failures are returned to the caller and never logged.
var Logger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger replaces Logger. A nil logger discards everything.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		discard := logrus.New()
		discard.SetOutput(nopWriter{})
		l = discard
	}
	Logger = l
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func warnDeprecated(l Link) {
	if l.deprecation == "" {
		return
	}

	Logger.WithFields(logrus.Fields{
		"href":        l.href,
		"name":        l.name,
		"deprecation": l.deprecation,
	}).Warn("following deprecated link")
}
