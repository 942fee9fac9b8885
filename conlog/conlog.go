// SPDX-License-Identifier: GPL-2.0-or-later

package conlog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	log = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetOutput redirects all console logging.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// SetLevel accepts logrus level names ("debug", "info", ...).
func SetLevel(level string) error {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(l)
	return nil
}

// SetDeveloper switches between debug and info output.
func SetDeveloper(on bool) {
	if on {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
}

func Logger() *logrus.Logger {
	return log
}

func Printf(format string, v ...interface{}) {
	log.Infof(format, v...)
}

// DPrintf only prints in developer mode.
func DPrintf(format string, v ...interface{}) {
	log.Debugf(format, v...)
}

func Warnf(format string, v ...interface{}) {
	log.Warnf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	log.Errorf(format, v...)
}

func WithFields(f logrus.Fields) *logrus.Entry {
	return log.WithFields(f)
}
