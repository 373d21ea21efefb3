package logs

import (
	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

type Options struct {
	Level  string
	Format string
}

func Init(o Options) {
	level, err := logrus.ParseLevel(o.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)
	if o.Format == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
