package common

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	serviceName     = "launchmaster"
	serviceInstance = ""
)

func init() {
	logger := logrus.StandardLogger()
	logger.Out = os.Stdout
	logger.Formatter = &logrus.TextFormatter{}
	logger.AddHook(&DefaultFieldsHook{})

	if host, err := os.Hostname(); err == nil {
		serviceInstance = host
	}
}

// SetupLogger applies level and format to the standard logrus logger.
// Unknown levels fall back to info, format "json" selects the JSON formatter.
func SetupLogger(name, level, format string) {
	if name != "" {
		serviceName = name
	}
	logger := logrus.StandardLogger()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		logger.Formatter = &logrus.JSONFormatter{}
	} else {
		logger.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	}
}

func GetServiceName() string {
	return serviceName
}

func GetServiceInstance() string {
	return serviceInstance
}

type DefaultFieldsHook struct {
}

func (hook *DefaultFieldsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook *DefaultFieldsHook) Fire(e *logrus.Entry) error {
	e.Data["serviceName"] = GetServiceName()
	e.Data["serviceInstance"] = GetServiceInstance()
	return nil
}
