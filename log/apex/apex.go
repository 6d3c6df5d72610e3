package apex

import (
	"github.com/apex/log"
	"github.com/unkn0wn-root/rendercache"
)

type ApexLogger struct{ L log.Interface }

func (a ApexLogger) Debug(msg string, f rendercache.Fields) {
	a.L.WithFields(log.Fields(f)).Debug(msg)
}
func (a ApexLogger) Info(msg string, f rendercache.Fields) {
	a.L.WithFields(log.Fields(f)).Info(msg)
}
func (a ApexLogger) Warn(msg string, f rendercache.Fields) {
	a.L.WithFields(log.Fields(f)).Warn(msg)
}
func (a ApexLogger) Error(msg string, f rendercache.Fields) {
	a.L.WithFields(log.Fields(f)).Error(msg)
}
