// Package main demonstrates usage of the scg-anyerror package.
package main

import (
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	anyerr "github.com/next-trace/scg-anyerror/error"
)

type quotaExceeded struct {
	Used, Limit int
}

func (q quotaExceeded) Error() string {
	return fmt.Sprintf("quota exceeded: %d/%d", q.Used, q.Limit)
}

func loadConfig(path string) error {
	if _, err := os.ReadFile(path); err != nil {
		return anyerr.Wrapf(anyerr.Ensure(err), "loading config %s", path)
	}

	return nil
}

func main() {
	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	anyerr.SetLogger(log)

	// Literal and formatted messages are distinct stored types.
	lit := anyerr.Msg("oh no!")
	if _, ok := anyerr.Downcast[anyerr.Formatted](lit); !ok {
		s, _ := anyerr.Downcast[string](lit)
		log.Info("recovered literal", zap.String("value", s))
	}

	// Context over an OS error; the concrete cause stays recoverable.
	cfgErr := anyerr.Ensure(loadConfig("/does/not/exist.yaml"))
	log.Warn("startup degraded", zap.Object("error", cfgErr))
	fmt.Printf("%+v\n", cfgErr)

	if cause, ok := cfgErr.Source().(*anyerr.Error); ok {
		if pe, ok := anyerr.DowncastRef[*fs.PathError](cause); ok {
			log.Info("missing file", zap.String("path", (*pe).Path))
		}
	}

	// Mutate a stored value in place, then take it back out.
	q := anyerr.New(quotaExceeded{Used: 11, Limit: 10})
	anyerr.DowncastMut(q, func(v *quotaExceeded) { v.Used++ })
	log.Info("quota", zap.String("error", q.Error()))

	if v, ok := anyerr.Downcast[quotaExceeded](q); ok {
		log.Info("quota recovered", zap.Int("used", v.Used), zap.Int("limit", v.Limit))
	}

	cfgErr.Drop()
}
