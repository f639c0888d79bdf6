package ports

import (
	"time"

	"github.com/bft-labs/pdfship/pkg/log"
)

// Logger is the structured logging facade injected into every component.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

// Field constructors, re-exported so adapters only import ports.

func String(key, value string) Field {
	return log.String(key, value)
}

func Strings(key string, value []string) Field {
	return log.Strings(key, value)
}

func Int(key string, value int) Field {
	return log.Int(key, value)
}

func Int64(key string, value int64) Field {
	return log.Int64(key, value)
}

func Bool(key string, value bool) Field {
	return log.Bool(key, value)
}

func Duration(key string, value time.Duration) Field {
	return log.Duration(key, value)
}

func Err(err error) Field {
	return log.Err(err)
}
