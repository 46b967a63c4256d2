package adaptors

type LogLevel string

const (
	Trace LogLevel = "trace"
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
)

// Valid reports whether l is one of the supported levels.
func (l LogLevel) Valid() bool {
	switch l {
	case Trace, Debug, Info, Warn, Error:
		return true
	}
	return false
}
