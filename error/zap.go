package error

import (
	"go.uber.org/zap/zapcore"
)

var _ zapcore.ObjectMarshaler = (*Error)(nil)

// MarshalLogObject lets a handle be logged with zap.Object. It writes the
// stored type, the message and, when present, the messages of the cause
// chain.
func (e *Error) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", e.TypeName())
	enc.AddString("message", e.Error())

	causes := e.causes()
	if len(causes) == 0 {
		return nil
	}

	return enc.AddArray("causes", zapcore.ArrayMarshalerFunc(func(ae zapcore.ArrayEncoder) error {
		for _, c := range causes {
			ae.AppendString(c)
		}

		return nil
	}))
}
