package logging

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type redactingCore struct {
	zapcore.Core
	redact RedactFunc
}

// WrapCore returns a core that redacts entries before delegating to core.
// Array, object and reflected fields are rebuilt with every string inside
// them redacted.
func WrapCore(core zapcore.Core, fn RedactFunc) zapcore.Core {
	return &redactingCore{Core: core, redact: fn}
}

func (c *redactingCore) With(fields []zapcore.Field) zapcore.Core {
	return &redactingCore{Core: c.Core.With(c.fields(fields)), redact: c.redact}
}

func (c *redactingCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *redactingCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	ent.Message = c.redact(ent.Message)
	ent.Stack = c.redact(ent.Stack)
	return c.Core.Write(ent, c.fields(fields))
}

func (c *redactingCore) fields(fields []zapcore.Field) []zapcore.Field {
	if len(fields) == 0 {
		return fields
	}
	out := make([]zapcore.Field, len(fields))
	for i, f := range fields {
		switch f.Type {
		case zapcore.StringType:
			f.String = c.redact(f.String)
		case zapcore.ByteStringType:
			if b, ok := f.Interface.([]byte); ok {
				f.Interface = []byte(c.redact(string(b)))
			}
		case zapcore.ErrorType:
			if err, ok := f.Interface.(error); ok && err != nil {
				f = zap.String(f.Key, c.redact(err.Error()))
			}
		case zapcore.StringerType:
			if s, ok := f.Interface.(fmt.Stringer); ok && s != nil {
				f = zap.String(f.Key, c.redact(s.String()))
			}
		case zapcore.ArrayMarshalerType, zapcore.ObjectMarshalerType, zapcore.ReflectType:
			f = c.structured(f)
		}
		out[i] = f
	}
	return out
}

// structured encodes f into plain values, redacts every string in them and
// returns a reflected field with the same key.
func (c *redactingCore) structured(f zapcore.Field) zapcore.Field {
	enc := zapcore.NewMapObjectEncoder()
	f.AddTo(enc)
	v, ok := enc.Fields[f.Key]
	if !ok {
		return f
	}
	if f.Type == zapcore.ReflectType {
		data, err := json.Marshal(v)
		if err != nil {
			return zap.String(f.Key, c.redact(fmt.Sprint(v)))
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return zap.String(f.Key, c.redact(string(data)))
		}
		v = generic
	}
	return zap.Any(f.Key, c.value(v))
}

func (c *redactingCore) value(v any) any {
	switch x := v.(type) {
	case string:
		return c.redact(x)
	case []byte:
		return c.redact(string(x))
	case error:
		return c.redact(x.Error())
	case fmt.Stringer:
		return c.redact(x.String())
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = c.value(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = c.value(e)
		}
		return out
	default:
		return v
	}
}
