package log

import "time"

// Field is a single structured logging attribute.
type Field struct {
	Key   string
	Value any
}

// F builds a Field from an arbitrary value.
func F(key string, value any) Field { return Field{Key: key, Value: value} }

// Str builds a string Field.
func Str(key, value string) Field { return Field{Key: key, Value: value} }

// Int builds an int Field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 builds an int64 Field.
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Dur builds a duration Field.
func Dur(key string, value time.Duration) Field { return Field{Key: key, Value: value.String()} }

// Err builds an error Field under the key "error".
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Component tags a logger with the component emitting the entry.
func Component(name string) Field { return Field{Key: "component", Value: name} }
