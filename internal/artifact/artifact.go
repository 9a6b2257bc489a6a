// Package artifact reads and writes the on-disk benchmark artifacts.
// Payload encoding is chosen by file extension through the serializer
// registry, so the same layout can hold JSON, msgpack, or CBOR artifacts.
package artifact

import (
	"os"
	"path/filepath"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchplot/internal/libs/serializer"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// serializerTypeFor maps an artifact extension to a registry serializer type.
func serializerTypeFor(ext string) (string, bool) {
	switch ext {
	case ".json":
		return "default", true
	case ".msgpack":
		return "msgpack", true
	case ".cbor":
		return "cbor", true
	default:
		return "", false
	}
}

// Load decodes the artifact at path into a value of type T. It reports
// ok=false instead of an error when the file is missing, the extension is
// unknown, or the payload does not decode; callers skip such entries.
func Load[T any](path string) (value T, ok bool) {
	serializerType, ok := serializerTypeFor(filepath.Ext(path))
	if !ok {
		return value, false
	}

	ser, err := serializer.New(serializerType)
	if err != nil {
		return value, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return value, false
	}

	err = ser.Unmarshal(data, &value)
	if err != nil {
		var zero T

		return zero, false
	}

	return value, true
}

// Store encodes the value with the serializer matching the path extension and
// writes it to path.
func Store(path string, value any) error {
	serializerType, ok := serializerTypeFor(filepath.Ext(path))
	if !ok {
		return ewrap.Newf("no serializer for artifact %q", path)
	}

	ser, err := serializer.New(serializerType)
	if err != nil {
		return err
	}

	data, err := ser.Marshal(value)
	if err != nil {
		return err
	}

	err = os.WriteFile(path, data, filePerm)
	if err != nil {
		return ewrap.Wrapf(err, "writing artifact %q", path)
	}

	return nil
}

// MkdirP creates the directory and any missing parents.
func MkdirP(path string) error {
	err := os.MkdirAll(path, dirPerm)
	if err != nil {
		return ewrap.Wrapf(err, "creating directory %q", path)
	}

	return nil
}
