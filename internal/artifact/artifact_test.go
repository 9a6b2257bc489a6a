package artifact_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/benchplot/internal/artifact"
)

type payload struct {
	Iters []float64 `json:"iters"`
	Times []float64 `json:"times"`
}

func TestStoreAndLoad(t *testing.T) {
	dir := t.TempDir()

	in := payload{
		Iters: []float64{1, 2, 4},
		Times: []float64{100, 210, 430},
	}

	for _, ext := range []string{".json", ".msgpack", ".cbor"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "sample"+ext)

			err := artifact.Store(path, in)
			assert.Nil(t, err)

			out, ok := artifact.Load[payload](path)
			assert.True(t, ok)
			assert.Equal(t, in.Iters, out.Iters)
			assert.Equal(t, in.Times, out.Times)
		})
	}
}

func TestLoad_SkipsBrokenArtifacts(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		prep func(t *testing.T) string
	}{
		{
			name: "missing file",
			prep: func(_ *testing.T) string {
				return filepath.Join(dir, "absent.json")
			},
		},
		{
			name: "unknown extension",
			prep: func(t *testing.T) string {
				path := filepath.Join(dir, "sample.xml")
				err := os.WriteFile(path, []byte("<sample/>"), 0o644)
				assert.Nil(t, err)

				return path
			},
		},
		{
			name: "malformed payload",
			prep: func(t *testing.T) string {
				path := filepath.Join(dir, "broken.json")
				err := os.WriteFile(path, []byte("{not json"), 0o644)
				assert.Nil(t, err)

				return path
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, ok := artifact.Load[payload](test.prep(t))
			assert.False(t, ok)
		})
	}
}

func TestMkdirP(t *testing.T) {
	dir := t.TempDir()

	nested := filepath.Join(dir, "group", "summary", "new")
	err := artifact.MkdirP(nested)
	assert.Nil(t, err)

	info, err := os.Stat(nested)
	assert.Nil(t, err)
	assert.True(t, info.IsDir())

	// Creating an existing directory is a no-op.
	assert.Nil(t, artifact.MkdirP(nested))
}
