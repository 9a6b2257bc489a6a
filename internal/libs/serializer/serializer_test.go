package serializer_test

import (
	"errors"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/benchplot/internal/libs/serializer"
	"github.com/hyp3rd/benchplot/internal/sentinel"
)

func TestRegistry_New(t *testing.T) {
	tests := []struct {
		name           string
		serializerType string
		expectedErr    error
	}{
		{
			name:           "default serializer",
			serializerType: "default",
			expectedErr:    nil,
		},
		{
			name:           "msgpack serializer",
			serializerType: "msgpack",
			expectedErr:    nil,
		},
		{
			name:           "cbor serializer",
			serializerType: "cbor",
			expectedErr:    nil,
		},
		{
			name:           "unknown serializer",
			serializerType: "xml",
			expectedErr:    sentinel.ErrSerializerNotFound,
		},
		{
			name:           "empty serializer type",
			serializerType: "",
			expectedErr:    sentinel.ErrParamCannotBeEmpty,
		},
	}

	registry := serializer.NewSerializerRegistry()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ser, err := registry.New(test.serializerType)
			if test.expectedErr != nil {
				assert.True(t, errors.Is(err, test.expectedErr))

				return
			}

			assert.Nil(t, err)
			assert.True(t, ser != nil)
		})
	}
}

func TestRegistry_RoundTrip(t *testing.T) {
	type sample struct {
		Iters []float64 `json:"iters"`
		Times []float64 `json:"times"`
	}

	in := sample{
		Iters: []float64{1, 2, 3},
		Times: []float64{10.5, 20.25, 31.75},
	}

	for _, serializerType := range []string{"default", "msgpack", "cbor"} {
		t.Run(serializerType, func(t *testing.T) {
			ser, err := serializer.New(serializerType)
			assert.Nil(t, err)

			data, err := ser.Marshal(in)
			assert.Nil(t, err)
			assert.True(t, len(data) > 0)

			var out sample

			err = ser.Unmarshal(data, &out)
			assert.Nil(t, err)
			assert.Equal(t, in.Iters, out.Iters)
			assert.Equal(t, in.Times, out.Times)
		})
	}
}
