package codec

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/widgetstore/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecs_WidgetWireFormat(t *testing.T) {
	w := model.Widget{
		ID:           uuid.MustParse("6f1c1a52-1d0e-4c38-9a3b-5b8e9f1d2a10"),
		X:            1,
		Y:            -2,
		Z:            3,
		Width:        4,
		Height:       5,
		LastModified: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	want := `{"id":"6f1c1a52-1d0e-4c38-9a3b-5b8e9f1d2a10","x":1,"y":-2,"z":3,"width":4,"height":5,"lastModifiedDate":"2024-01-02T03:04:05Z"}`

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			b, err := c.Marshal(w)
			require.NoError(t, err)
			assert.JSONEq(t, want, string(b))

			var got model.Widget
			require.NoError(t, c.Unmarshal(b, &got))
			assert.Equal(t, w, got)
		})
	}
}

func TestCodecs_PartialUpdate(t *testing.T) {
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			var req model.UpdateRequest
			require.NoError(t, c.Unmarshal([]byte(`{"z":0,"width":9}`), &req))

			require.NotNil(t, req.Z)
			assert.Equal(t, int32(0), *req.Z)
			require.NotNil(t, req.Width)
			assert.Equal(t, int32(9), *req.Width)
			assert.Nil(t, req.X)
			assert.Nil(t, req.Y)
			assert.Nil(t, req.Height)
		})
	}
}

func TestGoJSON_Append(t *testing.T) {
	out, err := GoJSON{}.Append([]byte("prefix:"), map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, `prefix:{"a":1}`, string(out))
}

func TestMustMarshal_DefaultCodec(t *testing.T) {
	assert.Equal(t, `[1,2]`, string(MustMarshal(nil, []int{1, 2})))
	assert.Panics(t, func() { MustMarshal(JSON{}, make(chan int)) })
}
