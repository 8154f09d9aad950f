package jsontext

import (
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/temple-api/internal/observability"
)

func ptr[T any](v T) *T { return &v }

func TestRoundTrip_DeepEqual(t *testing.T) {
	t.Parallel()

	docs := []string{
		`{"name":"王小明","phone":"0912","tags":["a","b"]}`,
		`[1,2.5,-3,1e10,12345678901234567890]`,
		`"plain string"`,
		`true`,
		`0`,
		`{"nested":{"deep":[{"x":null}]},"empty":{}}`,
		`[]`,
	}

	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			t.Parallel()

			var in any
			require.NoError(t, json.Unmarshal([]byte(doc), &in))

			encoded, err := Encode(json.RawMessage(doc))
			require.NoError(t, err)

			stored, err := encoded.Value()
			require.NoError(t, err)

			var loaded Value
			require.NoError(t, loaded.Scan(stored))

			var out any
			require.NoError(t, loaded.Unmarshal(&out))
			assert.Equal(t, in, out)
		})
	}
}

func TestEncode_Canonical(t *testing.T) {
	t.Parallel()

	v, err := Encode(json.RawMessage(`{ "b": 1,  "a": [ 1, 2 ] }`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,2],"b":1}`, v.String())
}

func TestEncode_NilIsAbsent(t *testing.T) {
	t.Parallel()

	v, err := Encode(nil)
	require.NoError(t, err)
	assert.False(t, v.Present())

	stored, err := v.Value()
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestScan_Null(t *testing.T) {
	t.Parallel()

	v := Value(`{"x":1}`)
	require.NoError(t, v.Scan(nil))
	assert.False(t, v.Present())
}

func TestScan_MalformedDegradesToAbsent(t *testing.T) {
	before := testutil.ToFloat64(observability.JSONTextMalformed)

	var v Value
	require.NoError(t, v.Scan("{not json"))
	assert.False(t, v.Present())

	require.NoError(t, v.Scan([]byte(`{"ok":`)))
	assert.False(t, v.Present())

	assert.Equal(t, before+2, testutil.ToFloat64(observability.JSONTextMalformed))
}

func TestScan_UnsupportedType(t *testing.T) {
	t.Parallel()

	var v Value
	assert.Error(t, v.Scan(42))
}

func TestDecode(t *testing.T) {
	t.Parallel()

	assert.False(t, Decode(nil).Present())
	assert.False(t, Decode(ptr("nope")).Present())
	assert.Equal(t, `{"a":1}`, Decode(ptr(`{"a":1}`)).String())
}

func TestMarshalJSON_InStruct(t *testing.T) {
	t.Parallel()

	type row struct {
		Contact Value `json:"contact,omitempty"`
		Items   Value `json:"items"`
	}

	out, err := json.Marshal(row{Items: Value(`[1]`)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[1]}`, string(out))

	out, err = json.Marshal(row{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":null}`, string(out))
}

func TestUnmarshalJSON(t *testing.T) {
	t.Parallel()

	var body struct {
		Contact Value `json:"contact"`
		Items   Value `json:"items"`
		Memo    Value `json:"memo"`
	}
	err := json.Unmarshal([]byte(`{"contact":{"z":1, "a":2},"items":null}`), &body)
	require.NoError(t, err)

	assert.Equal(t, `{"a":2,"z":1}`, body.Contact.String())
	assert.False(t, body.Items.Present())
	assert.False(t, body.Memo.Present())
}
