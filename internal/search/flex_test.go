package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexValue_Int(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{`270`, 270},
		{`""`, 0},
		{`"12"`, 0},
		{`null`, 0},
		{`-5`, 0},
		{`1.5`, 0},
		{`true`, 0},
		{`{"a":1}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var v FlexValue
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &v))
			assert.Equal(t, tt.want, v.Int())
		})
	}
}

func TestFlexValue_Kinds(t *testing.T) {
	var holder struct {
		A FlexValue `json:"a"`
		B FlexValue `json:"b"`
		C FlexValue `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":null,"b":false}`), &holder))

	assert.Equal(t, FlexNull, holder.A.Kind)
	assert.False(t, holder.A.Present())
	assert.Equal(t, FlexBool, holder.B.Kind)
	assert.True(t, holder.B.Present())
	assert.Equal(t, FlexAbsent, holder.C.Kind)
}

func TestFlexValue_MarshalPreservesShape(t *testing.T) {
	var holder struct {
		A FlexValue `json:"a"`
		B FlexValue `json:"b"`
		C FlexValue `json:"c"`
		D FlexValue `json:"d"`
	}
	in := `{"a":270,"b":"","c":[1,2],"d":true}`
	require.NoError(t, json.Unmarshal([]byte(in), &holder))

	out, err := json.Marshal(holder)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}
