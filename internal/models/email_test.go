package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalInt_Decode(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		value int
		valid bool
	}{
		{"integer", `7`, 7, true},
		{"float truncates", `3.9`, 3, true},
		{"numeric string", `" 5 "`, 5, true},
		{"garbage string", `"urgent"`, 0, false},
		{"null", `null`, 0, false},
		{"object", `{"a":1}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o OptionalInt
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &o))
			assert.Equal(t, tt.value, o.Value)
			assert.Equal(t, tt.valid, o.Valid)
		})
	}
}

func TestByteSize_Decode(t *testing.T) {
	var s ByteSize
	require.NoError(t, json.Unmarshal([]byte(`2048`), &s))
	assert.Equal(t, ByteSize(2048), s)

	require.NoError(t, json.Unmarshal([]byte(`-100`), &s))
	assert.Equal(t, ByteSize(0), s, "negative sizes coerce to 0")

	require.NoError(t, json.Unmarshal([]byte(`"big"`), &s))
	assert.Equal(t, ByteSize(0), s, "malformed sizes coerce to 0")
}

func TestEmail_DecodeMalformedFields(t *testing.T) {
	var email Email
	err := json.Unmarshal([]byte(`{
		"id": "msg-1",
		"sender": "bob@x.com",
		"priority": [],
		"attachments": "none"
	}`), &email)
	require.NoError(t, err, "malformed optional fields must not fail the record")

	assert.Equal(t, "msg-1", email.ID)
	assert.False(t, email.Priority.Valid)
	assert.Nil(t, email.Attachments)
}
