package identify

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser(logs *bytes.Buffer) *Parser {
	return NewParser(zerolog.New(logs))
}

func TestParseProperties(t *testing.T) {
	p := newTestParser(new(bytes.Buffer))

	m := p.Parse("type=local,index=2,name=nvme-600G-2")

	require.Equal(t, 3, m.Len())
	assert.Equal(t, []Property{
		{Key: "type", Value: "local"},
		{Key: "index", Value: int64(2)},
		{Key: "name", Value: "nvme-600G-2"},
	}, m.Properties())
}

func TestParsePropertiesEmpty(t *testing.T) {
	p := newTestParser(new(bytes.Buffer))

	assert.Equal(t, 0, p.Parse("").Len())
	assert.Equal(t, 0, p.Parse(",").Len())

	m := p.Parse("a=1,,b=2")
	assert.Equal(t, 2, m.Len())
}

func TestParsePropertiesMalformedPair(t *testing.T) {
	var logs bytes.Buffer
	p := newTestParser(&logs)

	m := p.Parse("type=local,index=2,name")

	require.Equal(t, 2, m.Len())
	_, ok := m.Get("type")
	assert.True(t, ok)
	_, ok = m.Get("index")
	assert.True(t, ok)
	_, ok = m.Get("name")
	assert.False(t, ok)

	assert.Contains(t, logs.String(), "failed to parse key-value pair")
	assert.Contains(t, logs.String(), `"pair":"name"`)
}

func TestParsePropertiesIntPromotion(t *testing.T) {
	p := newTestParser(new(bytes.Buffer))

	tests := []struct {
		vs    string
		key   string
		value interface{}
	}{
		{"lun=0", "lun", int64(0)},
		{"lun=7", "lun", int64(7)},
		{"lun=-1", "lun", int64(-1)},
		{"index=+3", "index", int64(3)},
		{"type=local", "type", "local"},
		{"name=nvme-600G-2", "name", "nvme-600G-2"},
		{"mixed=12ab", "mixed", "12ab"},
		{"empty=", "empty", ""},
	}

	for _, tt := range tests {
		m := p.Parse(tt.vs)
		value, ok := m.Get(tt.key)
		require.True(t, ok, "vs %q", tt.vs)
		assert.Equal(t, tt.value, value, "vs %q", tt.vs)
	}
}

func TestParsePropertiesIntOverflow(t *testing.T) {
	var logs bytes.Buffer
	p := newTestParser(&logs)

	vs := "index=99999999999999999999"
	m := p.Parse(vs)

	value, ok := m.Get("index")
	require.True(t, ok)
	assert.Equal(t, "99999999999999999999", value)

	assert.Contains(t, logs.String(), "failed to parse value as int")
	assert.Contains(t, logs.String(), `"key":"index"`)
	assert.Contains(t, logs.String(), `"value":"99999999999999999999"`)
}

func TestParsePropertiesDuplicateKey(t *testing.T) {
	p := newTestParser(new(bytes.Buffer))

	m := p.Parse("a=1,b=2,a=3")

	require.Equal(t, 2, m.Len())
	assert.Equal(t, "a", m.Properties()[0].Key)
	value, _ := m.Get("a")
	assert.Equal(t, int64(3), value)
}

func TestPropertyMapMarshalJSON(t *testing.T) {
	var m PropertyMap
	m.Set("type", "local")
	m.Set("index", int64(2))
	m.Set("name", "nvme-600G-2")

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"local","index":2,"name":"nvme-600G-2"}`, string(out))
}

func TestPropertyMapMarshalJSONEmpty(t *testing.T) {
	out, err := json.Marshal(PropertyMap{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}
