// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and aznvme contributors
//
// SPDX-License-Identifier: Apache-2.0

package identify

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Property is one key/value pair of a classification string. Value is
// either int64 or string.
type Property struct {
	Key   string
	Value interface{}
}

// PropertyMap holds the pairs of a classification string in insertion
// order. Keys are unique; setting an existing key overwrites its value in
// place.
type PropertyMap struct {
	props []Property
}

func (m *PropertyMap) Set(key string, value interface{}) {
	for i := range m.props {
		if m.props[i].Key == key {
			m.props[i].Value = value
			return
		}
	}
	m.props = append(m.props, Property{Key: key, Value: value})
}

func (m *PropertyMap) Get(key string) (interface{}, bool) {
	for _, p := range m.props {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

func (m *PropertyMap) Len() int {
	return len(m.props)
}

// Properties returns the pairs in insertion order.
func (m *PropertyMap) Properties() []Property {
	return m.props
}

// MarshalJSON renders the map as a JSON object, preserving insertion order
// and value types.
func (m PropertyMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range m.props {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Parser tokenizes classification strings into property maps.
type Parser struct {
	log zerolog.Logger
}

func NewParser(logger zerolog.Logger) *Parser {
	return &Parser{log: logger}
}

var signedDigits = regexp.MustCompile(`^[+-]?[0-9]+$`)

// Parse splits a classification string of the form key1=value1,key2=value2
// into an ordered property map. A pair without '=' is dropped with a
// diagnostic; the remaining pairs survive. Empty pairs are skipped.
func (p *Parser) Parse(vs string) PropertyMap {
	var m PropertyMap
	if vs == "" {
		return m
	}

	for _, pair := range strings.Split(vs, ",") {
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		if !found {
			p.log.Warn().Str("vs", vs).Str("pair", pair).Msg("failed to parse key-value pair")
			continue
		}
		m.Set(key, p.parseValue(vs, key, value))
	}

	return m
}

// parseValue promotes values consisting solely of decimal digits (optional
// sign) to int64. A digits-only value that still fails conversion keeps the
// string and is reported.
func (p *Parser) parseValue(vs, key, value string) interface{} {
	if !signedDigits.MatchString(value) {
		return value
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		p.log.Warn().Str("vs", vs).Str("key", key).Str("value", value).Msg("failed to parse value as int")
		return value
	}
	return n
}
