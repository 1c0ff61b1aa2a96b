/*
 * metadata.go, part of gotraj
 *
 * Copyright 2026 The gotraj developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package traj

import (
	"strconv"
	"strings"
	"unicode"
)

// Value is the closed value type held by frame metadata: a number or a
// string, nothing else. The zero Value is the empty string.
type Value struct {
	num   float64
	str   string
	isNum bool
}

// Num returns a numeric Value.
func Num(v float64) Value { return Value{num: v, isNum: true} }

// Str returns a string Value.
func Str(s string) Value { return Value{str: s} }

//IsNumber reports whether the value is numeric
func (v Value) IsNumber() bool { return v.isNum }

//Number returns the numeric value, or 0 for string values
func (v Value) Number() float64 { return v.num }

func (v Value) String() string {
	if v.isNum {
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	}
	return v.str
}

// Metadata is an insertion-ordered map of string keys to Values, holding
// the per-frame key=value properties of a trajectory frame. Keys keep the
// position of their first Set; setting an existing key updates it in
// place. The zero Metadata is empty and ready to use. Frames are never
// mutated after decoding, so a Metadata obtained from a Frame must be
// treated as read-only.
type Metadata struct {
	keys []string
	m    map[string]Value
}

//Set adds or replaces the value for key
func (md *Metadata) Set(key string, v Value) {
	if md.m == nil {
		md.m = make(map[string]Value)
	}
	if _, ok := md.m[key]; !ok {
		md.keys = append(md.keys, key)
	}
	md.m[key] = v
}

//Get returns the value for key and whether it was present
func (md Metadata) Get(key string) (Value, bool) {
	v, ok := md.m[key]
	return v, ok
}

//Keys returns the keys in first-insertion order. The slice is shared with
//the Metadata and must not be modified.
func (md Metadata) Keys() []string { return md.keys }

//Len returns the number of keys
func (md Metadata) Len() int { return len(md.keys) }

//Numbers returns the numeric entries as a fresh plain map
func (md Metadata) Numbers() map[string]float64 {
	out := make(map[string]float64, len(md.keys))
	for _, k := range md.keys {
		if v := md.m[k]; v.isNum {
			out[k] = v.num
		}
	}
	return out
}

// String formats the metadata back into a comment line, inverse to
// ParseAttrs: numbers in shortest form, strings with spaces double-quoted,
// keys with empty string values emitted bare.
func (md Metadata) String() string {
	var b strings.Builder
	for i, k := range md.keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		v := md.m[k]
		if !v.isNum && v.str == "" {
			continue
		}
		b.WriteByte('=')
		if !v.isNum && strings.ContainsRune(v.str, ' ') {
			b.WriteByte('"')
			b.WriteString(v.str)
			b.WriteByte('"')
			continue
		}
		b.WriteString(v.String())
	}
	return b.String()
}

// ParseAttrs parses a frame comment line as space-separated key=value
// pairs. A double-quoted value may contain spaces and always stays a
// string; an unquoted value becomes a number when it parses as a float. A
// token without '=' is kept as a bare key with an empty string value.
// Malformed input never fails, it just yields fewer keys.
func ParseAttrs(line string) Metadata {
	var md Metadata
	for _, tok := range splitQuoted(line) {
		eq := strings.IndexByte(tok, '=')
		if eq < 0 {
			md.Set(tok, Str(""))
			continue
		}
		key, val := tok[:eq], tok[eq+1:]
		if key == "" {
			continue
		}
		if len(val) >= 2 && val[0] == '"' && val[len(val)-1] == '"' {
			md.Set(key, Str(val[1:len(val)-1]))
			continue
		}
		if n, err := strconv.ParseFloat(val, 64); err == nil {
			md.Set(key, Num(n))
			continue
		}
		md.Set(key, Str(val))
	}
	return md
}

//splitQuoted splits on runs of spaces, keeping double-quoted regions,
//quotes included, inside a single token.
func splitQuoted(line string) []string {
	var toks []string
	var b strings.Builder
	quoted := false
	flush := func() {
		if b.Len() > 0 {
			toks = append(toks, b.String())
			b.Reset()
		}
	}
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			b.WriteRune(r)
		case unicode.IsSpace(r) && !quoted:
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return toks
}
