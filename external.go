package squirreljson

import (
	"fmt"
	"unicode/utf8"

	"github.com/bytedance/sonic"
)

// ToExternalValue fully decodes the subtree rooted at v into ordinary Go
// values (map[string]interface{}, []interface{}, string, float64, bool,
// nil), performing string unescaping and number parsing. It is an
// optional adapter over the tape -- the core scanner never does this work
// unless asked.
func (v View) ToExternalValue() (interface{}, error) {
	return v.toExternal(false)
}

// ToExternalValueWithOptions behaves like ToExternalValue, additionally
// honoring ScanOptions.CopyStrings for the strings it decodes.
func (v View) ToExternalValueWithOptions(opts ScanOptions) (interface{}, error) {
	return v.toExternal(opts.CopyStrings)
}

func (v View) toExternal(copyStrings bool) (interface{}, error) {
	switch v.Kind() {
	case ObjectBegin:
		m := make(map[string]interface{})
		it, err := v.AsObject()
		if err != nil {
			return nil, err
		}
		for {
			key, val, ok := it.Next()
			if !ok {
				break
			}
			decodedKey, err := unescapeJSONString(key)
			if err != nil {
				return nil, fmt.Errorf("squirreljson: decoding object key: %w", err)
			}
			dv, err := val.toExternal(copyStrings)
			if err != nil {
				return nil, err
			}
			m[decodedKey] = dv
		}
		return m, nil
	case ArrayBegin:
		arr := []interface{}{}
		it, err := v.AsArray()
		if err != nil {
			return nil, err
		}
		for {
			val, ok := it.Next()
			if !ok {
				break
			}
			dv, err := val.toExternal(copyStrings)
			if err != nil {
				return nil, err
			}
			arr = append(arr, dv)
		}
		return arr, nil
	case String:
		raw := v.OwnedBytes(copyStrings)
		inner := raw[1 : len(raw)-1]
		return unescapeJSONString(inner)
	case Number:
		var f float64
		if err := sonic.Unmarshal(v.RawBytes(), &f); err != nil {
			return nil, fmt.Errorf("squirreljson: decoding number %q: %w", v.RawBytes(), err)
		}
		return f, nil
	case True:
		return true, nil
	case False:
		return false, nil
	case Null:
		return nil, nil
	default:
		return nil, fmt.Errorf("squirreljson: cannot decode a %s view as a value", v.Kind())
	}
}

// unescapeJSONString decodes JSON escape sequences in raw (the string's
// content, with the surrounding quotes already stripped), including
// \uXXXX and UTF-16 surrogate pairs. Decoding \uXXXX escapes is left to
// this layer rather than the scanner: the scanner only locates strings,
// it never interprets their content.
//
// An unpaired high surrogate, or a low surrogate not immediately
// following a high surrogate, is emitted as the Unicode replacement
// character instead of failing the whole decode, a deliberately lenient
// choice for this reader/adapter layer.
func unescapeJSONString(raw []byte) (string, error) {
	if indexByte(raw, '\\') == -1 {
		return string(raw), nil
	}

	out := make([]byte, 0, len(raw))
	i := 0
	for i < len(raw) {
		b := raw[i]
		if b != '\\' {
			out = append(out, b)
			i++
			continue
		}
		if i+1 >= len(raw) {
			return "", fmt.Errorf("squirreljson: dangling escape at end of string")
		}
		esc := raw[i+1]
		switch esc {
		case '"':
			out = append(out, '"')
			i += 2
		case '\\':
			out = append(out, '\\')
			i += 2
		case '/':
			out = append(out, '/')
			i += 2
		case 'b':
			out = append(out, '\b')
			i += 2
		case 'f':
			out = append(out, '\f')
			i += 2
		case 'n':
			out = append(out, '\n')
			i += 2
		case 'r':
			out = append(out, '\r')
			i += 2
		case 't':
			out = append(out, '\t')
			i += 2
		case 'u':
			r, consumed, err := decodeUnicodeEscape(raw[i:])
			if err != nil {
				return "", err
			}
			var buf [utf8.UTFMax]byte
			n := utf8.EncodeRune(buf[:], r)
			out = append(out, buf[:n]...)
			i += consumed
		default:
			return "", fmt.Errorf("squirreljson: invalid escape sequence \\%c", esc)
		}
	}
	return string(out), nil
}

// decodeUnicodeEscape decodes a leading \uXXXX (and, if it forms a
// surrogate pair with a following \uXXXX, both of them) from s, returning
// the rune and the number of input bytes it consumed.
func decodeUnicodeEscape(s []byte) (rune, int, error) {
	r, err := parseHex4(s)
	if err != nil {
		return 0, 0, err
	}
	if !isHighSurrogate(r) {
		return rune(r), 6, nil
	}
	if len(s) < 12 || s[6] != '\\' || s[7] != 'u' {
		return utf8.RuneError, 6, nil
	}
	low, err := parseHex4(s[6:])
	if err != nil {
		return utf8.RuneError, 6, nil
	}
	if !isLowSurrogate(low) {
		return utf8.RuneError, 6, nil
	}
	combined := 0x10000 + (rune(r)-0xD800)*0x400 + (rune(low) - 0xDC00)
	return combined, 12, nil
}

func parseHex4(s []byte) (uint16, error) {
	if len(s) < 6 {
		return 0, fmt.Errorf("squirreljson: truncated \\u escape")
	}
	var v uint16
	for i := 2; i < 6; i++ {
		c := s[i]
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= uint16(c - '0')
		case c >= 'a' && c <= 'f':
			v |= uint16(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= uint16(c-'A') + 10
		default:
			return 0, fmt.Errorf("squirreljson: invalid hex digit %q in \\u escape", c)
		}
	}
	return v, nil
}

func isHighSurrogate(r uint16) bool { return r >= 0xD800 && r <= 0xDBFF }
func isLowSurrogate(r uint16) bool  { return r >= 0xDC00 && r <= 0xDFFF }

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

// MarshalJSONBuffer re-serializes the subtree rooted at v back into
// minified JSON, appending to dst. This is an optional layer over the
// tape rather than part of the core contract: the tape itself does not
// retain separator bytes, so this walks the tape structure and
// regenerates them.
func (v View) MarshalJSONBuffer(dst []byte) ([]byte, error) {
	return v.marshalInto(dst)
}

func (v View) marshalInto(dst []byte) ([]byte, error) {
	switch v.Kind() {
	case ObjectBegin:
		dst = append(dst, '{')
		it, err := v.AsObject()
		if err != nil {
			return nil, err
		}
		first := true
		for {
			key, val, ok := it.Next()
			if !ok {
				break
			}
			if !first {
				dst = append(dst, ',')
			}
			first = false
			dst = append(dst, '"')
			dst = append(dst, key...)
			dst = append(dst, '"', ':')
			dst, err = val.marshalInto(dst)
			if err != nil {
				return nil, err
			}
		}
		dst = append(dst, '}')
	case ArrayBegin:
		dst = append(dst, '[')
		it, err := v.AsArray()
		if err != nil {
			return nil, err
		}
		first := true
		for {
			val, ok := it.Next()
			if !ok {
				break
			}
			if !first {
				dst = append(dst, ',')
			}
			first = false
			dst, err = val.marshalInto(dst)
			if err != nil {
				return nil, err
			}
		}
		dst = append(dst, ']')
	case String, Number, True, False, Null:
		dst = append(dst, v.RawBytes()...)
	default:
		return nil, fmt.Errorf("squirreljson: cannot marshal a %s view", v.Kind())
	}
	return dst, nil
}
