package squirreljson

import (
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/fse"
	"github.com/klauspost/compress/huff0"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

// Serialize archives a Document into a compact, compressed byte form,
// suitable for a log/document storage engine to keep a cold record's
// already-scanned tape around instead of re-scanning it on the next
// query. This is an optional adapter layered over the tape: nothing in
// the scanner itself depends on it.
//
// The format is three length-prefixed sections: the raw input buffer
// (compressed), the tape's Kind byte stream (FSE-entropy-coded -- Kind
// has ten values and is heavily skewed toward String/Number/Key in real
// documents, which is exactly what FSE is for), and the tape's
// Offset/Length/Jump uint32 streams (huff0-coded together as a byte
// stream over their little-endian encoding, keeping "tags" and "values"
// as separately-coded streams).
func Serialize(d *Document) ([]byte, error) {
	kinds := make([]byte, len(d.Tape.Records))
	values := make([]byte, 0, len(d.Tape.Records)*12)
	for i, r := range d.Tape.Records {
		kinds[i] = byte(r.Kind)
		values = appendUint32(values, r.Offset)
		values = appendUint32(values, r.Length)
		values = appendUint32(values, r.Jump)
	}

	bufComp, err := zstdCompress(d.Buffer)
	if err != nil {
		return nil, fmt.Errorf("squirreljson: compressing buffer: %w", err)
	}
	kindsComp, kindsMode := fseCompress(kinds)
	valuesComp, valuesMode := huff0Compress(values)

	var out []byte
	out = appendSection(out, bufComp)
	out = append(out, byte(len(d.Buffer)>>0), byte(len(d.Buffer)>>8), byte(len(d.Buffer)>>16), byte(len(d.Buffer)>>24))
	out = append(out, kindsMode)
	out = appendSection(out, kindsComp)
	out = appendVarint(out, uint64(len(kinds)))
	out = append(out, valuesMode)
	out = appendSection(out, valuesComp)
	return out, nil
}

// Deserialize reverses Serialize.
func Deserialize(data []byte) (*Document, error) {
	bufComp, rest, err := readSection(data)
	if err != nil {
		return nil, err
	}
	if len(rest) < 4 {
		return nil, fmt.Errorf("squirreljson: truncated archive header")
	}
	bufLen := int(rest[0]) | int(rest[1])<<8 | int(rest[2])<<16 | int(rest[3])<<24
	rest = rest[4:]

	buf, err := zstdDecompress(bufComp, bufLen)
	if err != nil {
		return nil, fmt.Errorf("squirreljson: decompressing buffer: %w", err)
	}

	if len(rest) < 1 {
		return nil, fmt.Errorf("squirreljson: truncated archive")
	}
	kindsMode := rest[0]
	rest = rest[1:]
	kindsComp, rest, err := readSection(rest)
	if err != nil {
		return nil, err
	}
	numRecords, n := readVarint(rest)
	if n <= 0 {
		return nil, fmt.Errorf("squirreljson: truncated record count")
	}
	rest = rest[n:]

	if len(rest) < 1 {
		return nil, fmt.Errorf("squirreljson: truncated archive")
	}
	valuesMode := rest[0]
	rest = rest[1:]
	valuesComp, _, err := readSection(rest)
	if err != nil {
		return nil, err
	}

	kinds, err := fseDecompress(kindsComp, kindsMode, int(numRecords))
	if err != nil {
		return nil, fmt.Errorf("squirreljson: decoding kinds: %w", err)
	}
	values, err := huff0Decompress(valuesComp, valuesMode, int(numRecords)*12)
	if err != nil {
		return nil, fmt.Errorf("squirreljson: decoding values: %w", err)
	}

	records := make([]Record, numRecords)
	for i := range records {
		records[i] = Record{
			Kind:   Kind(kinds[i]),
			Offset: binary.LittleEndian.Uint32(values[i*12:]),
			Length: binary.LittleEndian.Uint32(values[i*12+4:]),
			Jump:   binary.LittleEndian.Uint32(values[i*12+8:]),
		}
	}
	return &Document{Buffer: buf, Tape: Tape{Records: records}}, nil
}

const (
	modeRaw byte = iota
	modeCompressed
)

func fseCompress(src []byte) ([]byte, byte) {
	if len(src) == 0 {
		return src, modeRaw
	}
	s := &fse.Scratch{MaxSymbolValue: 255}
	out, err := fse.Compress(src, s)
	if err != nil || len(out) >= len(src) {
		return src, modeRaw
	}
	return out, modeCompressed
}

func fseDecompress(src []byte, mode byte, n int) ([]byte, error) {
	if mode == modeRaw {
		return src, nil
	}
	s := &fse.Scratch{MaxSymbolValue: 255}
	out, err := fse.Decompress(src, s)
	if err != nil {
		return nil, err
	}
	if len(out) != n {
		return nil, fmt.Errorf("squirreljson: fse decompress length mismatch: got %d want %d", len(out), n)
	}
	return out, nil
}

func huff0Compress(src []byte) ([]byte, byte) {
	if len(src) == 0 {
		return src, modeRaw
	}
	s := &huff0.Scratch{}
	out, _, err := huff0.Compress1X(src, s)
	if err != nil || len(out) >= len(src) {
		return src, modeRaw
	}
	return out, modeCompressed
}

func huff0Decompress(src []byte, mode byte, n int) ([]byte, error) {
	if mode == modeRaw {
		return src, nil
	}
	s := &huff0.Scratch{}
	s.MaxDecodedSize = n
	sc, remain, err := huff0.ReadTable(src, s)
	if err != nil {
		return nil, err
	}
	out, err := sc.Decompress1X(remain)
	if err != nil {
		return nil, err
	}
	return out, nil
}

var zstdDecoder, _ = zstd.NewReader(nil)
var zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest), zstd.WithEncoderCRC(false))

// zstdCompress tries the cheap s2 codec first -- a log record buffer is
// often short enough that zstd's larger window buys nothing -- and only
// pays for a full zstd pass when s2 fails to shrink the input by at least
// a quarter.
func zstdCompress(src []byte) ([]byte, error) {
	s2Out := s2.Encode(make([]byte, s2.MaxEncodedLen(len(src))), src)
	if len(src) == 0 || len(s2Out) <= len(src)-len(src)/4 {
		return append([]byte{blockCodecS2}, s2Out...), nil
	}
	zOut := zstdEncoder.EncodeAll(src, make([]byte, 0, len(s2Out)))
	return append([]byte{blockCodecZstd}, zOut...), nil
}

func zstdDecompress(src []byte, expectedLen int) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}
	codec, body := src[0], src[1:]
	switch codec {
	case blockCodecS2:
		return s2.Decode(make([]byte, 0, expectedLen), body)
	case blockCodecZstd:
		return zstdDecoder.DecodeAll(body, make([]byte, 0, expectedLen))
	default:
		return nil, fmt.Errorf("squirreljson: unknown buffer codec %d", codec)
	}
}

const (
	blockCodecS2 byte = iota
	blockCodecZstd
)

func appendUint32(dst []byte, v uint32) []byte {
	return append(dst, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendSection(dst, section []byte) []byte {
	dst = appendVarint(dst, uint64(len(section)))
	return append(dst, section...)
}

func readSection(data []byte) (section, rest []byte, err error) {
	length, n := readVarint(data)
	if n <= 0 {
		return nil, nil, fmt.Errorf("squirreljson: truncated section length")
	}
	data = data[n:]
	if uint64(len(data)) < length {
		return nil, nil, fmt.Errorf("squirreljson: truncated section body")
	}
	return data[:length], data[length:], nil
}

func appendVarint(dst []byte, v uint64) []byte {
	var buf [10]byte
	n := binary.PutUvarint(buf[:], v)
	return append(dst, buf[:n]...)
}

func readVarint(data []byte) (uint64, int) {
	v, n := binary.Uvarint(data)
	return v, n
}
