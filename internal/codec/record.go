// Package codec implements the on-disk encoding for a single log record:
// a fixed type byte, two varint length fields, the raw key and value bytes,
// and a trailing CRC32 checksum over everything that precedes it.
//
//	+------+----------+------------+----------+-------+---------+
//	| type |  keylen  |   vallen   |  key...  | val.. |  crc32  |
//	|  u8  | varint32 |  varint32  |  bytes   | bytes |  u32 LE |
//	+------+----------+------------+----------+-------+---------+
//
// The layout is self-delimiting: decoding the header alone is enough to
// know how many more bytes the full record occupies, which lets callers
// read a record in two phases without first knowing its length.
package codec

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
)

// RecordType identifies whether a record carries a live value or marks a
// key as deleted.
type RecordType byte

const (
	// RecordNormal is a live key/value record.
	RecordNormal RecordType = 1
	// RecordDeleted is a tombstone; its Value is unused.
	RecordDeleted RecordType = 2
)

// crcSize is the width of the trailing checksum field.
const crcSize = 4

// MaxHeaderSize is the largest a type+keylen+vallen header can be: one type
// byte plus two u32 varints at their maximum encoded width.
const MaxHeaderSize = 1 + binary.MaxVarintLen32*2

// ErrCorrupted is returned whenever a record's bytes fail to decode: a
// malformed varint, a header/body that runs past the supplied buffer, or a
// checksum mismatch.
var ErrCorrupted = errors.New("codec: corrupted record")

// Record is the decoded, in-memory form of one log entry.
type Record struct {
	Key   []byte
	Value []byte
	Type  RecordType
}

// Header is the result of parsing a record's leading bytes without reading
// its key/value payload.
type Header struct {
	Type      RecordType
	KeySize   uint32
	ValueSize uint32
	// Len is the number of header bytes consumed (type + both varints).
	Len int
}

// BodyLen returns the number of bytes the key, value, and trailing checksum
// occupy after the header — i.e. how many more bytes a caller must read
// once it has decoded the header.
func (h Header) BodyLen() int {
	return int(h.KeySize) + int(h.ValueSize) + crcSize
}

// RecordLen returns the total encoded length of a record described by this
// header, header included.
func (h Header) RecordLen() int {
	return h.Len + h.BodyLen()
}

// Encode produces the full on-disk byte form of r. The result is
// self-delimiting: DecodeHeader applied to a prefix of it reports exactly
// how many trailing bytes Decode needs.
func Encode(r *Record) []byte {
	header := make([]byte, MaxHeaderSize)
	header[0] = byte(r.Type)
	n := 1
	n += binary.PutUvarint(header[n:], uint64(len(r.Key)))
	n += binary.PutUvarint(header[n:], uint64(len(r.Value)))

	total := n + len(r.Key) + len(r.Value) + crcSize
	buf := make([]byte, total)
	copy(buf, header[:n])
	copy(buf[n:], r.Key)
	copy(buf[n+len(r.Key):], r.Value)

	crc := crc32.ChecksumIEEE(buf[:n+len(r.Key)+len(r.Value)])
	binary.LittleEndian.PutUint32(buf[total-crcSize:], crc)

	return buf
}

// DecodeHeader parses the type byte and the two length varints from the
// front of buf. It requires only as many bytes as the header actually
// occupies, so callers can pass a short, fixed-size read-ahead buffer
// (e.g. MaxHeaderSize bytes, or fewer near EOF) rather than the whole
// record.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < 1 {
		return Header{}, ErrCorrupted
	}

	recType := RecordType(buf[0])
	if recType != RecordNormal && recType != RecordDeleted {
		return Header{}, ErrCorrupted
	}

	n := 1
	keySize, kn := binary.Uvarint(buf[n:])
	if kn <= 0 {
		return Header{}, ErrCorrupted
	}
	n += kn

	valSize, vn := binary.Uvarint(buf[n:])
	if vn <= 0 {
		return Header{}, ErrCorrupted
	}
	n += vn

	return Header{Type: recType, KeySize: uint32(keySize), ValueSize: uint32(valSize), Len: n}, nil
}

// Decode parses a complete record from buf, which must contain exactly one
// record's worth of bytes (header, key, value, and checksum), and verifies
// its CRC. A bit flip anywhere in buf is detected here, with near-certainty,
// as a checksum mismatch. A NORMAL record always decodes with a non-nil
// Value, empty when its value is zero-length; a DELETED record with no value
// decodes with a nil Value.
func Decode(buf []byte) (*Record, error) {
	header, err := DecodeHeader(buf)
	if err != nil {
		return nil, err
	}

	want := header.RecordLen()
	if len(buf) < want {
		return nil, ErrCorrupted
	}

	body := buf[header.Len : want-crcSize]
	key := body[:header.KeySize]
	value := body[header.KeySize:]

	gotCRC := crc32.ChecksumIEEE(buf[:want-crcSize])
	wantCRC := binary.LittleEndian.Uint32(buf[want-crcSize : want])
	if gotCRC != wantCRC {
		return nil, ErrCorrupted
	}

	rec := &Record{
		Type: header.Type,
		Key:  append([]byte(nil), key...),
	}
	if header.Type == RecordNormal || len(value) > 0 {
		rec.Value = append([]byte{}, value...)
	}
	return rec, nil
}
