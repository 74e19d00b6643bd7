// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

import (
	"encoding/binary"
	"errors"
	"math/bits"
)

// Errors returned by the encoder
var (
	ErrInvalidTagClass  = errors.New("ber: invalid tag class")
	ErrInvalidTagNumber = errors.New("ber: invalid tag number")
	ErrNegativeLength   = errors.New("ber: negative length not allowed")
)

// BEREncoder encodes ASN.1 values using BER (Basic Encoding Rules).
//
// Constructed values (SEQUENCE, SET, APPLICATION and context tags) are
// built with a Begin/End pair: Begin saves the encoder's current buffer as
// a parent frame and starts a fresh one for the child's content; End pops
// the parent, now knows the child's exact length, and writes
// tag+length+content into the parent buffer. This produces the same
// right-to-left, length-known-before-write byte layout the bottom-up
// encoding strategy requires, expressed as nested buffer composition
// instead of literal in-place right-to-left writes.
type BEREncoder struct {
	buf   []byte
	stack []berFrame
}

type berFrame struct {
	parent      []byte
	class       int
	constructed int
	number      int
}

// ErrUnbalancedFrame is returned when an End* call's position does not
// match the most recently opened Begin*/WriteApplicationTag/WriteContextTag.
var ErrUnbalancedFrame = errors.New("ber: unbalanced Begin/End frame")

// NewBEREncoder creates a new BER encoder with an optional initial capacity.
func NewBEREncoder(capacity int) *BEREncoder {
	if capacity <= 0 {
		capacity = 64
	}
	return &BEREncoder{
		buf: make([]byte, 0, capacity),
	}
}

// Bytes returns the encoded bytes.
func (e *BEREncoder) Bytes() []byte {
	return e.buf
}

// Reset clears the encoder buffer for reuse.
func (e *BEREncoder) Reset() {
	e.buf = e.buf[:0]
}

// Len returns the current length of encoded data.
func (e *BEREncoder) Len() int {
	return len(e.buf)
}

// WriteTag writes a BER tag to the buffer: short form for tag numbers up
// to 30, long form (leading 0x1F, then base-128 continuation bytes) above.
func (e *BEREncoder) WriteTag(class, constructed, number int) error {
	switch class {
	case ClassUniversal, ClassApplication, ClassContextSpecific, ClassPrivate:
	default:
		return ErrInvalidTagClass
	}
	if number < 0 {
		return ErrInvalidTagNumber
	}

	head := byte(class) | byte(constructed)
	if number <= 30 {
		e.buf = append(e.buf, head|byte(number))
		return nil
	}

	e.buf = append(e.buf, head|0x1F)
	e.buf = appendBase128(e.buf, number)
	return nil
}

// appendBase128 appends v in base-128 form, high bit marking continuation.
func appendBase128(dst []byte, v int) []byte {
	shift := ((bits.Len(uint(v)|1) - 1) / 7) * 7
	for ; shift > 0; shift -= 7 {
		dst = append(dst, byte(v>>shift)&0x7F|0x80)
	}
	return append(dst, byte(v)&0x7F)
}

// WriteLength writes a definite-form length: short form up to 127, long
// form (count byte, then big-endian length bytes) above.
func (e *BEREncoder) WriteLength(length int) error {
	if length < 0 {
		return ErrNegativeLength
	}
	if length <= MaxShortFormLength {
		e.buf = append(e.buf, byte(length))
		return nil
	}

	width := (bits.Len(uint(length)) + 7) / 8
	e.buf = append(e.buf, byte(LengthLongFormBit|width))
	for shift := (width - 1) * 8; shift >= 0; shift -= 8 {
		e.buf = append(e.buf, byte(length>>shift))
	}
	return nil
}

// writePrimitive writes a complete universal primitive TLV.
func (e *BEREncoder) writePrimitive(number int, content []byte) error {
	if err := e.WriteTag(ClassUniversal, TypePrimitive, number); err != nil {
		return err
	}
	if err := e.WriteLength(len(content)); err != nil {
		return err
	}
	e.buf = append(e.buf, content...)
	return nil
}

// WriteBoolean writes a BER-encoded boolean value. FALSE is 0x00; TRUE is
// written in its canonical 0xFF form.
func (e *BEREncoder) WriteBoolean(v bool) error {
	content := byte(0x00)
	if v {
		content = 0xFF
	}
	return e.writePrimitive(TagBoolean, []byte{content})
}

// WriteInteger writes a BER-encoded integer using the minimal two's
// complement representation.
func (e *BEREncoder) WriteInteger(v int64) error {
	return e.writePrimitive(TagInteger, minimalInt(v))
}

// minimalInt returns v's shortest two's complement encoding: the full
// big-endian form with every redundant leading sign octet stripped (a 0x00
// followed by a clear high bit, or a 0xFF followed by a set one).
func minimalInt(v int64) []byte {
	var full [8]byte
	binary.BigEndian.PutUint64(full[:], uint64(v))

	start := 0
	for start < 7 {
		switch {
		case full[start] == 0x00 && full[start+1]&0x80 == 0:
			start++
		case full[start] == 0xFF && full[start+1]&0x80 != 0:
			start++
		default:
			return full[start:]
		}
	}
	return full[start:]
}

// WriteOctetString writes a BER-encoded octet string.
func (e *BEREncoder) WriteOctetString(v []byte) error {
	return e.writePrimitive(TagOctetString, v)
}

// WriteEnumerated writes a BER-encoded enumerated value; the content
// encoding is the same as INTEGER's.
func (e *BEREncoder) WriteEnumerated(v int64) error {
	return e.writePrimitive(TagEnumerated, minimalInt(v))
}

// WriteNull writes a BER-encoded null value.
func (e *BEREncoder) WriteNull() error {
	return e.writePrimitive(TagNull, nil)
}

// WriteRaw appends already-encoded bytes unchanged.
func (e *BEREncoder) WriteRaw(data []byte) {
	e.buf = append(e.buf, data...)
}

// beginFrame opens a constructed-value builder frame, returning a position
// token to pass to the matching end call.
func (e *BEREncoder) beginFrame(class, constructed, number int) int {
	e.stack = append(e.stack, berFrame{parent: e.buf, class: class, constructed: constructed, number: number})
	e.buf = make([]byte, 0, 32)
	return len(e.stack) - 1
}

// endFrame closes the builder frame at pos, writing its accumulated content
// into the parent buffer behind a tag and a now-known length.
func (e *BEREncoder) endFrame(pos int) error {
	if pos != len(e.stack)-1 {
		return ErrUnbalancedFrame
	}
	f := e.stack[pos]
	e.stack = e.stack[:pos]
	content := e.buf
	e.buf = f.parent
	if err := e.WriteTag(f.class, f.constructed, f.number); err != nil {
		return err
	}
	if err := e.WriteLength(len(content)); err != nil {
		return err
	}
	e.buf = append(e.buf, content...)
	return nil
}

// BeginSequence opens a universal SEQUENCE builder frame.
func (e *BEREncoder) BeginSequence() int {
	return e.beginFrame(ClassUniversal, TypeConstructed, TagSequence)
}

// EndSequence closes the SEQUENCE frame opened at pos.
func (e *BEREncoder) EndSequence(pos int) error {
	return e.endFrame(pos)
}

// BeginSet opens a universal SET builder frame.
func (e *BEREncoder) BeginSet() int {
	return e.beginFrame(ClassUniversal, TypeConstructed, TagSet)
}

// EndSet closes the SET frame opened at pos.
func (e *BEREncoder) EndSet(pos int) error {
	return e.endFrame(pos)
}

// WriteApplicationTag opens an APPLICATION-class builder frame for the
// given operation tag number.
func (e *BEREncoder) WriteApplicationTag(number int, constructed bool) int {
	flag := TypePrimitive
	if constructed {
		flag = TypeConstructed
	}
	return e.beginFrame(ClassApplication, flag, number)
}

// EndApplicationTag closes the APPLICATION frame opened at pos.
func (e *BEREncoder) EndApplicationTag(pos int) error {
	return e.endFrame(pos)
}

// WriteContextTag opens a context-specific builder frame for the given tag
// number, primitive or constructed.
func (e *BEREncoder) WriteContextTag(number int, constructed bool) int {
	flag := TypePrimitive
	if constructed {
		flag = TypeConstructed
	}
	return e.beginFrame(ClassContextSpecific, flag, number)
}

// EndContextTag closes the context-specific frame opened at pos.
func (e *BEREncoder) EndContextTag(pos int) error {
	return e.endFrame(pos)
}

// WriteTaggedValue writes a complete context-specific TLV around the given
// content bytes. This is the workhorse for LDAP's `[n]`-tagged fields.
func (e *BEREncoder) WriteTaggedValue(tagNumber int, constructed bool, value []byte) error {
	flag := TypePrimitive
	if constructed {
		flag = TypeConstructed
	}
	if err := e.WriteTag(ClassContextSpecific, flag, tagNumber); err != nil {
		return err
	}
	if err := e.WriteLength(len(value)); err != nil {
		return err
	}
	e.buf = append(e.buf, value...)
	return nil
}
