// Package ldap implements LDAP protocol message parsing and encoding
// as specified in RFC 4511.
package ldap

import (
	"github.com/obaldap/ldapcodec/internal/ber"
)

// DefaultMaxPDUSize bounds how large a single buffered LDAPMessage may grow
// before Container gives up waiting for more bytes and reports an error,
// so a connection that announces an enormous SEQUENCE length cannot make
// the container buffer without limit.
const DefaultMaxPDUSize = 16 * 1024 * 1024

// ErrPDUTooLarge is returned when a PDU's declared length exceeds the
// container's configured maximum.
type ErrPDUTooLarge struct {
	Declared int
	Max      int
}

func (e *ErrPDUTooLarge) Error() string {
	return "ldap: PDU length exceeds configured maximum"
}

// Container is a resumable LDAPMessage decoder for a byte-oriented
// transport, where a single read may deliver less than one full PDU, more
// than one full PDU, or a PDU boundary that falls in the middle of a
// read. It accumulates bytes across calls to Feed and reports its current
// position within the TLV it is working on via State, progressing through
// TAG, LENGTH, VALUE, GATHERING_BYTES and PDU_DECODED.
type Container struct {
	buf        []byte
	state      ber.State
	maxPDUSize int
	fatal      error
}

// NewContainer creates a Container using the default maximum PDU size.
func NewContainer() *Container {
	return NewContainerWithMaxSize(DefaultMaxPDUSize)
}

// NewContainerWithMaxSize creates a Container that rejects any PDU whose
// declared length exceeds maxSize.
func NewContainerWithMaxSize(maxSize int) *Container {
	return &Container{state: ber.StateTag, maxPDUSize: maxSize}
}

// State reports the container's current position within the TLV it is
// waiting to complete. Callers outside this package use it purely for
// diagnostics; it carries no information Feed's return values don't
// already convey.
func (c *Container) State() ber.State {
	return c.state
}

// Buffered returns the number of bytes currently held, belonging to a PDU
// that has not yet been completed.
func (c *Container) Buffered() int {
	return len(c.buf)
}

// Reset clears a fatal error state and discards any buffered bytes,
// returning the container to a fresh TAG state. A fatal decode error
// leaves the container unusable until Reset is called.
func (c *Container) Reset() {
	c.buf = nil
	c.fatal = nil
	c.state = ber.StateTag
}

// Err returns the fatal error that halted this container, if any. Once
// set, Feed refuses to do further work until Reset is called.
func (c *Container) Err() error {
	return c.fatal
}

// Feed appends newly read bytes to the container's internal buffer and
// decodes as many complete LDAPMessage PDUs as are now available. Bytes
// belonging to a not-yet-complete PDU remain buffered for the next Feed
// call. The returned error is nil whenever the only obstacle to decoding
// further was insufficient data (the condition ber.IsTruncated reports);
// any other error is fatal to the stream the container is reading: it is
// recorded (retrievable via Err) and every subsequent Feed call fails
// immediately until Reset is called.
func (c *Container) Feed(chunk []byte) ([]*LDAPMessage, error) {
	if c.fatal != nil {
		return nil, c.fatal
	}

	if len(chunk) > 0 {
		c.buf = append(c.buf, chunk...)
	}

	var messages []*LDAPMessage
	for {
		msg, consumed, err := c.decodeStep()
		if err != nil {
			if ber.IsTruncated(err) {
				c.state = ber.StateGatheringBytes
				return messages, nil
			}
			c.fatal = err
			return messages, err
		}
		if !consumed {
			return messages, nil
		}
		messages = append(messages, msg)
	}
}

// decodeStep attempts to decode exactly one LDAPMessage from the front of
// the buffered bytes, leaving the buffer untouched if the bytes on hand
// don't yet add up to a complete PDU.
func (c *Container) decodeStep() (*LDAPMessage, bool, error) {
	// Some clients pad the stream with a few zero bytes after a complete
	// PDU. 0x00 can never begin an LDAPMessage, so padding at a PDU
	// boundary is skipped rather than treated as a malformed tag.
	for len(c.buf) > 0 && c.buf[0] == 0x00 {
		c.buf = c.buf[1:]
	}

	if len(c.buf) == 0 {
		if c.state != ber.StatePDUDecoded {
			c.state = ber.StateTag
		}
		return nil, false, nil
	}

	decoder := ber.NewBERDecoder(c.buf)

	c.state = ber.StateTag
	class, constructed, number, err := decoder.PeekTag()
	if err != nil {
		return nil, false, err
	}
	if class != ber.ClassUniversal || constructed != ber.TypeConstructed || number != ber.TagSequence {
		return nil, false, NewStructuralError(0, "LDAPMessage must be a universal constructed SEQUENCE", ErrInvalidOperation)
	}

	c.state = ber.StateLength
	seqLen, err := decoder.ExpectSequence()
	if err != nil {
		return nil, false, err
	}
	if seqLen != ber.IndefiniteLength && seqLen > c.maxPDUSize {
		return nil, false, &ErrPDUTooLarge{Declared: seqLen, Max: c.maxPDUSize}
	}

	c.state = ber.StateValue
	if _, err := decoder.ReadFramedContent(seqLen); err != nil {
		return nil, false, err
	}

	c.state = ber.StateGatheringBytes
	pduLen := decoder.Offset()
	pduBytes := make([]byte, pduLen)
	copy(pduBytes, c.buf[:pduLen])

	msg, err := ParseLDAPMessage(pduBytes)
	if err != nil {
		// The TLV framing is complete and well-formed BER; whatever is
		// wrong is a grammar violation inside it, not a truncation, so
		// this PDU is consumed regardless of the parse outcome.
		c.buf = c.buf[pduLen:]
		c.state = ber.StateTag
		return nil, false, err
	}

	c.buf = c.buf[pduLen:]
	c.state = ber.StatePDUDecoded
	return msg, true, nil
}
