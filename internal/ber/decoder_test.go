package ber

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadTagShortForm(t *testing.T) {
	d := NewBERDecoder([]byte{0x30, 0x03, 0x01, 0x02, 0x03})
	class, constructed, number, err := d.ReadTag()
	require.NoError(t, err)
	require.Equal(t, ClassUniversal, class)
	require.Equal(t, TypeConstructed, constructed)
	require.Equal(t, TagSequence, number)
}

func TestReadTagLongForm(t *testing.T) {
	// Application class, constructed, tag number 31 (long form threshold).
	d := NewBERDecoder([]byte{0x7F, 0x1F, 0x00})
	class, constructed, number, err := d.ReadTag()
	require.NoError(t, err)
	require.Equal(t, ClassApplication, class)
	require.Equal(t, TypeConstructed, constructed)
	require.Equal(t, 31, number)
}

func TestReadTagRejectsOverLimit(t *testing.T) {
	d := NewBERDecoderWithMaxTag([]byte{0x1F, 0x02}, 1)
	_, _, _, err := d.ReadTag()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTagNumberTooLarge)
}

func TestReadLengthShortAndLongForm(t *testing.T) {
	d := NewBERDecoder([]byte{0x05})
	length, err := d.ReadLength()
	require.NoError(t, err)
	require.Equal(t, 5, length)

	d = NewBERDecoder([]byte{0x82, 0x01, 0x00})
	length, err = d.ReadLength()
	require.NoError(t, err)
	require.Equal(t, 256, length)
}

func TestReadLengthIndefiniteIsNotAnError(t *testing.T) {
	d := NewBERDecoder([]byte{0x80})
	length, err := d.ReadLength()
	require.NoError(t, err)
	require.Equal(t, IndefiniteLength, length)
}

func TestReadBoolean(t *testing.T) {
	d := NewBERDecoder([]byte{0x01, 0x01, 0xFF})
	v, err := d.ReadBoolean()
	require.NoError(t, err)
	require.True(t, v)

	d = NewBERDecoder([]byte{0x01, 0x01, 0x00})
	v, err = d.ReadBoolean()
	require.NoError(t, err)
	require.False(t, v)
}

func TestReadIntegerSignExtension(t *testing.T) {
	cases := []struct {
		data []byte
		want int64
	}{
		{[]byte{0x02, 0x01, 0x00}, 0},
		{[]byte{0x02, 0x01, 0x7F}, 127},
		{[]byte{0x02, 0x02, 0x00, 0x80}, 128},
		{[]byte{0x02, 0x01, 0xFF}, -1},
		{[]byte{0x02, 0x02, 0xFF, 0x7F}, -129},
	}
	for _, c := range cases {
		d := NewBERDecoder(c.data)
		got, err := d.ReadInteger()
		require.NoError(t, err)
		require.Equal(t, c.want, got)
	}
}

func TestReadOctetStringRejectsConstructed(t *testing.T) {
	d := NewBERDecoder([]byte{0x24, 0x00})
	_, err := d.ReadOctetString()
	require.Error(t, err)
}

func TestReadIndefiniteLengthSequenceContents(t *testing.T) {
	// SEQUENCE, indefinite length, containing one INTEGER 5, then EOC.
	data := []byte{0x30, 0x80, 0x02, 0x01, 0x05, 0x00, 0x00}
	d := NewBERDecoder(data)
	sub, err := d.ReadSequenceContents()
	require.NoError(t, err)
	require.Equal(t, 0, d.Remaining())

	v, err := sub.ReadInteger()
	require.NoError(t, err)
	require.Equal(t, int64(5), v)
	require.Equal(t, 0, sub.Remaining())
}

func TestReadIndefiniteLengthNestedConstructs(t *testing.T) {
	// Outer SEQUENCE indefinite, containing an inner SEQUENCE indefinite
	// with one INTEGER 7, inner EOC, then outer EOC.
	data := []byte{
		0x30, 0x80, // outer SEQUENCE, indefinite
		0x30, 0x80, // inner SEQUENCE, indefinite
		0x02, 0x01, 0x07, // INTEGER 7
		0x00, 0x00, // inner EOC
		0x00, 0x00, // outer EOC
	}
	d := NewBERDecoder(data)
	outer, err := d.ReadSequenceContents()
	require.NoError(t, err)
	inner, err := outer.ReadSequenceContents()
	require.NoError(t, err)
	v, err := inner.ReadInteger()
	require.NoError(t, err)
	require.Equal(t, int64(7), v)
}

func TestReadIndefiniteLengthUnterminatedFails(t *testing.T) {
	data := []byte{0x30, 0x80, 0x02, 0x01, 0x05}
	d := NewBERDecoder(data)
	_, err := d.ReadSequenceContents()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrIndefiniteLengthUnterminated)
}

func TestTruncatedInputIsDistinguishable(t *testing.T) {
	d := NewBERDecoder([]byte{0x30, 0x05, 0x02, 0x01})
	_, err := d.ReadSequenceContents()
	require.Error(t, err)
	require.True(t, IsTruncated(err))
}

func TestReadTaggedValuePrimitiveRejectsIndefinite(t *testing.T) {
	d := NewBERDecoder([]byte{0x80, 0x80})
	_, _, _, err := d.ReadTaggedValue()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrIndefiniteLengthNotAllowed)
}

func TestTagMismatchErrorIs(t *testing.T) {
	d := NewBERDecoder([]byte{0x04, 0x00})
	_, err := d.ReadInteger()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTagMismatch)
}
