package serialization

import (
	"encoding/binary"
	"io"

	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// errNoEncodingForType signifies that there's no encoding for the given type.
var errNoEncodingForType = errors.New("there's no encoding for this type")

var errMalformed = errors.New("errMalformed")

// MaxVarBytesLength bounds the length of variable length byte fields
const MaxVarBytesLength = 1 << 20

// WriteElement writes the little endian representation of element to w.
func WriteElement(w io.Writer, element interface{}) error {
	var err error
	switch e := element.(type) {
	case uint8:
		_, err = w.Write([]byte{e})
	case uint16:
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], e)
		_, err = w.Write(buf[:])
	case uint32:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], e)
		_, err = w.Write(buf[:])
	case uint64:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], e)
		_, err = w.Write(buf[:])
	case externalapi.PowAlgorithm:
		_, err = w.Write([]byte{uint8(e)})
	case externalapi.Difficulty:
		return WriteElement(w, uint64(e))
	case *externalapi.DomainHash:
		_, err = w.Write(e[:])
	case *externalapi.Commitment:
		_, err = w.Write(e[:])
	case *externalapi.BlindingFactor:
		_, err = w.Write(e[:])
	case []byte:
		if len(e) > MaxVarBytesLength {
			return errors.Errorf("byte field of length %d exceeds the maximum of %d", len(e), MaxVarBytesLength)
		}
		err = WriteElement(w, uint32(len(e)))
		if err != nil {
			return err
		}
		_, err = w.Write(e)
	default:
		return errors.Wrapf(errNoEncodingForType, "couldn't find a way to write type %T", element)
	}
	return errors.WithStack(err)
}

// WriteElements writes multiple items to w. It is equivalent to multiple
// calls to WriteElement.
func WriteElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		err := WriteElement(w, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadElement reads the next sequence of bytes from r using little endian
// depending on the concrete type of element pointed to.
func ReadElement(r io.Reader, element interface{}) error {
	switch e := element.(type) {
	case *uint8:
		var buf [1]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return errors.WithStack(err)
		}
		*e = buf[0]
	case *uint16:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return errors.WithStack(err)
		}
		*e = binary.LittleEndian.Uint16(buf[:])
	case *uint32:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return errors.WithStack(err)
		}
		*e = binary.LittleEndian.Uint32(buf[:])
	case *uint64:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return errors.WithStack(err)
		}
		*e = binary.LittleEndian.Uint64(buf[:])
	case *externalapi.PowAlgorithm:
		var algo uint8
		if err := ReadElement(r, &algo); err != nil {
			return err
		}
		*e = externalapi.PowAlgorithm(algo)
	case *externalapi.Difficulty:
		var difficulty uint64
		if err := ReadElement(r, &difficulty); err != nil {
			return err
		}
		*e = externalapi.Difficulty(difficulty)
	case *externalapi.DomainHash:
		if _, err := io.ReadFull(r, e[:]); err != nil {
			return errors.WithStack(err)
		}
	case *externalapi.Commitment:
		if _, err := io.ReadFull(r, e[:]); err != nil {
			return errors.WithStack(err)
		}
	case *externalapi.BlindingFactor:
		if _, err := io.ReadFull(r, e[:]); err != nil {
			return errors.WithStack(err)
		}
	case *[]byte:
		var length uint32
		if err := ReadElement(r, &length); err != nil {
			return err
		}
		if length > MaxVarBytesLength {
			return errors.Wrapf(errMalformed, "byte field of length %d exceeds the maximum of %d",
				length, MaxVarBytesLength)
		}
		buf := make([]byte, length)
		if _, err := io.ReadFull(r, buf); err != nil {
			return errors.WithStack(err)
		}
		*e = buf
	default:
		return errors.Wrapf(errNoEncodingForType, "couldn't find a way to read type %T", element)
	}
	return nil
}

// ReadElements reads multiple items from r. It is equivalent to multiple
// calls to ReadElement.
func ReadElements(r io.Reader, elements ...interface{}) error {
	for _, element := range elements {
		err := ReadElement(r, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// IsMalformedError returns whether the error indicates a malformed data source
func IsMalformedError(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) || errors.Is(err, errMalformed)
}
