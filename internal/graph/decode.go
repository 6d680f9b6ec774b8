package graph

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/sunholo/tidal/internal/errors"
)

// Decode reads one graph from src using the staged decoder d and
// returns its root. Malformed input — an unknown marker, a truncated
// stream, or a back-reference to a position never decoded — aborts
// with a structured error; there is no partial recovery.
func Decode[G comparable](src *Source, d Decoder[G]) (G, error) {
	dc := &graphDecoder[G]{src: src, dec: d, byPos: make(map[int64]G)}
	return dc.read1()
}

// DecodeFromBytes decodes a graph from an in-memory encoding.
func DecodeFromBytes[G comparable](data []byte, d Decoder[G]) (G, error) {
	return Decode(NewSource(bytes.NewReader(data)), d)
}

type graphDecoder[G comparable] struct {
	src   *Source
	dec   Decoder[G]
	byPos map[int64]G
}

func (dc *graphDecoder[G]) read1() (G, error) {
	var zero G
	start := dc.src.Pos()
	marker, err := dc.src.ReadByte()
	if err != nil {
		return zero, truncated(err)
	}

	switch marker {
	case markerNestedStart:
		fr := &frame[G]{dc: dc}
		g, err := dc.dec.Decode(fr.next)
		if err != nil {
			return zero, err
		}
		// Drain children the decoder did not consume so the stream
		// stays aligned and their positions are recorded.
		for !fr.reachedEnd {
			if _, _, err := fr.next(); err != nil {
				return zero, err
			}
		}
		fr.invalidated = true
		dc.byPos[start] = g
		return g, nil

	case markerSeen, markerRefSeen:
		pos, err := dc.readU64()
		if err != nil {
			return zero, err
		}
		g, ok := dc.byPos[int64(pos)]
		if !ok {
			return zero, errors.WrapReport(errors.Newf(errors.GRF003, "codec",
				"back-reference to position %d, which was never decoded", pos).
				With("position", pos))
		}
		return g, nil

	case markerRef:
		tag, err := dc.src.ReadByte()
		if err != nil {
			return zero, truncated(err)
		}
		var prefix []byte
		switch tag {
		case refMetadata:
			n, err := dc.readU32()
			if err != nil {
				return zero, err
			}
			prefix = make([]byte, n)
			if err := dc.src.ReadFull(prefix); err != nil {
				return zero, truncated(err)
			}
		case refNoMetadata:
		default:
			return zero, errors.WrapReport(errors.Newf(errors.GRF005, "codec",
				"unknown reference metadata tag 0x%02x", tag))
		}
		// The cell is created and recorded before its referent is
		// read so cycles through the reference resolve.
		ref, err := dc.dec.MakeReference(start, prefix)
		if err != nil {
			return zero, err
		}
		dc.byPos[start] = ref
		referent, err := dc.read1()
		if err != nil {
			return zero, err
		}
		if err := dc.dec.SetReference(ref, referent); err != nil {
			return zero, err
		}
		return ref, nil
	}

	return zero, errors.WrapReport(errors.Newf(errors.GRF001, "codec",
		"unknown marker byte 0x%02x at position %d", marker, start).
		With("position", start))
}

// frame iterates the children of one nested node. It must not be used
// after the enclosing Decode call has returned.
type frame[G comparable] struct {
	dc          *graphDecoder[G]
	invalidated bool
	reachedEnd  bool
}

func (f *frame[G]) next() (G, bool, error) {
	var zero G
	if f.invalidated {
		return zero, false, errors.WrapReport(errors.New(errors.GRF004, "codec",
			"child iterator used after its frame was closed"))
	}
	if f.reachedEnd {
		return zero, false, nil
	}
	b, err := f.dc.src.peek()
	if err != nil {
		return zero, false, truncated(err)
	}
	if b == markerNestedEnd {
		if _, err := f.dc.src.ReadByte(); err != nil {
			return zero, false, truncated(err)
		}
		f.reachedEnd = true
		return zero, false, nil
	}
	g, err := f.dc.read1()
	if err != nil {
		return zero, false, err
	}
	return g, true, nil
}

func (dc *graphDecoder[G]) readU64() (uint64, error) {
	var buf [8]byte
	if err := dc.src.ReadFull(buf[:]); err != nil {
		return 0, truncated(err)
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

func (dc *graphDecoder[G]) readU32() (uint32, error) {
	var buf [4]byte
	if err := dc.src.ReadFull(buf[:]); err != nil {
		return 0, truncated(err)
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func truncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.WrapReport(errors.New(errors.GRF002, "codec", "truncated stream"))
	}
	return err
}
