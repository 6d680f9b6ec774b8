package graph

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Encode writes the graph rooted at g to w. Sharing is preserved: a
// node reached more than once is written in full the first time and as
// a back-reference afterwards. When includeRefMetadata is set, each
// reference cell's byte prefix travels with it; otherwise references
// carry no header and the decoder must reconstitute them from position
// alone.
func Encode[G comparable](w io.Writer, g G, c Codec[G], includeRefMetadata bool) error {
	sink := NewSink(w)
	e := &encoder[G]{
		sink:      sink,
		codec:     c,
		positions: make(map[G]int64),
		meta:      includeRefMetadata,
	}
	if err := e.encode(g); err != nil {
		return err
	}
	return sink.Flush()
}

// EncodeToBytes encodes g into a fresh byte slice.
func EncodeToBytes[G comparable](g G, c Codec[G], includeRefMetadata bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, g, c, includeRefMetadata); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type encoder[G comparable] struct {
	sink      *Sink
	codec     Codec[G]
	positions map[G]int64
	meta      bool
}

func (e *encoder[G]) encode(g G) error {
	if pos, seen := e.positions[g]; seen {
		marker := markerSeen
		if e.codec.IsReference(g) {
			marker = markerRefSeen
		}
		if err := e.sink.writeByte(marker); err != nil {
			return err
		}
		return e.writeU64(uint64(pos))
	}

	start := e.sink.Pos()
	e.positions[g] = start

	if e.codec.IsReference(g) {
		if err := e.sink.writeByte(markerRef); err != nil {
			return err
		}
		if e.meta {
			if err := e.sink.writeByte(refMetadata); err != nil {
				return err
			}
			var prefix bytes.Buffer
			if err := e.codec.WriteBytePrefix(g, &prefix); err != nil {
				return err
			}
			if err := e.writeU32(uint32(prefix.Len())); err != nil {
				return err
			}
			if _, err := e.sink.Write(prefix.Bytes()); err != nil {
				return err
			}
		} else {
			if err := e.sink.writeByte(refNoMetadata); err != nil {
				return err
			}
		}
		referent, err := e.codec.Dereference(g)
		if err != nil {
			return err
		}
		return e.encode(referent)
	}

	if err := e.sink.writeByte(markerNestedStart); err != nil {
		return err
	}
	if err := e.codec.WriteBytePrefix(g, e.sink); err != nil {
		return err
	}
	if err := e.codec.Foreach(g, e.encode); err != nil {
		return err
	}
	return e.sink.writeByte(markerNestedEnd)
}

func (e *encoder[G]) writeU64(v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, err := e.sink.Write(buf[:])
	return err
}

func (e *encoder[G]) writeU32(v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	_, err := e.sink.Write(buf[:])
	return err
}
