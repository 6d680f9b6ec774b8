// Package graph implements a byte-level codec for arbitrary object
// graphs with shared and cyclic references.
//
// The codec is parameterised over a consumer-supplied capability that
// exposes, for each node, an opaque byte prefix (its header), its
// children in order, and whether it is a reference cell. Sharing is
// detected by node identity: the second and later encounters of a node
// are written as one-byte markers followed by the byte position of the
// original, so a DAG or cyclic graph round-trips without duplication.
//
// The consumer must guarantee that a node's byte prefix plus its
// children fully reconstitute the node.
package graph

import (
	"bufio"
	"io"
)

// Stream markers, one byte each.
const (
	markerNestedStart byte = 0
	markerNestedEnd   byte = 1
	markerSeen        byte = 2
	markerRef         byte = 3
	markerRefSeen     byte = 4
)

// Reference metadata sub-tags.
const (
	refMetadata   byte = 0
	refNoMetadata byte = 1
)

// Codec exposes the structure of a graph node family G to the encoder.
// G must have identity semantics: two nodes compare equal exactly when
// they are the same node. Pointer types satisfy this naturally.
type Codec[G comparable] interface {
	// WriteBytePrefix writes the node's header bytes.
	WriteBytePrefix(g G, w io.Writer) error
	// Foreach calls f on each child in deterministic order, stopping
	// at the first error.
	Foreach(g G, f func(G) error) error
	// IsReference reports whether the node is a reference cell.
	IsReference(g G) bool
	// Dereference returns a reference cell's referent.
	Dereference(g G) (G, error)
}

// Decoder rebuilds graph nodes from the stream. The decoder reads each
// node's byte prefix directly from the Source it was staged over; the
// codec hands it the children through an iterator.
type Decoder[G comparable] interface {
	// Decode reads one node: its prefix from the source, then children
	// from next until next reports no more. next returns false when
	// the node's child list is exhausted.
	Decode(next func() (G, bool, error)) (G, error)
	// MakeReference allocates an empty reference cell for the node
	// starting at pos. prefix holds the cell's header when the stream
	// carried reference metadata, and is nil otherwise.
	MakeReference(pos int64, prefix []byte) (G, error)
	// SetReference installs the referent into a cell returned by
	// MakeReference.
	SetReference(ref, referent G) error
}

// Sink is a position-tracking writer.
type Sink struct {
	w   *bufio.Writer
	pos int64
}

// NewSink wraps w.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: bufio.NewWriter(w)}
}

// Pos returns the number of bytes written so far.
func (s *Sink) Pos() int64 { return s.pos }

func (s *Sink) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	s.pos += int64(n)
	return n, err
}

func (s *Sink) writeByte(b byte) error {
	if err := s.w.WriteByte(b); err != nil {
		return err
	}
	s.pos++
	return nil
}

// Flush flushes buffered output to the underlying writer.
func (s *Sink) Flush() error { return s.w.Flush() }

// Source is a position-tracking reader.
type Source struct {
	r   *bufio.Reader
	pos int64
}

// NewSource wraps r.
func NewSource(r io.Reader) *Source {
	return &Source{r: bufio.NewReader(r)}
}

// Pos returns the number of bytes consumed so far.
func (s *Source) Pos() int64 { return s.pos }

// ReadByte consumes one byte.
func (s *Source) ReadByte() (byte, error) {
	b, err := s.r.ReadByte()
	if err == nil {
		s.pos++
	}
	return b, err
}

// ReadFull fills p from the stream.
func (s *Source) ReadFull(p []byte) error {
	n, err := io.ReadFull(s.r, p)
	s.pos += int64(n)
	return err
}

// Read implements io.Reader so staged decoders can read their byte
// prefix straight off the source.
func (s *Source) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	s.pos += int64(n)
	return n, err
}

func (s *Source) peek() (byte, error) {
	buf, err := s.r.Peek(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}
