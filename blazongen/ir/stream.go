package ir

// StreamName is the stable name of the raw stream marker.
const StreamName = "BinaryStream"

// RawStream is the shared raw stream marker instance. Methods whose
// result is an unstructured byte stream use it as their result type.
var RawStream = &Stream{}

// Stream is the raw byte stream marker. Unlike messages and enums it
// carries no structure; it only distinguishes octet-stream results from
// JSON-rendered ones.
type Stream struct{}

// Kind returns KindStream.
func (s *Stream) Kind() Kind { return KindStream }

// TypeName returns StreamName.
func (s *Stream) TypeName() string { return StreamName }

func (*Stream) sealed() {}
