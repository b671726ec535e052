package prefix

import "github.com/fxamacker/cbor/v2"

// MarshalBinary implements encoding.BinaryMarshaler via CBOR, for callers
// that want to persist or transmit a Stream without re-deriving the
// canonical text form (SPEC_FULL.md §4.10).
func (s Stream) MarshalBinary() ([]byte, error) {
	return cbor.Marshal([]Item(s))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, the inverse of
// MarshalBinary.
func (s *Stream) UnmarshalBinary(data []byte) error {
	var items []Item
	if err := cbor.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = Stream(items)
	return nil
}
