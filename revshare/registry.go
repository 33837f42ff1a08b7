package revshare

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	registryHeaderSize = 4  // num_entries(4)
	entryFixedSize     = 10 // addr_len(2) + portion(8)
)

// SerializeRegistry encodes a beneficiary list as
// num_entries(4) || { addr_len(2) || addr || portion_atomics(8) }*, big-endian.
func SerializeRegistry(entries []Beneficiary) ([]byte, error) {
	if len(entries) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d entries", ErrTooManyEntries, len(entries))
	}
	size := registryHeaderSize
	for _, e := range entries {
		if len(e.Address) > math.MaxUint16 {
			return nil, fmt.Errorf("%w: address of %d bytes", ErrInvalidRegistryData, len(e.Address))
		}
		size += entryFixedSize + len(e.Address)
	}

	buf := make([]byte, size)
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(entries)))
	offset := registryHeaderSize

	for _, e := range entries {
		binary.BigEndian.PutUint16(buf[offset:offset+2], uint16(len(e.Address)))
		offset += 2
		offset += copy(buf[offset:], e.Address)
		binary.BigEndian.PutUint64(buf[offset:offset+8], e.Portion.Atomics())
		offset += 8
	}
	return buf, nil
}

// DeserializeRegistry decodes data produced by SerializeRegistry.
func DeserializeRegistry(data []byte) ([]Beneficiary, error) {
	if len(data) < registryHeaderSize {
		return nil, fmt.Errorf("%w: too short (%d bytes)", ErrInvalidRegistryData, len(data))
	}
	n := int(binary.BigEndian.Uint32(data[0:4]))
	offset := registryHeaderSize

	if n > (len(data)-registryHeaderSize)/entryFixedSize {
		return nil, fmt.Errorf("%w: %d entries in %d bytes", ErrInvalidRegistryData, n, len(data))
	}

	entries := make([]Beneficiary, n)
	for i := 0; i < n; i++ {
		if len(data) < offset+2 {
			return nil, fmt.Errorf("%w: truncated entry %d", ErrInvalidRegistryData, i)
		}
		addrLen := int(binary.BigEndian.Uint16(data[offset : offset+2]))
		offset += 2
		if len(data) < offset+addrLen+8 {
			return nil, fmt.Errorf("%w: truncated entry %d", ErrInvalidRegistryData, i)
		}
		entries[i].Address = string(data[offset : offset+addrLen])
		offset += addrLen
		entries[i].Portion = NewDecimalFromAtomics(binary.BigEndian.Uint64(data[offset : offset+8]))
		offset += 8
	}

	if offset != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidRegistryData, len(data)-offset)
	}
	return entries, nil
}

// RegistryCodec stores beneficiary lists in the registry binary format.
type RegistryCodec struct{}

// Encode implements storage.Codec.
func (RegistryCodec) Encode(entries []Beneficiary) ([]byte, error) { return SerializeRegistry(entries) }

// Decode implements storage.Codec.
func (RegistryCodec) Decode(data []byte) ([]Beneficiary, error) { return DeserializeRegistry(data) }
