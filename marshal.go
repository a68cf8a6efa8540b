package xxh3

import (
	"encoding/binary"
	"fmt"
)

const (
	marshalMagic = "xh3\x01"

	// magic + flags + seed + acc lanes + stripe position + total +
	// residue length + full buffer (the tail bytes past the residue are
	// the catch-up stripe and must survive a round trip)
	marshalFixedSize = len(marshalMagic) + 1 + 8 + 8*accNB + 4 + 8 + 4 + internalBufferSize

	flagCustomSecret = 1 << 0
)

// MarshalBinary implements encoding.BinaryMarshaler. The encoded state is a
// complete checkpoint: unmarshaling into a fresh Digest resumes the stream.
func (d *Digest) MarshalBinary() ([]byte, error) {
	size := marshalFixedSize
	if d.secret.custom {
		size += 4 + len(d.secret.key)
	}
	b := make([]byte, 0, size)
	b = append(b, marshalMagic...)
	var flags byte
	if d.secret.custom {
		flags |= flagCustomSecret
	}
	b = append(b, flags)
	b = binary.LittleEndian.AppendUint64(b, d.secret.seed)
	if d.secret.custom {
		b = binary.LittleEndian.AppendUint32(b, uint32(len(d.secret.key)))
		b = append(b, d.secret.key...)
	}
	for _, lane := range d.acc {
		b = binary.LittleEndian.AppendUint64(b, lane)
	}
	b = binary.LittleEndian.AppendUint32(b, uint32(d.stripes))
	b = binary.LittleEndian.AppendUint64(b, d.total)
	b = binary.LittleEndian.AppendUint32(b, uint32(d.n))
	b = append(b, d.buf[:]...)
	return b, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (d *Digest) UnmarshalBinary(b []byte) error {
	if len(b) < len(marshalMagic)+1 || string(b[:len(marshalMagic)]) != marshalMagic {
		return fmt.Errorf("%w: bad magic", ErrInvalidSnapshot)
	}
	b = b[len(marshalMagic):]
	flags := b[0]
	b = b[1:]
	if len(b) < 8 {
		return fmt.Errorf("%w: truncated", ErrInvalidSnapshot)
	}
	seed := binary.LittleEndian.Uint64(b)
	b = b[8:]

	var secret *Secret
	if flags&flagCustomSecret != 0 {
		if len(b) < 4 {
			return fmt.Errorf("%w: truncated", ErrInvalidSnapshot)
		}
		keyLen := int(binary.LittleEndian.Uint32(b))
		b = b[4:]
		if keyLen < SecretSizeMin || len(b) < keyLen {
			return fmt.Errorf("%w: bad secret length %d", ErrInvalidSnapshot, keyLen)
		}
		var err error
		if secret, err = SecretFromBytes(b[:keyLen]); err != nil {
			return err
		}
		b = b[keyLen:]
	} else {
		secret = DeriveSecret(seed)
	}

	if len(b) != 8*accNB+4+8+4+internalBufferSize {
		return fmt.Errorf("%w: bad state size", ErrInvalidSnapshot)
	}
	var acc [accNB]uint64
	for i := range acc {
		acc[i] = binary.LittleEndian.Uint64(b)
		b = b[8:]
	}
	stripes := int(binary.LittleEndian.Uint32(b))
	b = b[4:]
	total := binary.LittleEndian.Uint64(b)
	b = b[8:]
	n := int(binary.LittleEndian.Uint32(b))
	b = b[4:]

	stripesPerBlock := (len(secret.key) - stripeLen) / secretConsumeRate
	if n > internalBufferSize || stripes >= stripesPerBlock || uint64(n) > total {
		return fmt.Errorf("%w: inconsistent counters", ErrInvalidSnapshot)
	}

	d.secret = secret
	d.acc = acc
	d.stripes = stripes
	d.total = total
	d.n = n
	copy(d.buf[:], b)
	return nil
}
