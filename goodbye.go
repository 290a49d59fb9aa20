package rtcp

import "encoding/binary"

// The Goodbye packet indicates that one or more sources are no longer active.
type Goodbye struct {
	// The SSRC/CSRC identifiers that are no longer active
	Sources []uint32
	// Optional text indicating the reason for leaving, e.g., "camera malfunction" or "RTP loop detected"
	Reason string
}

// Marshal encodes the Goodbye packet in binary
func (g Goodbye) Marshal() ([]byte, error) {
	/*
	 *        0                   1                   2                   3
	 *        0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
	 *       +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	 *       |V=2|P|    SC   |   PT=BYE=203  |             length            |
	 *       +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	 *       |                           SSRC/CSRC                           |
	 *       +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	 *       :                              ...                              :
	 *       +=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+
	 * (opt) |     length    |               reason for leaving            ...
	 *       +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	 */

	if len(g.Sources) > countMax {
		return nil, errTooManySources
	}

	rawPacket := make([]byte, headerLength, g.len())
	packetBody := make([]byte, len(g.Sources)*ssrcLength)

	for i, s := range g.Sources {
		binary.BigEndian.PutUint32(packetBody[i*ssrcLength:], s)
	}
	rawPacket = append(rawPacket, packetBody...)

	if g.Reason != "" {
		reason := []byte(g.Reason)

		if len(reason) > sdesMaxOctetCount {
			return nil, errReasonTooLong
		}

		rawPacket = append(rawPacket, uint8(len(reason)))
		rawPacket = append(rawPacket, reason...)
	}

	// align to 32-bit boundary
	if size := len(rawPacket); size%4 != 0 {
		padding := make([]byte, 4-size%4)
		rawPacket = append(rawPacket, padding...)
	}

	hData, err := g.Header().Marshal()
	if err != nil {
		return nil, err
	}
	copy(rawPacket, hData)

	return rawPacket, nil
}

// Unmarshal decodes the Goodbye packet from binary
func (g *Goodbye) Unmarshal(rawPacket []byte) error {
	var header Header
	if err := header.Unmarshal(rawPacket); err != nil {
		return err
	}

	if header.Type != TypeGoodbye {
		return errWrongType
	}

	if len(rawPacket)%4 != 0 {
		return errPacketTooShort
	}

	reasonOffset := headerLength + int(header.Count)*ssrcLength
	if reasonOffset > len(rawPacket) {
		return errPacketTooShort
	}

	g.Sources = make([]uint32, header.Count)
	for i := 0; i < int(header.Count); i++ {
		offset := headerLength + i*ssrcLength
		g.Sources[i] = binary.BigEndian.Uint32(rawPacket[offset:])
	}

	if reasonOffset < len(rawPacket) {
		reasonLen := int(rawPacket[reasonOffset])
		reasonEnd := reasonOffset + 1 + reasonLen

		if reasonEnd > len(rawPacket) {
			return errPacketTooShort
		}

		g.Reason = string(rawPacket[reasonOffset+1 : reasonEnd])
	}

	return nil
}

func (g Goodbye) len() int {
	srcsLength := len(g.Sources) * ssrcLength
	reasonLength := 0
	if g.Reason != "" {
		reasonLength = len(g.Reason) + 1
	}

	l := headerLength + srcsLength + reasonLength

	// align to 32-bit boundary
	if l%4 != 0 {
		l += 4 - (l % 4)
	}

	return l
}

// Header returns the Header associated with this packet.
func (g Goodbye) Header() Header {
	return Header{
		Version: rtpVersion,
		Padding: false,
		Count:   uint8(len(g.Sources)),
		Type:    TypeGoodbye,
		Length:  uint16((g.len() / 4) - 1),
	}
}

// DestinationSSRC returns an array of SSRC values that this packet refers to.
func (g Goodbye) DestinationSSRC() []uint32 {
	return g.Sources
}
