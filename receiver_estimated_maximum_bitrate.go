package rtcp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// ReceiverEstimatedMaximumBitrate (REMB) contains the receiver's estimate
// of the maximum bitrate the sender should be transmitting at, for all the
// media streams listed.
// See: https://tools.ietf.org/html/draft-alvestrand-rmcat-remb-03
type ReceiverEstimatedMaximumBitrate struct {
	// SSRC of sender
	SenderSSRC uint32

	// Estimated maximum bitrate in bits per second
	Bitrate uint64

	// SSRC entries which this packet applies to
	SSRCs []uint32
}

var rembIdentifier = []byte{'R', 'E', 'M', 'B'}

const (
	rembBodyLength     = 16
	rembSenderOffset   = headerLength
	rembMediaOffset    = rembSenderOffset + ssrcLength
	rembUniqueOffset   = rembMediaOffset + ssrcLength
	rembNumSSRCOffset  = rembUniqueOffset + 4
	rembBitrateOffset  = rembNumSSRCOffset + 1
	rembSSRCListOffset = headerLength + rembBodyLength
	rembMantissaMax    = (1 << 18) - 1
)

// Marshal encodes the ReceiverEstimatedMaximumBitrate in binary
func (p ReceiverEstimatedMaximumBitrate) Marshal() ([]byte, error) {
	/*
	 *  0                   1                   2                   3
	 *  0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
	 * +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	 * |V=2|P| FMT=15  |   PT=206      |             length            |
	 * +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	 * |                  SSRC of packet sender                        |
	 * +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	 * |                  SSRC of media source (always 0)              |
	 * +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	 * |  Unique identifier 'R' 'E' 'M' 'B'                            |
	 * +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	 * |  Num SSRC     | BR Exp    |  BR Mantissa                      |
	 * +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	 * |   SSRC feedback                                               |
	 * +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	 * |  ...                                                          |
	 * +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	 */

	if len(p.SSRCs) > math.MaxUint8 {
		return nil, errTooManySSRCs
	}

	rawPacket := make([]byte, p.len())

	binary.BigEndian.PutUint32(rawPacket[rembSenderOffset:], p.SenderSSRC)
	// media SSRC is always 0 for REMB
	copy(rawPacket[rembUniqueOffset:], rembIdentifier)

	// bitrate is stored as 6 bits of exponent and 18 bits of mantissa
	exp := uint8(0)
	mantissa := p.Bitrate
	for mantissa > rembMantissaMax {
		mantissa >>= 1
		exp++
	}

	rawPacket[rembNumSSRCOffset] = uint8(len(p.SSRCs))
	rawPacket[rembBitrateOffset] = (exp << 2) | uint8(mantissa>>16)
	rawPacket[rembBitrateOffset+1] = uint8(mantissa >> 8)
	rawPacket[rembBitrateOffset+2] = uint8(mantissa)

	for i, ssrc := range p.SSRCs {
		binary.BigEndian.PutUint32(rawPacket[rembSSRCListOffset+(i*ssrcLength):], ssrc)
	}

	hData, err := p.Header().Marshal()
	if err != nil {
		return nil, err
	}
	copy(rawPacket, hData)

	return rawPacket, nil
}

// Unmarshal decodes the ReceiverEstimatedMaximumBitrate from binary
func (p *ReceiverEstimatedMaximumBitrate) Unmarshal(rawPacket []byte) error {
	if len(rawPacket) < (headerLength + rembBodyLength) {
		return errPacketTooShort
	}

	var h Header
	if err := h.Unmarshal(rawPacket); err != nil {
		return err
	}

	if h.Type != TypePayloadSpecificFeedback || h.Count != FormatREMB {
		return errWrongType
	}

	p.SenderSSRC = binary.BigEndian.Uint32(rawPacket[rembSenderOffset:])

	if binary.BigEndian.Uint32(rawPacket[rembMediaOffset:]) != 0 {
		return errSSRCMustBeZero
	}

	if !bytes.Equal(rawPacket[rembUniqueOffset:rembUniqueOffset+4], rembIdentifier) {
		return errMissingREMBIdentifier
	}

	ssrcsLen := int(rawPacket[rembNumSSRCOffset])
	if rembSSRCListOffset+(ssrcsLen*ssrcLength) > len(rawPacket) {
		return errPacketTooShort
	}

	exp := rawPacket[rembBitrateOffset] >> 2
	mantissa := uint64(rawPacket[rembBitrateOffset]&0x3)<<16 |
		uint64(rawPacket[rembBitrateOffset+1])<<8 |
		uint64(rawPacket[rembBitrateOffset+2])

	if exp > 46 {
		// the shift would overflow a uint64
		p.Bitrate = math.MaxUint64
	} else {
		p.Bitrate = mantissa << exp
	}

	p.SSRCs = make([]uint32, ssrcsLen)
	for i := 0; i < ssrcsLen; i++ {
		p.SSRCs[i] = binary.BigEndian.Uint32(rawPacket[rembSSRCListOffset+(i*ssrcLength):])
	}

	return nil
}

func (p ReceiverEstimatedMaximumBitrate) len() int {
	return headerLength + rembBodyLength + (len(p.SSRCs) * ssrcLength)
}

// Header returns the Header associated with this packet.
func (p ReceiverEstimatedMaximumBitrate) Header() Header {
	return Header{
		Version: rtpVersion,
		Count:   FormatREMB,
		Type:    TypePayloadSpecificFeedback,
		Length:  uint16((p.len() / 4) - 1),
	}
}

func (p ReceiverEstimatedMaximumBitrate) String() string {
	return fmt.Sprintf("ReceiverEstimatedMaximumBitrate %x %d bps %v", p.SenderSSRC, p.Bitrate, p.SSRCs)
}

// DestinationSSRC returns an array of SSRC values that this packet refers to.
func (p ReceiverEstimatedMaximumBitrate) DestinationSSRC() []uint32 {
	return p.SSRCs
}
