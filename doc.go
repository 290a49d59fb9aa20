// Package rtcp implements encoding and decoding of RTCP packets according to RFCs 3550 and 4585.
//
// RTCP is a sister protocol of the Real-time Transport Protocol (RTP). Its basic functionality
// and packet structure is defined in RFC 3550. RTCP provides out-of-band statistics and control
// information for an RTP session. It partners with RTP in the delivery and packaging of multimedia data,
// but does not transport any media data itself.
//
// The primary function of RTCP is to provide feedback on the quality of service (QoS)
// in media distribution by periodically sending statistics information
// such as transmitted octet and packet counts, packet loss, packet delay variation,
// and round-trip delay time to participants in a streaming multimedia session.
//
// Several RTCP packets may be transmitted back to back inside a single UDP datagram, forming a
// compound packet. Unmarshal slices such a datagram into its constituent packets, selecting the
// concrete decoder by packet type (and, for transport and payload specific feedback, by the
// format carried in the header's count field). Packet kinds this package does not recognize are
// preserved verbatim as RawPacket, so that unknown or future packet types survive a
// decode/encode round trip untouched.
//
// Decoding never returns a partial result: a malformed packet anywhere in the datagram fails the
// whole call. All functions operate on caller-owned buffers and retain no state, so they are safe
// for concurrent use on independent inputs.
package rtcp
