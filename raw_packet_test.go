package rtcp

import (
	"reflect"
	"testing"
)

func TestRawPacketRoundTrip(t *testing.T) {
	for _, test := range []struct {
		Name      string
		Packet    RawPacket
		WantError error
	}{
		{
			Name: "valid",
			Packet: RawPacket([]byte{
				// v=2, p=0, count=1, BYE, len=1
				0x81, 0xcb, 0x00, 0x01,
				// ssrc=0x902f9e2e
				0x90, 0x2f, 0x9e, 0x2e,
			}),
		},
		{
			Name:      "short header",
			Packet:    RawPacket([]byte{0x80}),
			WantError: errPacketTooShort,
		},
		{
			Name: "invalid header",
			Packet: RawPacket([]byte{
				// v=0, p=0, count=0, RR, len=4
				0x00, 0xc9, 0x00, 0x04,
			}),
			WantError: errBadVersion,
		},
	} {
		data, err := test.Packet.Marshal()
		if err != nil {
			t.Fatalf("Marshal %q: %v", test.Name, err)
		}

		var decoded RawPacket
		err = decoded.Unmarshal(data)
		if got, want := err, test.WantError; got != want {
			t.Fatalf("Unmarshal %q: err = %v, want %v", test.Name, got, want)
		}
		if err != nil {
			continue
		}

		if got, want := decoded, test.Packet; !reflect.DeepEqual(got, want) {
			t.Fatalf("%q raw round trip: got %v, want %v", test.Name, got, want)
		}
	}
}

func TestRawPacketUnmarshalCopies(t *testing.T) {
	buf := []byte{
		// v=2, p=0, count=1, BYE, len=1
		0x81, 0xcb, 0x00, 0x01,
		// ssrc=0x902f9e2e
		0x90, 0x2f, 0x9e, 0x2e,
	}

	var p RawPacket
	if err := p.Unmarshal(buf); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	// mutating the input must not change the packet
	buf[4] = 0xff
	if got, want := []byte(p)[4], byte(0x90); got != want {
		t.Fatalf("raw packet aliases input: got %#x, want %#x", got, want)
	}
}
