package rtcp

import (
	"reflect"
	"testing"
)

func TestGoodbyeUnmarshal(t *testing.T) {
	for _, test := range []struct {
		Name      string
		Data      []byte
		Want      Goodbye
		WantError error
	}{
		{
			Name: "valid",
			Data: []byte{
				// v=2, p=0, count=1, BYE, len=2
				0x81, 0xcb, 0x00, 0x02,
				// ssrc=0x902f9e2e
				0x90, 0x2f, 0x9e, 0x2e,
				// len=3, text=FOO
				0x03, 0x46, 0x4f, 0x4f,
			},
			Want: Goodbye{
				Sources: []uint32{0x902f9e2e},
				Reason:  "FOO",
			},
		},
		{
			Name: "invalid octet count",
			Data: []byte{
				// v=2, p=0, count=1, BYE, len=2
				0x81, 0xcb, 0x00, 0x02,
				// ssrc=0x902f9e2e
				0x90, 0x2f, 0x9e, 0x2e,
				// len=4, text=FOO
				0x04, 0x46, 0x4f, 0x4f,
			},
			WantError: errPacketTooShort,
		},
		{
			Name: "wrong type",
			Data: []byte{
				// v=2, p=0, count=1, SDES, len=2
				0x81, 0xca, 0x00, 0x02,
				// ssrc=0x902f9e2e
				0x90, 0x2f, 0x9e, 0x2e,
				// len=3, text=FOO
				0x03, 0x46, 0x4f, 0x4f,
			},
			WantError: errWrongType,
		},
		{
			Name: "short reason",
			Data: []byte{
				// v=2, p=0, count=1, BYE, len=2
				0x81, 0xcb, 0x00, 0x02,
				// ssrc=0x902f9e2e
				0x90, 0x2f, 0x9e, 0x2e,
				// len=1, text=F + padding
				0x01, 0x46, 0x00, 0x00,
			},
			Want: Goodbye{
				Sources: []uint32{0x902f9e2e},
				Reason:  "F",
			},
		},
		{
			Name: "not byte aligned",
			Data: []byte{
				// v=2, p=0, count=1, BYE, len=1
				0x81, 0xcb, 0x00, 0x01,
				// ssrc=0x902f9e2e
				0x90, 0x2f, 0x9e, 0x2e,
				// len=1, text=F
				0x01, 0x46,
			},
			WantError: errPacketTooShort,
		},
		{
			Name: "sources missing",
			Data: []byte{
				// v=2, p=0, count=2, BYE, len=1
				0x82, 0xcb, 0x00, 0x01,
				// ssrc=0x902f9e2e
				0x90, 0x2f, 0x9e, 0x2e,
			},
			WantError: errPacketTooShort,
		},
		{
			Name:      "nil",
			Data:      nil,
			WantError: errPacketTooShort,
		},
	} {
		var bye Goodbye
		err := bye.Unmarshal(test.Data)
		if got, want := err, test.WantError; got != want {
			t.Fatalf("Unmarshal %q bye: err = %v, want %v", test.Name, got, want)
		}
		if err != nil {
			continue
		}

		if got, want := bye, test.Want; !reflect.DeepEqual(got, want) {
			t.Fatalf("Unmarshal %q bye: got %#v, want %#v", test.Name, got, want)
		}
	}
}

func TestGoodbyeRoundTrip(t *testing.T) {
	for _, test := range []struct {
		Name      string
		Packet    Goodbye
		WantError error
	}{
		{
			Name: "empty",
			Packet: Goodbye{
				Sources: []uint32{},
			},
		},
		{
			Name: "valid",
			Packet: Goodbye{
				Sources: []uint32{0x01020304, 0x05060708},
				Reason:  "because",
			},
		},
		{
			Name: "empty reason",
			Packet: Goodbye{
				Sources: []uint32{0x01020304},
				Reason:  "",
			},
		},
		{
			Name: "reason no source",
			Packet: Goodbye{
				Sources: []uint32{},
				Reason:  "foo",
			},
		},
		{
			Name: "short reason",
			Packet: Goodbye{
				Sources: []uint32{},
				Reason:  "f",
			},
		},
		{
			Name: "reason too long",
			Packet: Goodbye{
				Sources: []uint32{},
				Reason:  string(make([]byte, 256)),
			},
			WantError: errReasonTooLong,
		},
		{
			Name: "too many sources",
			Packet: Goodbye{
				Sources: make([]uint32, 32),
			},
			WantError: errTooManySources,
		},
	} {
		data, err := test.Packet.Marshal()
		if got, want := err, test.WantError; got != want {
			t.Fatalf("Marshal %q: err = %v, want %v", test.Name, got, want)
		}
		if err != nil {
			continue
		}

		var decoded Goodbye
		if err := decoded.Unmarshal(data); err != nil {
			t.Fatalf("Unmarshal %q: %v", test.Name, err)
		}

		if got, want := decoded, test.Packet; !reflect.DeepEqual(got, want) {
			t.Fatalf("%q bye round trip: got %#v, want %#v", test.Name, got, want)
		}
	}
}
