package rtcp

import (
	"reflect"
	"testing"
)

func TestReceiverReportUnmarshal(t *testing.T) {
	for _, test := range []struct {
		Name      string
		Data      []byte
		Want      ReceiverReport
		WantError error
	}{
		{
			Name:      "nil",
			Data:      nil,
			WantError: errPacketTooShort,
		},
		{
			Name: "valid",
			Data: []byte{
				// v=2, p=0, count=1, RR, len=7
				0x81, 0xc9, 0x0, 0x7,
				// ssrc=0x902f9e2e
				0x90, 0x2f, 0x9e, 0x2e,
				// ssrc=0xbc5e9a40
				0xbc, 0x5e, 0x9a, 0x40,
				// fracLost=0, totalLost=0
				0x0, 0x0, 0x0, 0x0,
				// lastSeq=0x46e1
				0x0, 0x0, 0x46, 0xe1,
				// jitter=273
				0x0, 0x0, 0x1, 0x11,
				// lsr=0x9f36432
				0x9, 0xf3, 0x64, 0x32,
				// delay=150137
				0x0, 0x2, 0x4a, 0x79,
			},
			Want: ReceiverReport{
				SSRC: 0x902f9e2e,
				Reports: []ReceptionReport{{
					SSRC:               0xbc5e9a40,
					FractionLost:       0,
					TotalLost:          0,
					LastSequenceNumber: 0x46e1,
					Jitter:             273,
					LastSenderReport:   0x9f36432,
					Delay:              150137,
				}},
			},
		},
		{
			Name: "version mismatch",
			Data: []byte{
				// v=1, p=0, count=1, RR, len=7
				0x41, 0xc9, 0x0, 0x7,
				0x90, 0x2f, 0x9e, 0x2e,
				0xbc, 0x5e, 0x9a, 0x40,
				0x0, 0x0, 0x0, 0x0,
				0x0, 0x0, 0x46, 0xe1,
				0x0, 0x0, 0x1, 0x11,
				0x9, 0xf3, 0x64, 0x32,
				0x0, 0x2, 0x4a, 0x79,
			},
			WantError: errBadVersion,
		},
		{
			Name: "wrong type",
			Data: []byte{
				// v=2, p=0, count=1, SR, len=7
				0x81, 0xc8, 0x0, 0x7,
				0x90, 0x2f, 0x9e, 0x2e,
				0xbc, 0x5e, 0x9a, 0x40,
				0x0, 0x0, 0x0, 0x0,
				0x0, 0x0, 0x46, 0xe1,
				0x0, 0x0, 0x1, 0x11,
				0x9, 0xf3, 0x64, 0x32,
				0x0, 0x2, 0x4a, 0x79,
			},
			WantError: errWrongType,
		},
		{
			Name: "bad count",
			Data: []byte{
				// v=2, p=0, count=2, RR, len=7
				0x82, 0xc9, 0x0, 0x7,
				0x90, 0x2f, 0x9e, 0x2e,
				0xbc, 0x5e, 0x9a, 0x40,
				0x0, 0x0, 0x0, 0x0,
				0x0, 0x0, 0x46, 0xe1,
				0x0, 0x0, 0x1, 0x11,
				0x9, 0xf3, 0x64, 0x32,
				0x0, 0x2, 0x4a, 0x79,
			},
			WantError: errPacketTooShort,
		},
	} {
		var rr ReceiverReport
		err := rr.Unmarshal(test.Data)
		if got, want := err, test.WantError; got != want {
			t.Fatalf("Unmarshal %q rr: err = %v, want %v", test.Name, got, want)
		}
		if err != nil {
			continue
		}

		if got, want := rr, test.Want; !reflect.DeepEqual(got, want) {
			t.Fatalf("Unmarshal %q rr: got %#v, want %#v", test.Name, got, want)
		}
	}
}

func TestReceiverReportRoundTrip(t *testing.T) {
	for _, test := range []struct {
		Name      string
		Packet    ReceiverReport
		WantError error
	}{
		{
			Name: "valid",
			Packet: ReceiverReport{
				SSRC: 0x902f9e2e,
				Reports: []ReceptionReport{
					{
						SSRC:               0xbc5e9a40,
						FractionLost:       3,
						TotalLost:          4,
						LastSequenceNumber: 5,
						Jitter:             6,
						LastSenderReport:   7,
						Delay:              8,
					},
					{
						SSRC: 0x12345678,
					},
				},
			},
		},
		{
			Name: "also valid",
			Packet: ReceiverReport{
				SSRC: 0xffffffff,
				Reports: []ReceptionReport{{
					SSRC:      0xbc5e9a40,
					TotalLost: (1 << 24) - 1,
				}},
			},
		},
		{
			Name: "extension",
			Packet: ReceiverReport{
				SSRC:              0x902f9e2e,
				ProfileExtensions: []byte{0x42, 0x42, 0x42, 0x42},
			},
		},
		{
			Name: "invalid total lost",
			Packet: ReceiverReport{
				SSRC: 0x902f9e2e,
				Reports: []ReceptionReport{{
					TotalLost: 1 << 25,
				}},
			},
			WantError: errInvalidTotalLost,
		},
		{
			Name: "too many reports",
			Packet: ReceiverReport{
				SSRC:    0x902f9e2e,
				Reports: make([]ReceptionReport, 32),
			},
			WantError: errTooManyReports,
		},
	} {
		data, err := test.Packet.Marshal()
		if got, want := err, test.WantError; got != want {
			t.Fatalf("Marshal %q: err = %v, want %v", test.Name, got, want)
		}
		if err != nil {
			continue
		}

		var decoded ReceiverReport
		if err := decoded.Unmarshal(data); err != nil {
			t.Fatalf("Unmarshal %q: %v", test.Name, err)
		}

		if got, want := decoded, test.Packet; !reflect.DeepEqual(got, want) {
			t.Fatalf("%q rr round trip: got %#v, want %#v", test.Name, got, want)
		}
	}
}
