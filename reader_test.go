package rtcp

import (
	"bytes"
	"io"
	"reflect"
	"testing"
)

func TestReadPacket(t *testing.T) {
	r := NewReader(bytes.NewReader(realPacket))

	wantHeaders := []Header{
		{Version: 2, Count: 1, Type: TypeReceiverReport, Length: 7},
		{Version: 2, Count: 1, Type: TypeSourceDescription, Length: 12},
		{Version: 2, Count: 1, Type: TypeGoodbye, Length: 1},
		{Version: 2, Count: 1, Type: TypePayloadSpecificFeedback, Length: 2},
	}

	offset := 0
	for i, want := range wantHeaders {
		header, data, err := r.ReadPacket()
		if err != nil {
			t.Fatalf("ReadPacket #%d: %v", i, err)
		}

		if got := header; !reflect.DeepEqual(got, want) {
			t.Fatalf("ReadPacket #%d header: got %+v, want %+v", i, got, want)
		}

		packetLen := (int(want.Length) + 1) * 4
		if got, want := data, realPacket[offset:offset+packetLen]; !bytes.Equal(got, want) {
			t.Fatalf("ReadPacket #%d data: got %v, want %v", i, got, want)
		}
		offset += packetLen
	}

	if _, _, err := r.ReadPacket(); err != io.EOF {
		t.Fatalf("ReadPacket at end: err = %v, want %v", err, io.EOF)
	}
}

func TestReadPacketTruncated(t *testing.T) {
	// header promises 32 bytes but the stream ends after 8
	r := NewReader(bytes.NewReader(realPacket[:8]))

	if _, _, err := r.ReadPacket(); err != io.ErrUnexpectedEOF {
		t.Fatalf("ReadPacket: err = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func TestReadPacketThenUnmarshal(t *testing.T) {
	// packets read from a Reader feed straight into the packet parser
	r := NewReader(bytes.NewReader(realPacket))

	header, data, err := r.ReadPacket()
	if err != nil {
		t.Fatalf("ReadPacket: %v", err)
	}
	if got, want := header.Type, TypeReceiverReport; got != want {
		t.Fatalf("header type: got %v, want %v", got, want)
	}

	var rr ReceiverReport
	if err := rr.Unmarshal(data); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got, want := rr.SSRC, uint32(0x902f9e2e); got != want {
		t.Fatalf("rr ssrc: got %#x, want %#x", got, want)
	}
}
