// SPDX-License-Identifier: EPL-2.0

package mpeg

import (
	"testing"

	"github.com/ik5/mpadec/internal/audiotest"
)

func TestCRC16_Reference(t *testing.T) {
	t.Parallel()

	// CRC-16/UMTS style check value: poly 0x8005, init 0, no reflection.
	if got := crc16(0, []byte("123456789")); got != 0xFEE8 {
		t.Errorf("crc16() = %#04x, want 0xfee8", got)
	}
}

func TestCheckCRC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    audiotest.StreamSpec
		corrupt bool
		want    bool
	}{
		{name: "layer 3 stereo", spec: audiotest.StreamSpec{CRC: true}, want: true},
		{name: "layer 3 mono", spec: audiotest.StreamSpec{CRC: true, Mono: true}, want: true},
		{name: "layer 3 mpeg-2", spec: audiotest.StreamSpec{CRC: true, Version: 2}, want: true},
		{name: "layer 1", spec: audiotest.StreamSpec{CRC: true, Layer: 1}, want: true},
		{name: "layer 3 corrupt", spec: audiotest.StreamSpec{CRC: true}, corrupt: true, want: false},
		{name: "layer 1 corrupt", spec: audiotest.StreamSpec{CRC: true, Layer: 1}, corrupt: true, want: false},
		// Layer II coverage is not computed, so a damaged frame still passes.
		{name: "layer 2 unchecked", spec: audiotest.StreamSpec{CRC: true, Layer: 2}, corrupt: true, want: true},
		{name: "no crc", spec: audiotest.StreamSpec{}, corrupt: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.spec.Frames = 1
			tt.spec.Payload = func(_ int, p []byte) {
				for i := range p {
					p[i] = byte(i * 7)
				}
			}
			if tt.corrupt {
				tt.spec.CorruptFrames = []int{0}
			}

			data := audiotest.Build(tt.spec)
			h, err := ParseHeader(data)
			if err != nil {
				t.Fatalf("ParseHeader() error = %v", err)
			}

			if got := checkCRC(h, data); got != tt.want {
				t.Errorf("checkCRC() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProtectedSize_JointStereoLayer1(t *testing.T) {
	t.Parallel()

	h := Header{Layer: Layer1, ChannelMode: ModeJointStereo, ModeExtension: 1}
	// bound 8: 8 bands of two channels plus 24 shared, 4 bits each.
	if got := protectedSize(h); got != (2*8+24)*4/8 {
		t.Errorf("protectedSize() = %d, want %d", got, (2*8+24)*4/8)
	}
}
