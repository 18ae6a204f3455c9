package audio

import (
	"encoding/binary"
	"testing"
)

func TestIsSilent(t *testing.T) {
	tests := []struct {
		name   string
		buffer []int16
		want   bool
	}{
		{"empty", nil, true},
		{"quiet", []int16{0, 100, -499, 500}, true},
		{"loud positive", []int16{0, 501}, false},
		{"loud negative", []int16{-501, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSilent(tt.buffer); got != tt.want {
				t.Errorf("isSilent: got %t, want %t", got, tt.want)
			}
		})
	}
}

func TestSamplesToWav(t *testing.T) {
	samples := []int16{1, -1, 1000}
	wav, err := samplesToWav(samples, 16000)
	if err != nil {
		t.Fatalf("samplesToWav: %v", err)
	}

	if len(wav) != 44+len(samples)*2 {
		t.Fatalf("length: got %d, want %d", len(wav), 44+len(samples)*2)
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" || string(wav[36:40]) != "data" {
		t.Error("missing RIFF/WAVE/data markers")
	}
	if rate := binary.LittleEndian.Uint32(wav[24:28]); rate != 16000 {
		t.Errorf("sample rate: got %d", rate)
	}
	if size := binary.LittleEndian.Uint32(wav[40:44]); size != 6 {
		t.Errorf("data size: got %d, want 6", size)
	}
	if last := int16(binary.LittleEndian.Uint16(wav[48:50])); last != 1000 {
		t.Errorf("last sample: got %d", last)
	}
}
