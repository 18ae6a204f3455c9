package audio

import (
	"bytes"
	"encoding/binary"
)

const (
	silenceThreshold    = int16(500)
	maxUtteranceSeconds = 15
)

func isSilent(buffer []int16) bool {
	for _, sample := range buffer {
		if sample > silenceThreshold || sample < -silenceThreshold {
			return false
		}
	}
	return true
}

// samplesToWav wraps mono 16-bit PCM in a RIFF/WAVE container.
func samplesToWav(samples []int16, sampleRate int) ([]byte, error) {
	var buf bytes.Buffer

	dataSize := len(samples) * 2
	fileSize := 36 + dataSize

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, int32(fileSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, int32(16))
	binary.Write(&buf, binary.LittleEndian, int16(1))
	binary.Write(&buf, binary.LittleEndian, int16(1))
	binary.Write(&buf, binary.LittleEndian, int32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, int32(sampleRate*2))
	binary.Write(&buf, binary.LittleEndian, int16(2))
	binary.Write(&buf, binary.LittleEndian, int16(16))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, int32(dataSize))
	if err := binary.Write(&buf, binary.LittleEndian, samples); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
