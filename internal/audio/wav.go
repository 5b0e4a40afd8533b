// Package audio encodes procedurally-generated and synthesized PCM into WAV
// files, and generates the two fixed sound assets (chime, drop tone).
package audio

import (
	"bytes"
	"encoding/binary"
	"math"
)

const (
	formatIEEEFloat uint16 = 3
	bitsPerSample   uint16 = 32
	channels        uint16 = 1
)

// EncodeFloat32Mono builds a canonical RIFF/WAVE buffer holding mono float32
// samples at sampleRate, using the IEEE-float format tag (3) rather than the
// integer PCM tag (1) a 16-bit encoder would use.
func EncodeFloat32Mono(samples []float32, sampleRate int) []byte {
	data := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(s))
	}

	blockAlign := channels * (bitsPerSample / 8)
	byteRate := uint32(sampleRate) * uint32(blockAlign)

	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(data)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, formatIEEEFloat)
	binary.Write(buf, binary.LittleEndian, channels)
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, bitsPerSample)

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)

	return buf.Bytes()
}
</content>
