// Package wav 生成 PCM WAV 音频，用于在外部音频服务不可用时提供可播放的占位音频。
package wav

import (
	"encoding/binary"
	"math"
)

const (
	// SampleRate 采样率固定 44100 Hz
	SampleRate = 44100

	bitsPerSample = 16
	headerSize    = 44
)

// VariantFrequency 返回音效候选位（1-4）对应的提示音频率
// 四个候选分别用 A4/C5/E5/G5，方便人耳区分
func VariantFrequency(variant int) float64 {
	switch variant {
	case 1:
		return 440
	case 2:
		return 523
	case 3:
		return 659
	default:
		return 784
	}
}

// Tone 生成指定频率的正弦波提示音（立体声，双声道写同样的采样）
func Tone(freq float64, seconds float64) []byte {
	sampleCount := int(float64(SampleRate) * seconds)
	data := make([]byte, 0, sampleCount*4)

	for i := 0; i < sampleCount; i++ {
		sample := math.Sin(2*math.Pi*freq*float64(i)/float64(SampleRate)) * 0.3
		value := int16(sample * 32767)

		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(value))
		data = append(data, buf[0], buf[1], buf[0], buf[1])
	}

	return encode(data, 2)
}

// VoiceTone 生成模拟人声的占位音频（单声道，220Hz 基频叠加泛音，带包络）
func VoiceTone(seconds float64) []byte {
	const freq = 220.0

	sampleCount := int(float64(SampleRate) * seconds)
	data := make([]byte, 0, sampleCount*2)

	for i := 0; i < sampleCount; i++ {
		envelope := math.Sin(float64(i) / float64(sampleCount) * math.Pi)
		t := float64(i) / float64(SampleRate)
		sample := (math.Sin(2*math.Pi*freq*t)*0.3 +
			math.Sin(2*math.Pi*freq*2*t)*0.1 +
			math.Sin(2*math.Pi*freq*3*t)*0.05) * envelope
		value := int16(sample * 32767)

		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(value))
		data = append(data, buf[0], buf[1])
	}

	return encode(data, 1)
}

// encode 拼接 RIFF/WAVE 头和 PCM 数据
func encode(pcm []byte, channels int) []byte {
	byteRate := SampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	out := make([]byte, headerSize+len(pcm))
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+len(pcm)))
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(out[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:28], SampleRate)
	binary.LittleEndian.PutUint32(out[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], bitsPerSample)
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(len(pcm)))
	copy(out[headerSize:], pcm)

	return out
}
