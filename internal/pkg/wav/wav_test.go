package wav

import (
	"encoding/binary"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTone(t *testing.T) {
	Convey("Tone 生成合法的立体声 WAV", t, func() {
		data := Tone(440, 0.5)

		Convey("包含 RIFF/WAVE 头", func() {
			So(len(data), ShouldBeGreaterThan, 44)
			So(string(data[0:4]), ShouldEqual, "RIFF")
			So(string(data[8:12]), ShouldEqual, "WAVE")
			So(string(data[36:40]), ShouldEqual, "data")
		})

		Convey("声道数为 2", func() {
			So(binary.LittleEndian.Uint16(data[22:24]), ShouldEqual, 2)
		})

		Convey("数据长度匹配采样数", func() {
			// 0.5s * 44100 采样 * 2声道 * 2字节
			expected := int(0.5 * 44100 * 4)
			So(int(binary.LittleEndian.Uint32(data[40:44])), ShouldEqual, expected)
			So(len(data), ShouldEqual, 44+expected)
		})
	})

	Convey("VariantFrequency 每个候选位频率不同", t, func() {
		seen := map[float64]bool{}
		for v := 1; v <= 4; v++ {
			seen[VariantFrequency(v)] = true
		}
		So(len(seen), ShouldEqual, 4)
		So(VariantFrequency(1), ShouldEqual, 440)
	})
}

func TestVoiceTone(t *testing.T) {
	Convey("VoiceTone 生成单声道占位音频", t, func() {
		data := VoiceTone(1)

		So(binary.LittleEndian.Uint16(data[22:24]), ShouldEqual, 1)
		So(int(binary.LittleEndian.Uint32(data[40:44])), ShouldEqual, 44100*2)

		Convey("包络首尾接近静音", func() {
			first := int16(binary.LittleEndian.Uint16(data[44:46]))
			So(first, ShouldBeBetween, -100, 100)
		})
	})
}
