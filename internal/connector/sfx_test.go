package connector

import (
	"context"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"admaker/internal/assets"
	"admaker/internal/config"
	appmodel "admaker/internal/model"
)

func TestSFXGenerator_MockVariants(t *testing.T) {
	Convey("未配置密钥时音效生成返回全量 mock 候选", t, func() {
		gen := NewSFXGenerator(&config.AudioConfig{}, testPipelineConfig(), assets.NewMemStore())

		Convey("空提示词报错", func() {
			_, err := gen.GenerateVariants(context.Background(), "", 7.5, 1)
			So(err, ShouldEqual, ErrEmptyPrompt)
		})

		Convey("候选数量恒等于配置值", func() {
			options, err := gen.GenerateVariants(context.Background(), "city traffic", 7.5, 2)
			So(err, ShouldBeNil)
			So(len(options), ShouldEqual, 4)
		})

		Convey("候选位按情绪顺序命名", func() {
			options, _ := gen.GenerateVariants(context.Background(), "city traffic", 7.5, 2)

			names := []string{"Upbeat", "Energetic", "Calm", "Dramatic"}
			for i, option := range options {
				So(option.ID, ShouldEqual, fmt.Sprintf("sfx%d", i+1))
				So(option.Name, ShouldEqual, names[i])
				So(option.Origin, ShouldEqual, appmodel.OriginMock)
				So(option.URL, ShouldEqual, fmt.Sprintf("/api/mock-sfx/2-%d.mp3", i+1))
			}
		})
	})
}

func TestMoodFor(t *testing.T) {
	Convey("moodFor 超出预置表时循环", t, func() {
		So(moodFor(0), ShouldEqual, "upbeat")
		So(moodFor(3), ShouldEqual, "dramatic")
		So(moodFor(4), ShouldEqual, "upbeat")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("capitalize 首字母大写", t, func() {
		So(capitalize("calm"), ShouldEqual, "Calm")
		So(capitalize(""), ShouldBeEmpty)
	})
}
