package connector

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"admaker/internal/config"
	appmodel "admaker/internal/model"
)

func testPipelineConfig() *config.PipelineConfig {
	return &config.PipelineConfig{
		SceneCount:       4,
		SceneDuration:    7.5,
		SFXVariants:      4,
		SFXGain:          0.3,
		NarrationGain:    1.0,
		NarrationBedGain: 0.3,
		WordsPerMinute:   150,
		VoiceLimit:       8,
	}
}

func TestScriptGenerator_Fallback(t *testing.T) {
	Convey("未配置 LLM 时脚本生成走模板", t, func() {
		gen := NewScriptGenerator(context.Background(), &config.AIConfig{}, testPipelineConfig())

		script := gen.GenerateScenes(context.Background(), &appmodel.GenerateScriptRequest{
			ProductBrief: appmodel.ProductBrief{
				ProductName:    "CloudSync",
				TargetAudience: "remote teams",
				KeyMessage:     "sync everything instantly",
			},
		})

		Convey("返回完整的模板脚本", func() {
			So(script.Origin, ShouldEqual, appmodel.OriginMock)
			So(script.Reason, ShouldNotBeEmpty)
			So(len(script.Scenes), ShouldEqual, 4)
		})

		Convey("场景序号从1连续编号，时长统一", func() {
			total := 0.0
			for i, scene := range script.Scenes {
				So(scene.Number, ShouldEqual, i+1)
				So(scene.Duration, ShouldEqual, 7.5)
				So(scene.Script, ShouldNotBeEmpty)
				So(scene.VideoPrompt, ShouldNotBeEmpty)
				So(scene.SFXPrompt, ShouldNotBeEmpty)
				total += scene.Duration
			}
			So(total, ShouldEqual, 30)
		})

		Convey("模板内容带入产品信息", func() {
			So(script.Scenes[0].Script, ShouldContainSubstring, "remote teams")
			So(script.Scenes[1].Script, ShouldContainSubstring, "CloudSync")
			So(script.Scenes[1].Script, ShouldContainSubstring, "sync everything instantly")
		})
	})
}

func TestFallbackTemplateFor(t *testing.T) {
	Convey("模板按基调选取", t, func() {
		Convey("已知基调各有专属模板", func() {
			So(fallbackTemplateFor("Energetic", "CloudSync", "teams", "fast").scripts[0],
				ShouldStartWith, "BOOM!")
			So(fallbackTemplateFor("Dramatic", "CloudSync", "teams", "fast").scripts[0],
				ShouldContainSubstring, "clock strikes midnight")
			So(fallbackTemplateFor("Humorous", "CloudSync", "teams", "fast").scripts[3],
				ShouldContainSubstring, "In a good way")
		})

		Convey("基调匹配不区分大小写", func() {
			So(fallbackTemplateFor("quirky", "CloudSync", "teams", "fast").scripts[0],
				ShouldContainSubstring, "ninjas")
		})

		Convey("未识别的基调退回 Professional", func() {
			tpl := fallbackTemplateFor("Mysterious", "CloudSync", "teams", "fast")
			So(tpl.scripts[0], ShouldContainSubstring, "demand excellence")
			So(tpl.scripts[1], ShouldEqual, "Introducing CloudSync. fast")
		})

		Convey("同一请求反复生成内容一致", func() {
			gen := NewScriptGenerator(context.Background(), &config.AIConfig{}, testPipelineConfig())
			a := gen.fallbackScenes("CloudSync", "teams", "fast", "Nostalgic")
			b := gen.fallbackScenes("CloudSync", "teams", "fast", "Nostalgic")
			So(a[0].Script, ShouldEqual, b[0].Script)
			So(a[0].Script, ShouldContainSubstring, "Remember when")
		})
	})
}

func TestScriptGenerator_ParseScenes(t *testing.T) {
	Convey("parseScenes 解析模型返回", t, func() {
		gen := NewScriptGenerator(context.Background(), &config.AIConfig{}, testPipelineConfig())

		Convey("干净的 JSON 数组", func() {
			scenes, err := gen.parseScenes(`[{"number":1,"duration":5,"script":"a","videoPrompt":"b","sfxPrompt":"c"}]`)
			So(err, ShouldBeNil)
			So(len(scenes), ShouldEqual, 1)
		})

		Convey("裹在 markdown 代码块里", func() {
			raw := "```json\n[{\"number\":1,\"duration\":5,\"script\":\"a\",\"videoPrompt\":\"b\",\"sfxPrompt\":\"c\"}]\n```"
			scenes, err := gen.parseScenes(raw)
			So(err, ShouldBeNil)
			So(len(scenes), ShouldEqual, 1)
		})

		Convey("数组前后有说明文字", func() {
			raw := `Here is your script: [{"number":1,"duration":5,"script":"a","videoPrompt":"b","sfxPrompt":"c"}] Hope it helps!`
			scenes, err := gen.parseScenes(raw)
			So(err, ShouldBeNil)
			So(len(scenes), ShouldEqual, 1)
		})

		Convey("序号和时长不信任模型输出", func() {
			raw := `[{"number":9,"duration":99,"script":"a","videoPrompt":"b","sfxPrompt":"c"},{"number":1,"duration":1,"script":"d","videoPrompt":"e","sfxPrompt":"f"}]`
			scenes, err := gen.parseScenes(raw)
			So(err, ShouldBeNil)
			So(scenes[0].Number, ShouldEqual, 1)
			So(scenes[1].Number, ShouldEqual, 2)
			So(scenes[0].Duration, ShouldEqual, 7.5)
			So(scenes[1].Duration, ShouldEqual, 7.5)
		})

		Convey("缺少必要字段报错", func() {
			_, err := gen.parseScenes(`[{"number":1,"duration":5,"script":"a"}]`)
			So(err, ShouldNotBeNil)
		})

		Convey("没有 JSON 数组报错", func() {
			_, err := gen.parseScenes("sorry, I cannot help with that")
			So(err, ShouldNotBeNil)
		})

		Convey("空数组报错", func() {
			_, err := gen.parseScenes("[]")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestScriptGenerator_GenerateNarration(t *testing.T) {
	Convey("旁白文案降级路径", t, func() {
		gen := NewScriptGenerator(context.Background(), &config.AIConfig{}, testPipelineConfig())

		Convey("有场景时拼接各场景文案", func() {
			text, origin := gen.GenerateNarration(context.Background(), &appmodel.GenerateScriptRequest{
				ProductBrief: appmodel.ProductBrief{ProductName: "CloudSync"},
				Scenes: []appmodel.Scene{
					{Number: 1, Script: "First line."},
					{Number: 2, Script: "Second line."},
				},
			})
			So(origin, ShouldEqual, appmodel.OriginMock)
			So(text, ShouldEqual, "First line. Second line.")
		})

		Convey("没有场景时用固定句式", func() {
			text, origin := gen.GenerateNarration(context.Background(), &appmodel.GenerateScriptRequest{
				ProductBrief: appmodel.ProductBrief{
					ProductName:    "CloudSync",
					TargetAudience: "remote teams",
					KeyMessage:     "sync everything",
				},
			})
			So(origin, ShouldEqual, appmodel.OriginMock)
			So(text, ShouldContainSubstring, "Introducing CloudSync")
			So(text, ShouldContainSubstring, "remote teams")
		})
	})
}

func TestCleanScriptJSON(t *testing.T) {
	Convey("cleanScriptJSON 截取最外层数组", t, func() {
		So(cleanScriptJSON(`[1,2]`), ShouldEqual, "[1,2]")
		So(cleanScriptJSON("```json\n[1,2]\n```"), ShouldEqual, "[1,2]")
		So(cleanScriptJSON(`prefix [1,[2]] suffix`), ShouldEqual, "[1,[2]]")
		So(cleanScriptJSON("no array here"), ShouldBeEmpty)
	})
}

func TestDefaultMood(t *testing.T) {
	Convey("基调默认 Professional", t, func() {
		So(defaultMood(""), ShouldEqual, "Professional")
		So(defaultMood("Playful"), ShouldEqual, "Playful")
	})
}
