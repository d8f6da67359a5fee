package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"admaker/internal/ai/component"
	"admaker/internal/config"
	appmodel "admaker/internal/model"
)

// ScriptGenerator 广告脚本生成连接器
// LLM 不可用或返回不可解析时退回确定性的模板脚本，保证调用方永远拿到完整场景
type ScriptGenerator struct {
	chatModel model.BaseChatModel
	pipe      *config.PipelineConfig
}

// NewScriptGenerator 创建脚本生成器
// API key 未配置时不报错，后续调用全部走模板
func NewScriptGenerator(ctx context.Context, aiCfg *config.AIConfig, pipe *config.PipelineConfig) *ScriptGenerator {
	g := &ScriptGenerator{pipe: pipe}

	if aiCfg.APIKey == "" {
		log.Warn().Msg("AI API key not configured, script generation will use fallback templates")
		return g
	}

	chatModel, err := component.NewChatModel(ctx, aiCfg)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize chat model, script generation will use fallback templates")
		return g
	}

	g.chatModel = chatModel
	return g
}

// GenerateScenes 生成分场景脚本
// 任何 LLM 侧失败都降级为模板脚本，不向调用方返回错误
func (g *ScriptGenerator) GenerateScenes(ctx context.Context, req *appmodel.GenerateScriptRequest) *appmodel.Script {
	mood := defaultMood(req.Mood)

	if g.chatModel == nil {
		return &appmodel.Script{
			Scenes: g.fallbackScenes(req.ProductName, req.TargetAudience, req.KeyMessage, mood),
			Origin: appmodel.OriginMock,
			Reason: "AI service not configured",
		}
	}

	messages := []*schema.Message{
		schema.SystemMessage("You are a commercial script writer. Always return valid JSON."),
		schema.UserMessage(g.buildScenePrompt(req.ProductName, req.TargetAudience, req.KeyMessage, mood)),
	}

	resp, err := g.chatModel.Generate(ctx, messages)
	if err != nil {
		log.Warn().Err(err).Str("product", req.ProductName).Msg("script generation failed, using fallback")
		return &appmodel.Script{
			Scenes: g.fallbackScenes(req.ProductName, req.TargetAudience, req.KeyMessage, mood),
			Origin: appmodel.OriginMock,
			Reason: "Using fallback script due to API error",
		}
	}

	scenes, err := g.parseScenes(resp.Content)
	if err != nil {
		log.Warn().Err(err).Str("raw", truncate(resp.Content, 200)).Msg("script response unparseable, using fallback")
		return &appmodel.Script{
			Scenes: g.fallbackScenes(req.ProductName, req.TargetAudience, req.KeyMessage, mood),
			Origin: appmodel.OriginMock,
			Reason: "Using fallback script due to malformed response",
		}
	}

	log.Info().Int("scenes", len(scenes)).Str("product", req.ProductName).Msg("脚本生成完成")
	return &appmodel.Script{Scenes: scenes, Origin: appmodel.OriginReal}
}

// GenerateNarration 基于已有场景生成旁白文案
// 失败时把各场景文案拼成一段
func (g *ScriptGenerator) GenerateNarration(ctx context.Context, req *appmodel.GenerateScriptRequest) (string, appmodel.Origin) {
	mood := defaultMood(req.Mood)

	if g.chatModel != nil {
		messages := []*schema.Message{
			schema.SystemMessage("You are a commercial voiceover writer."),
			schema.UserMessage(g.buildNarrationPrompt(req, mood)),
		}

		resp, err := g.chatModel.Generate(ctx, messages)
		if err == nil && strings.TrimSpace(resp.Content) != "" {
			return strings.TrimSpace(resp.Content), appmodel.OriginReal
		}
		if err != nil {
			log.Warn().Err(err).Msg("narration script generation failed, using fallback")
		}
	}

	if len(req.Scenes) > 0 {
		parts := make([]string, 0, len(req.Scenes))
		for _, scene := range req.Scenes {
			parts = append(parts, scene.Script)
		}
		return strings.Join(parts, " "), appmodel.OriginMock
	}

	return fmt.Sprintf("Introducing %s - %s. Perfect for %s. Get started today!",
		req.ProductName, req.KeyMessage, req.TargetAudience), appmodel.OriginMock
}

// buildScenePrompt 构建分场景脚本提示词
func (g *ScriptGenerator) buildScenePrompt(productName, targetAudience, keyMessage, mood string) string {
	totalSeconds := g.pipe.SceneDuration * float64(g.pipe.SceneCount)

	return fmt.Sprintf(`Create a %.0f-second commercial script with exactly %d scenes.

Product: %s
Audience: %s
Key Message: %s
Mood: %s

Return a JSON array with %d scenes, each with:
- number: 1-%d
- duration: %.1f
- script: What the voiceover says
- videoPrompt: Visual description for video generation
- sfxPrompt: Sound effects description

Return only valid JSON, no additional text.
Example format:
[{"number": 1, "duration": %.1f, "script": "...", "videoPrompt": "...", "sfxPrompt": "..."}]`,
		totalSeconds, g.pipe.SceneCount,
		productName, targetAudience, keyMessage, mood,
		g.pipe.SceneCount, g.pipe.SceneCount, g.pipe.SceneDuration, g.pipe.SceneDuration)
}

// buildNarrationPrompt 构建旁白文案提示词
func (g *ScriptGenerator) buildNarrationPrompt(req *appmodel.GenerateScriptRequest, mood string) string {
	descriptions := make([]string, 0, len(req.Scenes))
	for _, scene := range req.Scenes {
		descriptions = append(descriptions,
			fmt.Sprintf("Scene %d (%.1fs): %s", scene.Number, scene.Duration, scene.Script))
	}

	totalSeconds := g.pipe.SceneDuration * float64(g.pipe.SceneCount)

	return fmt.Sprintf(`Create a cohesive %.0f-second voiceover script for a commercial based on these scenes:

Product: %s
Audience: %s
Key Message: %s
Mood: %s

Scenes:
%s

Create a natural, flowing voiceover that:
1. Combines the scene scripts into one cohesive narrative
2. Maintains the %s tone throughout
3. Emphasizes the key message: %s
4. Totals about 75-80 words (for %.0f seconds)
5. Ends with a clear call to action

Return only the voiceover script text, no formatting or labels.`,
		totalSeconds, req.ProductName, req.TargetAudience, req.KeyMessage, mood,
		strings.Join(descriptions, "\n"),
		strings.ToLower(mood), req.KeyMessage, totalSeconds)
}

// parseScenes 解析 LLM 返回的场景数组
// 模型经常裹 markdown 代码块或附加说明文字，先清理再找最外层的 JSON 数组
func (g *ScriptGenerator) parseScenes(raw string) ([]appmodel.Scene, error) {
	cleaned := cleanScriptJSON(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var scenes []appmodel.Scene
	if err := json.Unmarshal([]byte(cleaned), &scenes); err != nil {
		return nil, fmt.Errorf("unmarshal scenes: %w", err)
	}

	if len(scenes) == 0 {
		return nil, fmt.Errorf("empty scene list")
	}

	for i := range scenes {
		if scenes[i].Script == "" || scenes[i].VideoPrompt == "" {
			return nil, fmt.Errorf("scene %d missing required fields", i+1)
		}
		// 序号和时长不信任模型输出，统一归一化
		scenes[i].Number = i + 1
		scenes[i].Duration = g.pipe.SceneDuration
	}

	return scenes, nil
}

// cleanScriptJSON 去掉 markdown 代码块并截取最外层的 JSON 数组
func cleanScriptJSON(raw string) string {
	text := strings.ReplaceAll(raw, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}

// fallbackScenes 确定性模板脚本，按基调选一套四幕模板
func (g *ScriptGenerator) fallbackScenes(productName, targetAudience, keyMessage, mood string) []appmodel.Scene {
	tpl := fallbackTemplateFor(mood, productName, targetAudience, keyMessage)

	scenes := make([]appmodel.Scene, 0, len(tpl.scripts))
	for i := range tpl.scripts {
		scenes = append(scenes, appmodel.Scene{
			Number:      i + 1,
			Duration:    g.pipe.SceneDuration,
			Script:      tpl.scripts[i],
			VideoPrompt: tpl.visuals[i],
			SFXPrompt:   tpl.sounds[i],
		})
	}
	return scenes
}

// fallbackTemplate 一套四幕的模板文案：悬念、产品亮相、价值证明、行动号召
type fallbackTemplate struct {
	scripts [4]string
	visuals [4]string
	sounds  [4]string
}

// fallbackTemplateFor 按基调关键字取模板，未识别的基调用 Professional
func fallbackTemplateFor(mood, product, audience, message string) fallbackTemplate {
	switch strings.ToLower(strings.TrimSpace(mood)) {
	case "energetic":
		return fallbackTemplate{
			scripts: [4]string{
				fmt.Sprintf("BOOM! Life moves fast for %s. Too fast.", audience),
				fmt.Sprintf("Enter %s. %s", product, message),
				fmt.Sprintf("Watch %s take control with %s", audience, product),
				fmt.Sprintf("%s. Energy redirected. Success amplified.", product),
			},
			visuals: [4]string{
				"Rapid montage: clock spinning, notifications flooding, energy drinks stacking",
				"Product appears in slow-motion glory, background still chaotic but product is calm center",
				"Split screen transformation - chaos to calm, stress to success",
				"Logo slam with particle effects, website URL with fire animation",
			},
			sounds: [4]string{
				"Heart-pumping electronic beat, swoosh sounds, notification pings building chaos",
				"Beat drops to half-time, powerful bass hit on reveal",
				"Building electronic symphony, transformation sound effects",
				"Epic beat drop, crowd cheer, power-up sound",
			},
		}
	case "nostalgic":
		return fallbackTemplate{
			scripts: [4]string{
				fmt.Sprintf("Remember when %s had time to breathe?", audience),
				fmt.Sprintf("%s brings that feeling back. %s", product, message),
				fmt.Sprintf("See %s rediscovering what matters", audience),
				fmt.Sprintf("%s. Some things never go out of style.", product),
			},
			visuals: [4]string{
				"Sepia-toned memories, old photos floating, simpler times montage",
				"Modern day with warm filter, product gently introduced with soft focus",
				"Family moments, genuine smiles, product naturally integrated",
				"Classic logo treatment, timeless design, gentle fade",
			},
			sounds: [4]string{
				"Vintage piano melody, old film projector sounds, gentle strings",
				"Piano continues, modern elements blend in, comfort sounds",
				"Orchestra swells with hope, laughter in background",
				"Nostalgic melody resolves, warm final note",
			},
		}
	case "quirky":
		return fallbackTemplate{
			scripts: [4]string{
				fmt.Sprintf("Plot twist: %s are secretly ninjas. Productivity ninjas.", audience),
				fmt.Sprintf("Their secret weapon? %s. %s", product, message),
				fmt.Sprintf("Now everyone wants to join the %s dojo", product),
				fmt.Sprintf("%s. Ninja-approved. %s-tested.", product, audience),
			},
			visuals: [4]string{
				"Office workers doing parkour over desks, dodging emails like shurikens",
				"Product appears with anime-style sparkles and speed lines",
				"Montage of people doing ridiculous 'training' with the product",
				"Logo with throwing star animation, URL in comic sans (ironically)",
			},
			sounds: [4]string{
				"Comedic martial arts sounds, boing effects, kazoo melody",
				"Magical transformation sound, record scratch, funk bass",
				"Training montage music with silly sound effects",
				"Gong sound, ninja vanish poof, mic drop",
			},
		}
	case "emotional":
		return fallbackTemplate{
			scripts: [4]string{
				fmt.Sprintf("For %s, it's not about the what. It's about the why.", audience),
				fmt.Sprintf("%s understands. %s", product, message),
				fmt.Sprintf("See the difference %s makes in real lives", product),
				fmt.Sprintf("%s. Because %s deserve to feel understood.", product, audience),
			},
			visuals: [4]string{
				"Close-ups of real human moments, struggles, hope in eyes",
				"Product shown through emotional lens, gentle hands, care in design",
				"Transformation stories, tears to smiles, connections made",
				"Soft logo reveal, heartfelt tagline, community imagery",
			},
			sounds: [4]string{
				"Soft piano, ambient room tone, heartbeat",
				"Strings join piano, emotional swell, whispered testimonial",
				"Full orchestra emotional peak, authentic reactions",
				"Emotional resolution, hopeful final notes, silence",
			},
		}
	case "humorous":
		return fallbackTemplate{
			scripts: [4]string{
				fmt.Sprintf("Breaking: %s discovered doing things the hard way. Again.", audience),
				fmt.Sprintf("There's %s. %s (Duh.)", product, message),
				fmt.Sprintf("Now %s have time for important things. Like lunch.", audience),
				fmt.Sprintf("%s. It's so simple, it's stupid. In a good way.", product),
			},
			visuals: [4]string{
				"Comically exaggerated struggles, Rube Goldberg-style complications",
				"Product appears, everyone facepalms at obvious solution",
				"Montage of people doing hilariously mundane activities joyfully",
				"Logo with wink animation, URL with Comic Sans disclaimer",
			},
			sounds: [4]string{
				"Circus music, cartoon sound effects, record scratches",
				"Sitcom 'aha' music, collective 'ohhh', laugh track",
				"Happy-go-lucky tune, eating sounds, satisfied sighs",
				"Punchline drum hit, giggle, product jingle",
			},
		}
	case "dramatic":
		return fallbackTemplate{
			scripts: [4]string{
				fmt.Sprintf("The clock strikes midnight. %s face their greatest challenge.", audience),
				fmt.Sprintf("One choice changes everything. %s. %s", product, message),
				fmt.Sprintf("Witness the transformation. %s rise victorious.", audience),
				fmt.Sprintf("%s. When failure is not an option.", product),
			},
			visuals: [4]string{
				"Noir lighting, rain on windows, intense close-ups, ticking clock",
				"Dramatic product reveal, lightning flash, hero shot angle",
				"Epic montage of success, obstacles overcome, triumphant moments",
				"Logo strikes like lightning, epic final frame, cinematic finish",
			},
			sounds: [4]string{
				"Ominous orchestral opening, thunder, clock ticking intensifies",
				"Orchestra hits climax, silence, then powerful resumption",
				"Battle music, victory sounds, crowd roar building",
				"Massive orchestral finale, impact sound, echoing resolution",
			},
		}
	case "inspirational":
		return fallbackTemplate{
			scripts: [4]string{
				fmt.Sprintf("Every %s has a dream. What's stopping you?", audience),
				fmt.Sprintf("%s believes in your potential. %s", product, message),
				fmt.Sprintf("Join thousands of %s already living their dreams", audience),
				fmt.Sprintf("%s. Your dream. Our mission. Let's begin.", product),
			},
			visuals: [4]string{
				"Sunrise shots, people looking at horizons, dreams visualized",
				"Product enabling dreams, barriers breaking, possibilities opening",
				"Success montage, achievements unlocked, joy and fulfillment",
				"Aspirational logo treatment, call to action, unlimited sky",
			},
			sounds: [4]string{
				"Inspiring piano intro, wind sounds, aspirational ambience",
				"Orchestra joins piano, breakthrough sounds, hope rising",
				"Full inspirational orchestra, cheers, achievement sounds",
				"Triumphant finale, eagle cry, infinite possibility",
			},
		}
	default:
		return fallbackTemplate{
			scripts: [4]string{
				fmt.Sprintf("%s demand excellence. They deserve tools that deliver.", audience),
				fmt.Sprintf("Introducing %s. %s", product, message),
				fmt.Sprintf("Leading organizations trust %s to drive results", product),
				fmt.Sprintf("%s. Professional grade. %s approved.", product, audience),
			},
			visuals: [4]string{
				"Sleek office environments, confident professionals, clean aesthetics",
				"Product showcase with premium lighting, UI demonstrations, elegant transitions",
				"Success metrics visualizing, testimonial overlays, global reach imagery",
				"Prestigious logo animation, clean contact information, trust badges",
			},
			sounds: [4]string{
				"Sophisticated ambient music, subtle tech sounds",
				"Music builds with corporate gravitas, interface sounds",
				"Orchestral crescendo, success chimes, global ambience",
				"Confident musical resolution, premium sound signature",
			},
		}
	}
}

// defaultMood 基调默认 Professional
func defaultMood(mood string) string {
	if mood == "" {
		return "Professional"
	}
	return mood
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
