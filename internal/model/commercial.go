// Package model 定义广告生成管线的领域类型。
package model

// Origin 标记产物来自真实生成服务还是内置降级
type Origin string

const (
	OriginReal Origin = "real"
	OriginMock Origin = "mock"
)

// SceneStage 场景在管线中的阶段
type SceneStage string

const (
	StagePending    SceneStage = "pending"
	StageScripted   SceneStage = "scripted"
	StageVideoQueue SceneStage = "video_queued"
	StageVideoReady SceneStage = "video_ready"
	StageSFXReady   SceneStage = "sfx_ready"
	StageStitched   SceneStage = "stitched"
)

// Scene 脚本中的一个场景
type Scene struct {
	Number      int     `json:"number"`      // 场景序号，1 起始
	Duration    float64 `json:"duration"`    // 时长（秒）
	Script      string  `json:"script"`      // 旁白文案
	VideoPrompt string  `json:"videoPrompt"` // 视频生成提示词
	SFXPrompt   string  `json:"sfxPrompt"`   // 音效提示词
}

// Script 完整广告脚本
type Script struct {
	Scenes []Scene `json:"scenes"`
	Origin Origin  `json:"origin"`
	Reason string  `json:"reason,omitempty"` // 降级原因
}

// GeneratedVideo 单场景生成视频
type GeneratedVideo struct {
	SceneNumber int    `json:"sceneNumber"`
	VideoURL    string `json:"videoUrl"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Status      string `json:"status"` // success / mock / error
	Origin      Origin `json:"origin"`
	Error       string `json:"error,omitempty"`
}

// SoundEffectOption 一个音效候选
type SoundEffectOption struct {
	ID     string `json:"id"`   // sfx1..sfx4
	Name   string `json:"name"` // 情绪名（Upbeat 等）
	URL    string `json:"url"`
	Origin Origin `json:"origin"`
	Error  string `json:"error,omitempty"`
}

// SelectedSoundEffect 用户为某个场景选中的音效
type SelectedSoundEffect struct {
	URL    string `json:"url"`
	Origin Origin `json:"origin,omitempty"`
}

// StitchedScene 场景视频与音效合成后的结果
type StitchedScene struct {
	SceneNumber int    `json:"sceneNumber"`
	VideoURL    string `json:"videoUrl"`          // 原视频URL
	SFXURL      string `json:"sfxUrl,omitempty"`  // 混入的音效URL
	CombinedURL string `json:"combinedUrl"`       // 合成产物URL
	SFXMixed    bool   `json:"sfxMixed"`          // 是否真正做了混音
	Error       string `json:"error,omitempty"`   // 降级标注
}

// Voice 可选的旁白音色
type Voice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	PreviewURL  string `json:"previewUrl,omitempty"`
}

// NarrationTrack 生成的旁白音频
type NarrationTrack struct {
	AudioURL  string `json:"audioUrl"`
	VoiceUsed string `json:"voiceUsed"`
	Duration  int    `json:"duration"` // 按语速估算的时长（秒）
	WordCount int    `json:"wordCount,omitempty"`
	FileSize  string `json:"fileSize,omitempty"`
	Origin    Origin `json:"origin"`
	Error     string `json:"error,omitempty"`
}

// FinalArtifact 最终成片
type FinalArtifact struct {
	VideoURL    string `json:"finalVideoUrl"`
	Duration    int    `json:"duration"`   // 四舍五入到秒
	Resolution  string `json:"resolution"` // 形如 1920x1080
	FileSize    string `json:"fileSize"`   // 形如 25.00MB
	ProductName string `json:"productName,omitempty"`
	Origin      Origin `json:"origin"`
	Warning     string `json:"warning,omitempty"`
}
