package model

// ProductBrief 广告创作的基础输入
type ProductBrief struct {
	ProductName    string `json:"productName" binding:"required"` // 产品名（必填）
	TargetAudience string `json:"targetAudience"`                 // 目标人群
	KeyMessage     string `json:"keyMessage"`                     // 核心卖点
	Mood           string `json:"mood"`                           // 广告基调，默认 Professional
}

// GenerateScriptRequest 脚本生成请求
// Type 为 voiceover 时基于已有场景生成旁白文案
type GenerateScriptRequest struct {
	ProductBrief
	Type   string  `json:"type,omitempty"` // scenes（默认）/ voiceover
	Scenes []Scene `json:"scenes,omitempty"`
}

// GenerateVideoRequest 单场景视频生成请求
type GenerateVideoRequest struct {
	Prompt      string  `json:"prompt"`
	Duration    float64 `json:"duration"`
	SceneNumber int     `json:"sceneNumber"`
}

// GenerateSFXRequest 场景音效生成请求
type GenerateSFXRequest struct {
	Prompt      string  `json:"prompt"`
	Duration    float64 `json:"duration"`
	SceneNumber int     `json:"sceneNumber"`
}

// GenerateVoiceoverRequest 旁白合成请求
type GenerateVoiceoverRequest struct {
	Text      string `json:"text"`
	VoiceID   string `json:"voiceId"`
	VoiceName string `json:"voiceName"`
}

// StitchRequest 场景混音请求
// soundEffects 按 sceneNumber 和 videos 配对，没给序号的条目按下标对齐
type StitchRequest struct {
	Videos       []GeneratedVideo `json:"videos"`
	SoundEffects []SceneSelection `json:"soundEffects"`
}

// SceneSelection 某个场景的音效选择
type SceneSelection struct {
	SceneNumber int                  `json:"sceneNumber"`
	SelectedSFX *SelectedSoundEffect `json:"selectedSfx,omitempty"`
}

// CreateFinalRequest 成片合成请求
type CreateFinalRequest struct {
	StitchedVideos []StitchedScene `json:"stitchedVideos"`
	VoiceoverURL   string          `json:"voiceoverUrl,omitempty"`
	ProductName    string          `json:"productName,omitempty"`
}
