package prompts

const (
	// SlideImageInstruction は画像生成AIの役割を定義します。
	SlideImageInstruction = "You are illustrating one vertical slide for a TTRPG TikTok carousel. Create a single high-quality cinematic scene."

	// DefaultArtStyle は全スライド共通のデフォルト画風です。
	// 環境変数 IMAGE_PROMPT_SUFFIX で差し替えられます。
	DefaultArtStyle = `### GLOBAL VISUAL STYLE ###
- AESTHETIC: Retro sci-fi anime look of the late 1970s-80s: muted earth tones with one bold accent color, grainy print texture, flat 2D cel shading, dramatic rim lighting, painterly backgrounds.
- SETTING: Classic sword-and-sorcery fantasy. Dungeons, torchlight, weathered adventurers.`

	// SlideRules は全スライドに共通する厳守事項です。
	SlideRules = `### RULES ###
1) Do not render the theme name as text in the image.
2) Keep the setting fantasy (dungeons and dragons), never futuristic.
3) Any rendered text must be centered on the slide.`

	// SlideNegativePrompt は排除したい要素の定義です。
	SlideNegativePrompt = "low quality, blurry, distorted, bad anatomy, watermark, signature, username, photo-realism, neon cyberpunk, spaceships, modern technology"
)
