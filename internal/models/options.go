package models

// ConversionOptions describes the conversion parameters sent with an upload.
// Field names match the service's options schema. Pointer fields are omitted
// entirely when unset so the server applies its own defaults.
type ConversionOptions struct {
	Width             *int     `json:"width,omitempty"`
	Height            *int     `json:"height,omitempty"`
	Transpose         int      `json:"transpose"`
	InputFPS          *float64 `json:"input_fps,omitempty"`
	OutputFPS         *float64 `json:"output_fps,omitempty"`
	MinterpolateFPS   *float64 `json:"minterpolate_fps,omitempty"`
	BackgroundColor   string   `json:"background_color,omitempty"`
	BackgroundImageID string   `json:"background_image_id,omitempty"`
	CompressOutput    bool     `json:"compress_output"`
}

// TransposeFromDegrees maps a clockwise rotation in degrees to the ffmpeg
// transpose code the service expects. Values outside {0, 90, 180, 270} map
// to 0 (no rotation); restricting input to the canonical values is the
// caller's job.
func TransposeFromDegrees(degrees int) int {
	switch degrees {
	case 90:
		return 1
	case 180:
		return 3
	case 270:
		return 2
	default:
		return 0
	}
}
