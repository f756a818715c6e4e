package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTransposeFromDegrees(t *testing.T) {
	tests := []struct {
		degrees int
		want    int
	}{
		{0, 0},
		{90, 1},
		{180, 3},
		{270, 2},
		{45, 0},
		{360, 0},
		{-90, 0},
		{9999, 0},
	}

	for _, tt := range tests {
		if got := TransposeFromDegrees(tt.degrees); got != tt.want {
			t.Errorf("TransposeFromDegrees(%d) = %d, want %d", tt.degrees, got, tt.want)
		}
	}
}

func TestConversionOptionsEncoding(t *testing.T) {
	width := 320
	fps := 15.0
	opts := ConversionOptions{
		Width:          &width,
		Transpose:      1,
		OutputFPS:      &fps,
		CompressOutput: true,
	}

	data, err := json.Marshal(opts)
	if err != nil {
		t.Fatalf("Failed to marshal options: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Failed to unmarshal options: %v", err)
	}

	for _, key := range []string{"width", "transpose", "output_fps", "compress_output"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("Expected field %q in encoded options: %s", key, data)
		}
	}
	for _, key := range []string{"height", "input_fps", "minterpolate_fps", "background_color", "background_image_id"} {
		if _, ok := fields[key]; ok {
			t.Errorf("Unset field %q should be omitted: %s", key, data)
		}
	}

	if fields["width"] != float64(320) {
		t.Errorf("width = %v, want 320", fields["width"])
	}
	if !strings.Contains(string(data), `"transpose":1`) {
		t.Errorf("transpose should always be present: %s", data)
	}
}
