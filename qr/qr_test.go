package qr

import (
	"bytes"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/jaguilar992/exam-generator/types"
)

func TestRender_ReadRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"short ciphertext", "aGVsbG8gd29ybGQ"},
		{"typical armored key", "Uq3kPz0_9xW-abcDEF123456hijKLMNopqRSTuvw"},
		{"long payload", strings.Repeat("Ab3_-", 56)}, // 280 chars, 200-question scale
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			png, err := Render(tt.payload)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if !bytes.HasPrefix(png, []byte("\x89PNG")) {
				t.Error("Render should produce PNG bytes")
			}

			got, err := ReadBytes(png)
			if err != nil {
				t.Fatalf("ReadBytes failed: %v", err)
			}
			if got != tt.payload {
				t.Errorf("round trip = %q, want %q", got, tt.payload)
			}
		})
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty payload", ""},
		{"above documented limit", strings.Repeat("x", MaxPayloadLen+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.payload)
			if err == nil {
				t.Fatal("Render should have failed")
			}
			if !errors.Is(err, types.ErrFileGeneration) {
				t.Errorf("error = %v, want FILE_GENERATION", err)
			}
		})
	}
}

func TestRead_NoSymbol(t *testing.T) {
	blank := image.NewGray(image.Rect(0, 0, 64, 64))
	if _, err := Read(blank); !errors.Is(err, types.ErrFileGeneration) {
		t.Errorf("error = %v, want FILE_GENERATION", err)
	}
}

func TestReadBytes_NotAnImage(t *testing.T) {
	if _, err := ReadBytes([]byte("not an image")); !errors.Is(err, types.ErrFileGeneration) {
		t.Errorf("error = %v, want FILE_GENERATION", err)
	}
}
