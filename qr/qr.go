// Package qr renders encrypted answer-key payloads into QR symbols and
// reads payloads back from scanned symbols.
package qr

import (
	"bytes"
	"image"
	_ "image/jpeg" // register decoders for scanned symbol input
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/jaguilar992/exam-generator/types"
)

// RenderSize is the pixel edge length of rendered symbols. Large enough
// to stay crisp at the ~0.6 inch print size the answer-key header uses.
const RenderSize = 256

// MaxPayloadLen is the documented payload ceiling. A 200-question key
// armors to 282 characters; QR byte mode at medium error correction
// holds far more, so the library's own capacity check is the hard limit
// and this is the supported envelope.
const MaxPayloadLen = 512

// Render draws payload into a PNG-encoded QR symbol. The decoded content
// of the symbol is exactly payload, byte for byte.
func Render(payload string) ([]byte, error) {
	if payload == "" {
		return nil, types.NewError(types.ErrCodeFileGeneration,
			"cannot render an empty QR payload")
	}
	if len(payload) > MaxPayloadLen {
		return nil, types.NewErrorf(types.ErrCodeFileGeneration,
			"QR payload is %d bytes, above the %d byte limit", len(payload), MaxPayloadLen)
	}

	png, err := qrcode.Encode(payload, qrcode.Medium, RenderSize)
	if err != nil {
		return nil, types.WrapError(types.ErrCodeFileGeneration,
			"QR rendering failed", err)
	}
	return png, nil
}

// Read extracts the payload from a decoded image containing a QR symbol.
func Read(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", types.WrapError(types.ErrCodeFileGeneration,
			"cannot binarize QR image", err)
	}
	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", types.WrapError(types.ErrCodeFileGeneration,
			"no QR symbol found in image", err)
	}
	return result.GetText(), nil
}

// ReadBytes decodes PNG or JPEG image bytes and extracts the QR payload.
func ReadBytes(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", types.WrapError(types.ErrCodeFileGeneration,
			"cannot decode QR image bytes", err)
	}
	return Read(img)
}
