package pdf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"

	// Decoder registrations for the formats logos arrive in.
	_ "image/jpeg"
	_ "image/png"
)

// ImageInfo describes an embedded image XObject.
type ImageInfo struct {
	ObjectNum  int    // object number of the image XObject
	Width      int    // image width in pixels
	Height     int    // image height in pixels
	ColorSpace string // PDF color space name (e.g., "/DeviceRGB")
	Name       string // resource name (e.g., "/Im1")
}

// AddJPEGImage embeds a JPEG directly without re-encoding (DCTDecode).
func (w *Writer) AddJPEGImage(jpegData []byte, name string) (*ImageInfo, error) {
	width, height, colorSpace, err := parseJPEGHeader(jpegData)
	if err != nil {
		return nil, fmt.Errorf("invalid JPEG: %v", err)
	}

	dict := Dictionary{
		"Type":             "/XObject",
		"Subtype":          "/Image",
		"Width":            width,
		"Height":           height,
		"ColorSpace":       colorSpace,
		"BitsPerComponent": 8,
		"Filter":           "/DCTDecode",
	}

	// JPEG data is already compressed
	objNum := w.AddStreamObject(dict, jpegData, false)

	return &ImageInfo{
		ObjectNum:  objNum,
		Width:      width,
		Height:     height,
		ColorSpace: colorSpace,
		Name:       name,
	}, nil
}

// AddImage embeds a PNG or JPEG. Non-JPEG images are converted to raw
// RGB or Gray samples and Flate-compressed; alpha becomes a soft mask.
func (w *Writer) AddImage(imgData []byte, name string) (*ImageInfo, error) {
	img, format, err := image.Decode(bytes.NewReader(imgData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v", err)
	}

	if format == "jpeg" {
		return w.AddJPEGImage(imgData, name)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var rawData []byte
	var colorSpace string
	var hasAlpha bool

	switch img.(type) {
	case *image.NRGBA, *image.RGBA:
		hasAlpha = true
	}

	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		colorSpace = "/DeviceGray"
		rawData = make([]byte, width*height)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				gray := color.GrayModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.Gray)
				rawData[y*width+x] = gray.Y
			}
		}
	default:
		colorSpace = "/DeviceRGB"
		rawData = make([]byte, width*height*3)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
				idx := (y*width + x) * 3
				rawData[idx] = uint8(r >> 8)
				rawData[idx+1] = uint8(g >> 8)
				rawData[idx+2] = uint8(b >> 8)
			}
		}
	}

	dict := Dictionary{
		"Type":             "/XObject",
		"Subtype":          "/Image",
		"Width":            width,
		"Height":           height,
		"ColorSpace":       colorSpace,
		"BitsPerComponent": 8,
	}

	objNum := w.AddStreamObject(dict, rawData, true)

	info := &ImageInfo{
		ObjectNum:  objNum,
		Width:      width,
		Height:     height,
		ColorSpace: colorSpace,
		Name:       name,
	}

	if hasAlpha {
		alphaMask := make([]byte, width*height)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				_, _, _, a := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
				alphaMask[y*width+x] = uint8(a >> 8)
			}
		}

		maskDict := Dictionary{
			"Type":             "/XObject",
			"Subtype":          "/Image",
			"Width":            width,
			"Height":           height,
			"ColorSpace":       "/DeviceGray",
			"BitsPerComponent": 8,
		}
		maskObjNum := w.AddStreamObject(maskDict, alphaMask, true)

		w.objects[objNum].Dict["SMask"] = fmt.Sprintf("%d 0 R", maskObjNum)
	}

	return info, nil
}

// AddGrayImage embeds an image reduced to DeviceGray samples, with any
// alpha flattened onto white. Institution logos print this way so the
// sheets photocopy cleanly.
func (w *Writer) AddGrayImage(imgData []byte, name string) (*ImageInfo, error) {
	img, _, err := image.Decode(bytes.NewReader(imgData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	rawData := make([]byte, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := img.At(x+bounds.Min.X, y+bounds.Min.Y)
			gray := color.GrayModel.Convert(px).(color.Gray)
			_, _, _, a := px.RGBA()
			alpha := uint32(a >> 8)
			// Flatten transparency onto a white background.
			v := (uint32(gray.Y)*alpha + 255*(255-alpha)) / 255
			rawData[y*width+x] = uint8(v)
		}
	}

	dict := Dictionary{
		"Type":             "/XObject",
		"Subtype":          "/Image",
		"Width":            width,
		"Height":           height,
		"ColorSpace":       "/DeviceGray",
		"BitsPerComponent": 8,
	}
	objNum := w.AddStreamObject(dict, rawData, true)

	return &ImageInfo{
		ObjectNum:  objNum,
		Width:      width,
		Height:     height,
		ColorSpace: "/DeviceGray",
		Name:       name,
	}, nil
}

// parseJPEGHeader extracts width, height, and color space from a JPEG
// header without decoding the image.
func parseJPEGHeader(data []byte) (width, height int, colorSpace string, err error) {
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		return 0, 0, "", fmt.Errorf("not a valid JPEG (missing SOI)")
	}

	pos := 2
	for pos < len(data)-1 {
		if data[pos] != 0xFF {
			pos++
			continue
		}

		marker := data[pos+1]
		pos += 2

		// Skip padding
		if marker == 0xFF {
			continue
		}

		// SOF0 (baseline) through SOF3 carry the frame dimensions
		if marker >= 0xC0 && marker <= 0xC3 {
			if pos+7 > len(data) {
				return 0, 0, "", fmt.Errorf("truncated SOF segment")
			}

			height = int(binary.BigEndian.Uint16(data[pos+3 : pos+5]))
			width = int(binary.BigEndian.Uint16(data[pos+5 : pos+7]))
			components := int(data[pos+7])

			switch components {
			case 1:
				colorSpace = "/DeviceGray"
			case 4:
				colorSpace = "/DeviceCMYK"
			default:
				colorSpace = "/DeviceRGB"
			}

			return width, height, colorSpace, nil
		}

		if pos+1 >= len(data) {
			break
		}
		segmentLength := int(binary.BigEndian.Uint16(data[pos : pos+2]))
		pos += segmentLength
	}

	return 0, 0, "", fmt.Errorf("no SOF marker found")
}
