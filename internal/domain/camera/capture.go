package camera

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
)

// DefaultJPEGQuality equivale a toDataURL("image/jpeg", 0.8).
const DefaultJPEGQuality = 80

// Still es un frame congelado, ya codificado.
type Still struct {
	DataURI string
	Width   int
	Height  int
	Bytes   int
}

// CaptureStill toma el frame actual del stream, lo copia a un bitmap del
// tamaño nativo del frame y lo codifica como JPEG.
func CaptureStill(s Stream, quality int) (Still, error) {
	if s == nil {
		return Still{}, ErrStopped
	}
	frame, err := s.Frame()
	if err != nil {
		return Still{}, err
	}
	return EncodeStill(frame, quality)
}

func EncodeStill(frame image.Image, quality int) (Still, error) {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}

	b := frame.Bounds()
	if b.Empty() {
		return Still{}, ErrNoFrame
	}

	canvas := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(canvas, canvas.Bounds(), frame, b.Min, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: quality}); err != nil {
		return Still{}, fmt.Errorf("encode jpeg: %w", err)
	}

	return Still{
		DataURI: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Width:   b.Dx(),
		Height:  b.Dy(),
		Bytes:   buf.Len(),
	}, nil
}
