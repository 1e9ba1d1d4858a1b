package storage

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrImageTooLarge = errors.New("image too large")
	ErrNotAnImage    = errors.New("payload is not an image")
)

type ImageProcessor struct {
	MaxSize int64 // bytes
}

func NewImageProcessor(maxSize int64) *ImageProcessor {
	return &ImageProcessor{MaxSize: maxSize}
}

// ValidateImage sniffs the payload; anything that is not image/* is rejected
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if len(data) == 0 {
		return ErrNotAnImage
	}
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("%w: exceeds %d bytes", ErrImageTooLarge, p.MaxSize)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return fmt.Errorf("%w: detected %s", ErrNotAnImage, mtype.String())
	}
	return nil
}

// ToPNG decodes any supported image format and re-encodes it as PNG
func (p *ImageProcessor) ToPNG(data []byte) ([]byte, error) {
	if err := p.ValidateImage(data); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("cannot encode png: %w", err)
	}
	return buf.Bytes(), nil
}
