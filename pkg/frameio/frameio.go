// Package frameio loads and saves clip frames and box annotations on disk.
// It exists for the CLI and other data-loading collaborators; the transform
// core never touches files.
package frameio

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/video-augment/internal/utils"
	"github.com/menta2k/video-augment/pkg/clip"
	"github.com/menta2k/video-augment/pkg/types"
)

// LoadFrame loads a single frame image from a file path with WebP support
func LoadFrame(path string) (image.Image, error) {
	// Try imaging.Open (registered decoders)
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	// Fallback: explicit WebP decode
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.Contains(strings.ToLower(path), ".webp") {
		if img, err := webp.Decode(f); err == nil {
			return img, nil
		}
	}
	if _, err := f.Seek(0, 0); err == nil {
		if img, _, err := image.Decode(f); err == nil {
			return img, nil
		}
	}
	return nil, fmt.Errorf("frameio: unknown image format for %s", path)
}

// LoadClip loads every image file in a directory, sorted by filename, as one
// clip. Temporal order is the lexicographic filename order.
func LoadClip(dir string) (clip.Clip, error) {
	files, err := utils.ListImageFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list frames in %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no image files in %s", dir)
	}

	c := make(clip.Clip, 0, len(files))
	for _, path := range files {
		img, err := LoadFrame(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load frame %s: %w", path, err)
		}
		c = append(c, img)
	}
	return c, nil
}

// SaveFrame saves a frame to a file with the specified format and quality
func SaveFrame(img image.Image, path, format string, quality int, lossless bool) error {
	switch strings.ToLower(format) {
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		opts := &webp.Options{Lossless: lossless, Quality: float32(quality)}
		return webp.Encode(f, img, opts)
	case "png":
		return imaging.Save(img, path)
	default: // jpg/jpeg
		return imaging.Save(img, path, imaging.JPEGQuality(quality))
	}
}

// SaveClip writes every frame of a clip into a directory as
// <prefix><frame index>.<format>, zero-padded so filename order matches
// temporal order.
func SaveClip(c clip.Clip, dir, prefix, format string, quality int, lossless bool) error {
	if err := utils.EnsureDir(dir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for i, f := range c {
		path := filepath.Join(dir, fmt.Sprintf("%s%04d.%s", prefix, i, strings.ToLower(format)))
		if err := SaveFrame(f, path, format, quality, lossless); err != nil {
			return fmt.Errorf("failed to save frame %s: %w", path, err)
		}
	}
	return nil
}

// LoadBoxes reads a JSON box set indexed [frame][object]
func LoadBoxes(path string) (types.BoxSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read box file: %w", err)
	}
	var boxes types.BoxSet
	if err := json.Unmarshal(data, &boxes); err != nil {
		return nil, fmt.Errorf("failed to parse box file: %w", err)
	}
	return boxes, nil
}

// SaveBoxes writes a box set as indented JSON
func SaveBoxes(boxes types.BoxSet, path string) error {
	data, err := json.MarshalIndent(boxes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal boxes: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write box file: %w", err)
	}
	return nil
}
