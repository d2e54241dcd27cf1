package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"strings"
	"sync"
	"testing"
)

func sampleJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode sample: %v", err)
	}
	return buf.Bytes()
}

func TestThumbnailBounds(t *testing.T) {
	data := sampleJPEG(t, 600, 400)

	thumb, err := Thumbnail(data)
	if err != nil {
		t.Fatalf("thumbnail: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > 300 || bounds.Dy() > 300 {
		t.Fatalf("thumbnail exceeds bounds: %dx%d", bounds.Dx(), bounds.Dy())
	}
	// 600x400 scaled into 300x300 keeps the 3:2 ratio.
	if bounds.Dx() != 300 || bounds.Dy() != 200 {
		t.Fatalf("unexpected thumbnail size %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	if _, err := Thumbnail([]byte("not an image")); err == nil {
		t.Fatalf("expected decode error")
	}
}

type fakeUploader struct {
	mu    sync.Mutex
	names []string
	fail  string
}

func (u *fakeUploader) Upload(_ context.Context, name string, r io.Reader) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.fail != "" && strings.Contains(name, u.fail) {
		return "", fmt.Errorf("upload %s refused", name)
	}
	u.names = append(u.names, name)
	return "https://media.example.com/" + name, nil
}

func TestPrepareImage(t *testing.T) {
	uploader := &fakeUploader{}
	images := [][]byte{sampleJPEG(t, 600, 400), sampleJPEG(t, 500, 500)}

	descriptor, err := PrepareImage(context.Background(), uploader, "upload_abc", images)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if descriptor.Thumbnail != "https://media.example.com/upload_abc_thumb.jpg" {
		t.Fatalf("unexpected thumbnail url %q", descriptor.Thumbnail)
	}
	if len(descriptor.URL) != 2 {
		t.Fatalf("expected 2 urls got %d", len(descriptor.URL))
	}
	// Order matches input regardless of upload completion order.
	if descriptor.URL[0] != "https://media.example.com/upload_abc_0.jpg" ||
		descriptor.URL[1] != "https://media.example.com/upload_abc_1.jpg" {
		t.Fatalf("urls out of order: %v", descriptor.URL)
	}
}

func TestPrepareImageFailsWhenAnyUploadFails(t *testing.T) {
	uploader := &fakeUploader{fail: "_1.jpg"}
	images := [][]byte{sampleJPEG(t, 600, 400), sampleJPEG(t, 500, 500)}

	if _, err := PrepareImage(context.Background(), uploader, "upload_abc", images); err == nil {
		t.Fatalf("expected upload failure to propagate")
	}
}

func TestPrepareImageRequiresInput(t *testing.T) {
	if _, err := PrepareImage(context.Background(), &fakeUploader{}, "x", nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
}
