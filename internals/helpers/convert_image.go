package helper

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	screenshotMaxWidth = 1600
	webpQuality        = 80
)

// DecodeAndCompressImage baca file upload, kecilkan kalau terlalu lebar,
// lalu re-encode ke WebP supaya payload ke workflow tetap kecil.
func DecodeAndCompressImage(fileHeader *multipart.FileHeader) ([]byte, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("gagal membuka file gambar: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("file bukan gambar yang valid: %w", err)
	}

	if img.Bounds().Dx() > screenshotMaxWidth {
		img = imaging.Resize(img, screenshotMaxWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp gagal: %w", err)
	}
	return buf.Bytes(), nil
}

// ✅ Buat nama unik
func sanitizeFilename(filename string) string {
	// Hapus karakter selain huruf, angka, titik, dash, underscore
	re := regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
	return re.ReplaceAllString(filename, "_")
}

func GenerateUniqueFilename(folder, original string) string {
	base := strings.TrimSuffix(sanitizeFilename(original), filepath.Ext(original))
	if base == "" {
		base = "screenshot"
	}
	return fmt.Sprintf("%s/%s_%d_%s.webp", folder, base, time.Now().Unix(), uuid.NewString()[:8])
}

// UploadToSupabase push objek ke Supabase Storage (bucket publik).
func UploadToSupabase(bucket, filename, contentType string, body io.Reader) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		strings.TrimRight(os.Getenv("SUPABASE_PROJECT_URL"), "/"),
		bucket,
		url.PathEscape(filename),
	)

	req, err := http.NewRequest(http.MethodPost, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+os.Getenv("SUPABASE_SERVICE_ROLE_KEY"))
	req.Header.Set("Content-Type", contentType)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upload gagal (%d): %s", resp.StatusCode, string(msg))
	}
	return nil
}

// UploadScreenshot kompres + simpan screenshot, balikin URL publiknya.
func UploadScreenshot(folder string, fileHeader *multipart.FileHeader) (string, []byte, error) {
	data, err := DecodeAndCompressImage(fileHeader)
	if err != nil {
		return "", nil, err
	}

	filename := GenerateUniqueFilename(folder, fileHeader.Filename)
	if err := UploadToSupabase("image", filename, "image/webp", bytes.NewReader(data)); err != nil {
		return "", nil, fmt.Errorf("upload gambar gagal: %w", err)
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/image/%s",
		strings.TrimRight(os.Getenv("SUPABASE_PROJECT_URL"), "/"),
		url.PathEscape(filename),
	)
	return publicURL, data, nil
}
