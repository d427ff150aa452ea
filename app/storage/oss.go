package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

// StoredFile adalah hasil upload ke object storage eksternal.
type StoredFile struct {
	// FileID: key objek di bucket, dipakai untuk delete di kemudian hari.
	FileID string
	// ShareableLink: URL publik yang bisa langsung dipakai frontend.
	ShareableLink string
}

// FileStorage adalah kolaborator opaque untuk file upload (foto staf, sampul
// blog, file download, formulir, dst). Kontraknya sengaja kecil:
//
//	Upload(file) -> {FileID, ShareableLink} | error
//	Delete(fileID) -> error
//
// Service TIDAK perlu tahu ini OSS, Drive, atau yang lain.
type FileStorage interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*StoredFile, error)
	Delete(ctx context.Context, fileID string) error
}

// OSSStorage implementasi FileStorage di atas Aliyun OSS.
type OSSStorage struct {
	bucket  *oss.Bucket
	prefix  string // folder di dalam bucket, misal "school-cms"
	baseURL string // base URL publik, misal "https://cdn.sekolah.sch.id"
}

// NewOSSStorageFromEnv membuat client OSS dari environment:
// OSS_ENDPOINT, OSS_ACCESS_KEY_ID, OSS_ACCESS_KEY_SECRET, OSS_BUCKET,
// OSS_PREFIX (opsional), OSS_PUBLIC_BASE_URL.
func NewOSSStorageFromEnv() (*OSSStorage, error) {
	endpoint := strings.TrimSpace(os.Getenv("OSS_ENDPOINT"))
	ak := strings.TrimSpace(os.Getenv("OSS_ACCESS_KEY_ID"))
	sk := strings.TrimSpace(os.Getenv("OSS_ACCESS_KEY_SECRET"))
	bucketName := strings.TrimSpace(os.Getenv("OSS_BUCKET"))
	baseURL := strings.TrimRight(strings.TrimSpace(os.Getenv("OSS_PUBLIC_BASE_URL")), "/")

	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: OSS_ENDPOINT/OSS_ACCESS_KEY_ID/OSS_ACCESS_KEY_SECRET/OSS_BUCKET")
	}
	if baseURL == "" {
		// fallback: virtual-hosted style URL standar OSS
		baseURL = fmt.Sprintf("https://%s.%s", bucketName, strings.TrimPrefix(endpoint, "https://"))
	}

	client, err := oss.New(endpoint, ak, sk)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	return &OSSStorage{
		bucket:  bucket,
		prefix:  strings.Trim(os.Getenv("OSS_PREFIX"), "/"),
		baseURL: baseURL,
	}, nil
}

// Upload menyimpan file ke bucket dengan key acak (nama asli hanya dipakai
// untuk ekstensi + deteksi content type), lalu mengembalikan key + link publik.
func (s *OSSStorage) Upload(ctx context.Context, filename string, r io.Reader) (*StoredFile, error) {
	key := s.buildObjectKey(filename)

	ct, reader, err := detectContentType(r, filename)
	if err != nil {
		return nil, err
	}

	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(ct),
		oss.ContentDisposition("inline"),
	}
	if err := s.bucket.PutObject(key, reader, opts...); err != nil {
		return nil, fmt.Errorf("oss put: %w", err)
	}

	return &StoredFile{
		FileID:        key,
		ShareableLink: s.baseURL + "/" + key,
	}, nil
}

// Delete menghapus objek berdasarkan key hasil Upload.
func (s *OSSStorage) Delete(ctx context.Context, fileID string) error {
	if fileID == "" {
		return nil
	}
	return s.bucket.DeleteObject(fileID, oss.WithContext(ctx))
}

// buildObjectKey: <prefix>/<uuid><ext>, ekstensi di-lowercase.
func (s *OSSStorage) buildObjectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	name := uuid.New().String() + ext
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// detectContentType menebak MIME type dari ekstensi nama file; kalau tidak
// dikenal, sniff 512 byte pertama isi file. Reader yang dikembalikan sudah
// menyambung kembali byte yang terlanjur dibaca.
func detectContentType(r io.Reader, filename string) (string, io.Reader, error) {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(filename))); ct != "" {
		return ct, r, nil
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", nil, fmt.Errorf("read file head: %w", err)
	}
	head = head[:n]

	ct := http.DetectContentType(head)
	return ct, io.MultiReader(strings.NewReader(string(head)), r), nil
}
