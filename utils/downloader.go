package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MirrorImages copies remote product images into the bucket and returns the
// image list with every mirrored URL replaced by its object key. Images that
// fail to copy keep their original URL.
func (s *ImageStore) MirrorImages(ctx context.Context, urls []string, folderPrefix string) []string {
	out := make([]string, len(urls))
	copy(out, urls)

	var mu sync.Mutex
	var wg sync.WaitGroup

	// Limit concurrency
	semaphore := make(chan struct{}, 5)

	for i, url := range urls {
		if !strings.HasPrefix(url, "http") {
			continue
		}
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			objectKey := fmt.Sprintf("%s/%s%s", folderPrefix, uuid.New().String(), imageExt(url))
			if err := s.downloadAndUpload(ctx, url, objectKey); err != nil {
				logrus.WithError(err).WithField("url", url).Warn("failed to mirror product image")
				return
			}

			mu.Lock()
			out[i] = objectKey
			mu.Unlock()
		}(i, url)
	}

	wg.Wait()
	return out
}

func imageExt(url string) string {
	name := filepath.Base(strings.SplitN(url, "?", 2)[0])
	ext := filepath.Ext(name)
	if ext == "" || len(ext) > 5 {
		return ".jpg"
	}
	return strings.ToLower(ext)
}

func (s *ImageStore) downloadAndUpload(ctx context.Context, url, objectKey string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.Upload(ctx, bytes.NewReader(bodyBytes), objectKey, contentType)
	return err
}
