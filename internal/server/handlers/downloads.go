package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

type downloadItem struct {
	filePath  string
	fileName  string // 사용자에게 보여줄 다운로드 파일 이름
	expiresAt time.Time
}

// downloadStore 1회용 다운로드 토큰 저장소
type downloadStore struct {
	mu    sync.Mutex
	items map[string]downloadItem
}

func newDownloadStore() *downloadStore {
	return &downloadStore{
		items: make(map[string]downloadItem),
	}
}

func (s *downloadStore) put(filePath, fileName string, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token = newRandomToken(24)
	s.items[token] = downloadItem{
		filePath:  filePath,
		fileName:  fileName,
		expiresAt: time.Now().Add(ttl),
	}
	return token
}

func (s *downloadStore) get(token string) (downloadItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[token]
	if !ok {
		return downloadItem{}, false
	}
	if time.Now().After(v.expiresAt) {
		delete(s.items, token)
		return downloadItem{}, false
	}
	return v, true
}

func (s *downloadStore) delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, token)
}

func (s *downloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}

func newRandomToken(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
