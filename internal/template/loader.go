// Package template 운행기록부 템플릿 자산 로더.
//
// 템플릿 원본 바이트를 세션 수명 동안 캐시해 두고, 레코드마다 원본에서
// 새로 파싱한 워크북을 내어 준다. 공유 워크북 객체를 돌려쓰지 않으므로
// 레코드 간 상태 오염이 생기지 않는다.
package template

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// LoadError 템플릿 확보 실패. 생성 작업 전체를 중단시키는 치명 오류.
type LoadError struct {
	Source string // 실패한 출처 (파일 경로 / URL / 내장 템플릿)
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("템플릿 로드 실패 (%s): %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader 템플릿 로더. 원본 바이트는 불변으로 취급한다.
type Loader struct {
	raw    []byte
	source string
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

// NewLoader 템플릿을 확보해 로더를 만든다.
// 우선순위: 로컬 경로 -> 원격 URL -> 내장 생성 템플릿.
func NewLoader(path, url string) (*Loader, error) {
	if p := strings.TrimSpace(path); p != "" {
		raw, err := os.ReadFile(p)
		if err != nil {
			return nil, &LoadError{Source: p, Err: err}
		}
		return newLoaderFromBytes(raw, p)
	}

	if u := strings.TrimSpace(url); u != "" {
		raw, err := fetchTemplate(u)
		if err != nil {
			return nil, &LoadError{Source: u, Err: err}
		}
		return newLoaderFromBytes(raw, u)
	}

	raw, err := BuiltinBytes()
	if err != nil {
		return nil, &LoadError{Source: "내장 템플릿", Err: err}
	}
	return &Loader{raw: raw, source: "내장 템플릿"}, nil
}

func newLoaderFromBytes(raw []byte, source string) (*Loader, error) {
	// 확보 즉시 파싱해서 깨진 템플릿을 기동 시점에 걸러낸다
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	_ = f.Close()
	return &Loader{raw: raw, source: source}, nil
}

func fetchTemplate(url string) ([]byte, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("템플릿 다운로드 요청 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("템플릿 다운로드 실패: 상태 코드 %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Source 템플릿 출처 (로그용)
func (l *Loader) Source() string {
	return l.source
}

// Bytes 템플릿 원본 바이트 (읽기 전용)
func (l *Loader) Bytes() []byte {
	return l.raw
}

// Open 원본 바이트에서 새 워크북을 파싱해 반환한다.
// 호출마다 독립된 객체이므로 자유롭게 수정해도 된다.
func (l *Loader) Open() (*excelize.File, error) {
	f, err := excelize.OpenReader(bytes.NewReader(l.raw))
	if err != nil {
		return nil, &LoadError{Source: l.source, Err: err}
	}
	return f, nil
}
