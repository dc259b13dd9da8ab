package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 애플리케이션 설정
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Template TemplateConfig `toml:"template"`
	Calendar CalendarConfig `toml:"calendar"`
}

// ServerConfig 서버 설정
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 데이터 디렉터리 설정
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// TemplateConfig 운행기록부 템플릿 출처 설정.
// Path -> URL -> 내장 템플릿 순서로 사용한다.
type TemplateConfig struct {
	Path string `toml:"path"`
	URL  string `toml:"url"`
}

// CalendarConfig 공휴일 달력 설정
type CalendarConfig struct {
	// 공휴일을 적용할 연도 목록
	Years []int `toml:"years"`
	// 표에 없는 임시공휴일/선거일 보충 ("2006-01-02" 형식)
	ExtraHolidays []string `toml:"extra_holidays"`
}

// LoadConfigInfo 설정 로드 메타 정보
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig 기본 설정
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20280,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Template: TemplateConfig{
			Path: "",
			URL:  "",
		},
		Calendar: CalendarConfig{
			Years: []int{2024, 2025, 2026},
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 실행 파일 디렉터리
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo config.toml 을 읽고 메타 정보와 함께 반환
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		// 실행 파일 디렉터리를 알 수 없으면 현재 디렉터리 사용
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// 설정 파일이 없으면 기본 설정 사용
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	// 환경 변수 우선 (E2E / 로컬 실행용)
	if v := os.Getenv("LOGBOOK_TEMPLATE_PATH"); v != "" {
		config.Template.Path = v
	}
	if v := os.Getenv("LOGBOOK_TEMPLATE_URL"); v != "" {
		config.Template.URL = v
	}

	return config, info, nil
}

// LoadConfig config.toml 로드 (실행 파일과 같은 디렉터리)
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig 설정을 config.toml 에 저장
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir 데이터 디렉터리 생성 보장 (실행 파일과 같은 디렉터리 아래)
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := filepath.Join(exeDir, config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"uploads", "exports"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}
