package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 是所有环境变量的前缀, 例如 OCRFLOW_PROVIDERS_MINDEE_API_KEY.
const EnvPrefix = "OCRFLOW"

// Loader 依次合并 默认值, YAML, 环境变量. .env 文件中的变量并入进程环境.
type Loader struct {
	configPath string
	envFiles   []string
	lookup     func(string) (string, bool)
}

// NewLoader 创建读取进程环境变量的 Loader.
func NewLoader() *Loader {
	return &Loader{lookup: os.LookupEnv}
}

// WithConfigPath 设置 YAML 配置文件. 指定后文件必须存在.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvFile 添加 .env 文件. 文件中的变量不覆盖进程中已有的变量.
func (l *Loader) WithEnvFile(paths ...string) *Loader {
	for _, p := range paths {
		if p != "" {
			l.envFiles = append(l.envFiles, p)
		}
	}
	return l
}

// Load 合并配置但不校验, 调用方需要再调用 Validate.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	// .env 先于 YAML 加载, YAML 中的 ${VAR} 也能引用 .env 里的值
	if len(l.envFiles) > 0 {
		if err := godotenv.Load(l.envFiles...); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	if l.configPath != "" {
		data, err := os.ReadFile(l.configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := decodeYAML(data, cfg, l.lookup); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", l.configPath, err)
		}
	}

	if err := applyEnv(cfg, EnvPrefix, l.lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeYAML 展开 ${VAR} 后严格解码, 未知字段视为错误.
func decodeYAML(data []byte, cfg *Config, lookup func(string) (string, bool)) error {
	expanded := os.Expand(string(data), func(name string) string {
		v, _ := lookup(name)
		return v
	})
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
