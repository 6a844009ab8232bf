package config

import (
	"fmt"
	"os"
	"regexp"

	"go-imagine-keys/internal/cachekey"
	"go-imagine-keys/internal/digest"
	"go-imagine-keys/pkg/logger"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DigestConfig 摘要配置
type DigestConfig struct {
	Algorithm string `yaml:"algorithm"` // md5, sha1, sha256, xxhash64
	Length    int    `yaml:"length"`    // 保留的摘要字符数，<=0 时使用默认值 8
}

// Config 应用配置结构
type Config struct {
	Separators cachekey.Separators  `yaml:"separators"`  // 覆盖默认分隔符 . + -
	Digest     DigestConfig         `yaml:"digest"`
	LegacyKeys bool                 `yaml:"legacy_keys"` // 只保留最后一个操作，兼容旧的缓存文件名
	ImageSizes cachekey.SizeConfigs `yaml:"image_sizes"` // namespace -> size name -> operations
	Log        logger.Options       `yaml:"log"`
}

var envPattern = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)(:-([^}]+))?}`)

// expandEnvWithDefault implements ${VAR:-default}
func expandEnvWithDefault(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(m string) string {
		groups := envPattern.FindStringSubmatch(m)

		key := groups[1]
		def := groups[3] // may be empty

		val, exists := os.LookupEnv(key)
		if exists && val != "" {
			return val
		}
		return def
	})
}

// LoadConfig 加载配置文件
func LoadConfig(configFile string) (*Config, error) {
	// 如果未指定配置文件，使用默认值
	if configFile == "" {
		configFile = "configs/config.yml"
		logger.Info("loading default config file", zap.String("file", configFile))
	}

	file, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	expanded := expandEnvWithDefault(string(file))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, err
	}

	if _, err := config.Algorithm(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Algorithm 返回配置的摘要算法，未配置时为 MD5
func (c *Config) Algorithm() (digest.Algorithm, error) {
	a, err := digest.Parse(c.Digest.Algorithm)
	if err != nil {
		return digest.None, fmt.Errorf("digest.algorithm: %w", err)
	}
	if a == digest.None {
		return digest.MD5, nil
	}
	return a, nil
}

// KeyOptions 返回生成原始缓存键片段的选项（不做摘要）
func (c *Config) KeyOptions() cachekey.Options {
	return cachekey.Options{
		Separators:        c.Separators,
		LastOperationOnly: c.LegacyKeys,
	}
}

// Hasher 根据摘要配置创建批量哈希器
func (c *Config) Hasher() (*cachekey.Hasher, error) {
	a, err := c.Algorithm()
	if err != nil {
		return nil, err
	}
	return cachekey.NewHasher(a, c.Digest.Length, c.LegacyKeys), nil
}

// Size 获取某个命名空间下的尺寸配置
func (c *Config) Size(namespace, name string) (cachekey.Operations, bool) {
	sizes, ok := c.ImageSizes[namespace]
	if !ok {
		return nil, false
	}
	ops, ok := sizes[name]
	return ops, ok
}
