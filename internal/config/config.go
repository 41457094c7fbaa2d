package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// 线路格式
const (
	WireFormatJSON     = "json"
	WireFormatProtobuf = "protobuf"
)

// 默认值
const (
	defaultHost           = "0.0.0.0"
	defaultPort           = 3000
	defaultMaxConnections = 2000
	defaultRedisAddr      = "localhost:6379"
	defaultMinPlayers     = 3
	defaultCodeLength     = 4
	defaultNameMin        = 2
	defaultNameMax        = 16
	defaultEmptyRoomSecs  = 600
	defaultShutdownSecs   = 10
	defaultLogLevel       = "info"
)

// Config 服务端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Game     GameConfig     `yaml:"game"`
	Security SecurityConfig `yaml:"security"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"`
	WireFormat     string `yaml:"wire_format"` // json / protobuf
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 游戏配置
type GameConfig struct {
	MinPlayers int    `yaml:"min_players"` // 开局最少人数
	CodeLength int    `yaml:"code_length"` // 房间号长度
	NameMin    int    `yaml:"name_min"`
	NameMax    int    `yaml:"name_max"`
	WordsFile  string `yaml:"words_file"` // 为空时使用内置词库

	EmptyRoomTimeout int `yaml:"empty_room_timeout"` // 无人房间保留时长（秒）
	ShutdownTimeout  int `yaml:"shutdown_timeout"`   // 优雅关闭等待时长（秒）
}

// EmptyRoomTimeoutDuration 返回无人房间保留时长
func (c *GameConfig) EmptyRoomTimeoutDuration() time.Duration {
	return time.Duration(c.EmptyRoomTimeout) * time.Second
}

// ShutdownTimeoutDuration 返回优雅关闭等待时长
func (c *GameConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AllowedOrigins []string           `yaml:"allowed_origins"`
	BlockedIPs     []string           `yaml:"blocked_ips"`
	RateLimit      RateLimitConfig    `yaml:"rate_limit"`
	MessageLimit   MessageLimitConfig `yaml:"message_limit"`
}

// RateLimitConfig 连接速率限制（按 IP）
type RateLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
	MaxPerMinute int `yaml:"max_per_minute"`
	BanDuration  int `yaml:"ban_duration"` // 秒
}

// BanDurationTime 返回封禁时长
func (c *RateLimitConfig) BanDurationTime() time.Duration {
	return time.Duration(c.BanDuration) * time.Second
}

// MessageLimitConfig 单连接消息速率限制
type MessageLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
	Burst        int `yaml:"burst"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg
}

// applyDefaults 设置默认值
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = defaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Server.MaxConnections == 0 {
		c.Server.MaxConnections = defaultMaxConnections
	}
	if c.Server.WireFormat == "" {
		c.Server.WireFormat = WireFormatJSON
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = defaultRedisAddr
	}
	if c.Game.MinPlayers == 0 {
		c.Game.MinPlayers = defaultMinPlayers
	}
	if c.Game.CodeLength == 0 {
		c.Game.CodeLength = defaultCodeLength
	}
	if c.Game.NameMin == 0 {
		c.Game.NameMin = defaultNameMin
	}
	if c.Game.NameMax == 0 {
		c.Game.NameMax = defaultNameMax
	}
	if c.Game.EmptyRoomTimeout == 0 {
		c.Game.EmptyRoomTimeout = defaultEmptyRoomSecs
	}
	if c.Game.ShutdownTimeout == 0 {
		c.Game.ShutdownTimeout = defaultShutdownSecs
	}
	if len(c.Security.AllowedOrigins) == 0 {
		c.Security.AllowedOrigins = []string{"*"}
	}
	if c.Security.RateLimit.MaxPerSecond == 0 {
		c.Security.RateLimit.MaxPerSecond = 10
	}
	if c.Security.RateLimit.MaxPerMinute == 0 {
		c.Security.RateLimit.MaxPerMinute = 60
	}
	if c.Security.RateLimit.BanDuration == 0 {
		c.Security.RateLimit.BanDuration = 60
	}
	if c.Security.MessageLimit.MaxPerSecond == 0 {
		c.Security.MessageLimit.MaxPerSecond = 20
	}
	if c.Security.MessageLimit.Burst == 0 {
		c.Security.MessageLimit.Burst = 40
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
}

// applyEnv 环境变量覆盖配置文件
func (c *Config) applyEnv() {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		c.Server.Host = v
	}
	// PORT 兼容常见 PaaS 平台
	for _, key := range []string{"PORT", "SERVER_PORT"} {
		if v := os.Getenv(key); v != "" {
			if port, err := strconv.Atoi(v); err == nil && port > 0 {
				c.Server.Port = port
			}
		}
	}
	if v := os.Getenv("WIRE_FORMAT"); v != "" {
		c.Server.WireFormat = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
		c.Redis.Enabled = true
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("GAME_WORDS_FILE"); v != "" {
		c.Game.WordsFile = v
	}
	if v := os.Getenv("SECURITY_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		c.Security.AllowedOrigins = origins
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// validate 校验取值范围
func (c *Config) validate() error {
	switch c.Server.WireFormat {
	case WireFormatJSON, WireFormatProtobuf:
	default:
		return fmt.Errorf("未知的 wire_format: %q", c.Server.WireFormat)
	}
	if c.Game.NameMin > c.Game.NameMax {
		return fmt.Errorf("name_min (%d) 不能大于 name_max (%d)", c.Game.NameMin, c.Game.NameMax)
	}
	if c.Game.CodeLength < 3 {
		return fmt.Errorf("code_length 至少为 3，当前 %d", c.Game.CodeLength)
	}
	return nil
}
