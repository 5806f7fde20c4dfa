package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/palemoky/pyramid-climb/internal/game/board"
	"github.com/palemoky/pyramid-climb/internal/game/engine"
)

// Config 客户端配置
type Config struct {
	Game GameConfig `yaml:"game"`
	UI   UIConfig   `yaml:"ui"`
	Log  LogConfig  `yaml:"log"`
}

// GameConfig 对局配置
type GameConfig struct {
	Players      int    `yaml:"players"`       // 玩家人数
	HandSize     int    `yaml:"hand_size"`     // 开局手牌数
	BoardProfile []int  `yaml:"board_profile"` // 每层牌数，从第 0 层开始
	Seed         uint64 `yaml:"seed"`          // 随机种子，0 表示每次启动随机
}

// UIConfig 界面配置
type UIConfig struct {
	Sound    bool   `yaml:"sound"`
	SoundDir string `yaml:"sound_dir"`
}

// LogConfig 日志配置
type LogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"` // 为空时使用 ~/.pyramid-climb
}

// Rules 转换为引擎规则
func (c *GameConfig) Rules() engine.Rules {
	return engine.Rules{
		Players:  c.Players,
		HandSize: c.HandSize,
		Profile:  board.Profile(slices.Clone(c.BoardProfile)),
	}
}

// Load 加载配置文件，未出现的字段保留默认值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// 显式写成空值的字段也回退到默认值
	if cfg.Game.Players == 0 {
		cfg.Game.Players = engine.DefaultPlayers
	}
	if cfg.Game.HandSize == 0 {
		cfg.Game.HandSize = engine.DefaultHandSize
	}
	if len(cfg.Game.BoardProfile) == 0 {
		cfg.Game.BoardProfile = slices.Clone(board.DefaultProfile)
	}
	if cfg.UI.SoundDir == "" {
		cfg.UI.SoundDir = "assets/sounds"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置能否开局
func (c *Config) Validate() error {
	if err := c.Game.Rules().Validate(); err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}
	return nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Game: GameConfig{
			Players:      engine.DefaultPlayers,
			HandSize:     engine.DefaultHandSize,
			BoardProfile: slices.Clone(board.DefaultProfile),
		},
		UI: UIConfig{
			Sound:    true,
			SoundDir: "assets/sounds",
		},
		Log: LogConfig{
			Enabled: true,
		},
	}
}
