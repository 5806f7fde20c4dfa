package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/pyramid-climb/internal/config"
	"github.com/palemoky/pyramid-climb/internal/game/engine"
	"github.com/palemoky/pyramid-climb/internal/logger"
	"github.com/palemoky/pyramid-climb/internal/sound"
	"github.com/palemoky/pyramid-climb/internal/ui"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	seed := flag.Uint64("seed", 0, "随机种子，覆盖配置文件，0 表示随机")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	if cfg.Log.Enabled {
		if err := logger.Init(cfg.Log.Dir); err != nil {
			log.Printf("初始化日志失败: %v", err)
		}
		defer logger.Close()
	}
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			panic(r)
		}
	}()

	var snd ui.SoundPlayer
	if cfg.UI.Sound {
		sm := sound.NewSoundManager(cfg.UI.SoundDir)
		if err := sm.Init(); err != nil {
			logger.LogError("sound disabled: %v", err)
		}
		defer sm.Close()
		snd = sm
	}

	rng := engine.NewRand(cfg.Game.Seed)
	if cfg.Game.Seed == 0 {
		rng = nil
	}

	model, err := ui.NewHotSeatModel(cfg.Game.Rules(), rng, snd)
	if err != nil {
		log.Fatalf("创建对局失败: %v", err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.LogError("program exited: %v", err)
		log.Fatalf("运行出错: %v", err)
	}
}
