//go:build !ci

package sound

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"

	"github.com/palemoky/pyramid-climb/internal/logger"
)

const sampleRate = beep.SampleRate(44100)

var format = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// SoundManager 按音效名缓存音频，Play 不阻塞
type SoundManager struct {
	dir     string
	buffers map[string]*beep.Buffer
	enabled bool
}

// NewSoundManager 创建音效管理器，dir 中的同名文件优先于内置音调
func NewSoundManager(dir string) *SoundManager {
	return &SoundManager{
		dir:     dir,
		buffers: make(map[string]*beep.Buffer, len(Effects)),
	}
}

// Init 加载全部音效并打开扬声器。扬声器不可用时返回错误，Play 保持静音
func (sm *SoundManager) Init() error {
	if err := sm.load(); err != nil {
		return err
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	sm.enabled = true
	return nil
}

// load 为每个音效准备一段音频
func (sm *SoundManager) load() error {
	for _, name := range Effects {
		buf, err := sm.loadFile(name)
		if err != nil {
			logger.LogError("sound %s: %v, using built-in tone", name, err)
		}
		if buf == nil {
			if buf, err = toneBuffer(tones[name]); err != nil {
				return fmt.Errorf("failed to generate sound %s: %w", name, err)
			}
		}
		sm.buffers[name] = buf
	}
	return nil
}

// loadFile 读取 dir/<name>.wav 或 dir/<name>.mp3，都不存在时返回 nil
func (sm *SoundManager) loadFile(name string) (*beep.Buffer, error) {
	if sm.dir == "" {
		return nil, nil
	}
	for _, ext := range []string{".wav", ".mp3"} {
		f, err := os.Open(filepath.Join(sm.dir, name+ext))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		buf, err := decode(f, ext)
		_ = f.Close()
		return buf, err
	}
	return nil, nil
}

func decode(f *os.File, ext string) (*beep.Buffer, error) {
	var (
		streamer beep.StreamSeekCloser
		srcFmt   beep.Format
		err      error
	)
	if ext == ".mp3" {
		streamer, srcFmt, err = mp3.Decode(f)
	} else {
		streamer, srcFmt, err = wav.Decode(f)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = streamer.Close() }()

	var s beep.Streamer = streamer
	if srcFmt.SampleRate != sampleRate {
		s = beep.Resample(4, srcFmt.SampleRate, sampleRate, streamer)
	}
	buf := beep.NewBuffer(format)
	buf.Append(s)
	return buf, nil
}

func toneBuffer(t tone) (*beep.Buffer, error) {
	sine, err := generators.SineTone(sampleRate, t.freq)
	if err != nil {
		return nil, err
	}
	quiet := &effects.Gain{Streamer: beep.Take(sampleRate.N(t.duration), sine), Gain: -0.7}
	buf := beep.NewBuffer(format)
	buf.Append(quiet)
	return buf, nil
}

// Duration 音效时长，未加载时 ok 为 false
func (sm *SoundManager) Duration(name string) (time.Duration, bool) {
	buf, ok := sm.buffers[name]
	if !ok {
		return 0, false
	}
	return sampleRate.D(buf.Len()), true
}

func (sm *SoundManager) Play(name string) {
	if !sm.enabled {
		return
	}
	if buf, ok := sm.buffers[name]; ok {
		speaker.Play(buf.Streamer(0, buf.Len()))
	}
}

func (sm *SoundManager) Close() {
	if sm.enabled {
		speaker.Clear()
	}
	sm.enabled = false
}
