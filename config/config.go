package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	app "road-inspector/internal/application"
	"road-inspector/internal/infrastructure/vision"
	"road-inspector/internal/tracking"
)

// ErrConfiguration оборачивает все ошибки загрузки конфигурации.
var ErrConfiguration = errors.New("configuration error")

type Config struct {
	VideoSource string // путь к файлу или индекс камеры

	Vision   vision.Params
	Tracking tracking.Config
	Queue    app.QueueConfig

	TelegramToken  string
	TelegramChatID int64

	Verbose bool
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() *Config {
	return &Config{
		Vision:   vision.DefaultParams(),
		Tracking: tracking.DefaultConfig(),
		Queue:    app.QueueConfig{Depth: 2},
	}
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	return FromEnv()
}

// FromEnv читает конфигурацию из переменных окружения поверх значений по умолчанию.
func FromEnv() (*Config, error) {
	cfg := Default()
	e := &env{}

	cfg.VideoSource = strings.TrimSpace(os.Getenv("VIDEO_SOURCE"))
	// Видеофайл читается быстрее обработки: отброшенные кадры рвали бы треки.
	cfg.Queue.Block = cfg.VideoSource != "" && !IsLive(cfg.VideoSource)

	f := &cfg.Vision.Filter
	e.floatVar("MIN_AREA", &f.MinArea)
	e.floatVar("MAX_AREA", &f.MaxArea)
	e.floatVar("MAX_MEAN_INTENSITY", &f.MaxMeanIntensity)
	e.floatVar("MIN_FILL_RATIO", &f.MinFillRatio)
	e.floatVar("ASPECT_MIN", &f.AspectMin)
	e.floatVar("ASPECT_MAX", &f.AspectMax)

	v := &cfg.Vision
	e.floatVar("DARK_THRESHOLD", &v.DarkThreshold)
	e.floatVar("ROI_START_FRACTION", &v.ROIStartFraction)
	e.intVar("BG_HISTORY", &v.BackgroundHistory)
	e.floatVar("BG_VAR_THRESHOLD", &v.BackgroundVarThreshold)
	e.intVar("BLUR_KERNEL", &v.BlurKernel)
	e.floatVar("CLAHE_CLIP_LIMIT", &v.CLAHEClipLimit)
	e.intVar("CLAHE_TILE_GRID", &v.CLAHETileGrid)
	e.floatVar("CANNY_LOW", &v.CannyLow)
	e.floatVar("CANNY_HIGH", &v.CannyHigh)
	e.intVar("MORPH_KERNEL", &v.MorphKernel)
	e.intVar("MORPH_OPEN_ITERATIONS", &v.MorphOpenIterations)
	e.intVar("MORPH_CLOSE_ITERATIONS", &v.MorphCloseIterations)

	t := &cfg.Tracking
	e.intVar("CONFIRM_FRAMES", &t.ConfirmFrames)
	e.intVar("MAX_LOST_FRAMES", &t.MaxLostFrames)
	e.floatVar("MAX_MATCH_DISTANCE", &t.MaxMatchDistance)
	if s := os.Getenv("ASSOCIATION"); s != "" {
		t.Association = tracking.Association(strings.ToLower(strings.TrimSpace(s)))
	}

	e.intVar("FRAME_QUEUE_DEPTH", &cfg.Queue.Depth)
	e.boolVar("FRAME_QUEUE_BLOCK", &cfg.Queue.Block)

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	e.int64Var("TELEGRAM_CHAT_ID", &cfg.TelegramChatID)
	e.boolVar("VERBOSE", &cfg.Verbose)

	if e.err != nil {
		return nil, e.err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет параметры всех компонентов.
func (c *Config) Validate() error {
	if err := c.Vision.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if err := c.Tracking.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if c.Queue.Depth < 1 || c.Queue.Depth > 2 {
		return fmt.Errorf("%w: FRAME_QUEUE_DEPTH must be 1 or 2, got %d", ErrConfiguration, c.Queue.Depth)
	}
	return nil
}

// IsLive сообщает, что источник — камера (индекс устройства или сетевой поток),
// а не видеофайл.
func IsLive(source string) bool {
	if _, err := strconv.Atoi(source); err == nil {
		return true
	}
	return strings.Contains(source, "://")
}

// env разбирает переменные окружения и запоминает первую ошибку.
type env struct {
	err error
}

func (e *env) lookup(key string) (string, bool) {
	if e.err != nil {
		return "", false
	}
	s, ok := os.LookupEnv(key)
	s = strings.TrimSpace(s)
	return s, ok && s != ""
}

func (e *env) fail(key, value string, err error) {
	e.err = fmt.Errorf("%w: %s=%q: %v", ErrConfiguration, key, value, err)
}

func (e *env) floatVar(key string, dst *float64) {
	s, ok := e.lookup(key)
	if !ok {
		return
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		e.fail(key, s, err)
		return
	}
	*dst = v
}

func (e *env) intVar(key string, dst *int) {
	s, ok := e.lookup(key)
	if !ok {
		return
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		e.fail(key, s, err)
		return
	}
	*dst = v
}

func (e *env) int64Var(key string, dst *int64) {
	s, ok := e.lookup(key)
	if !ok {
		return
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		e.fail(key, s, err)
		return
	}
	*dst = v
}

func (e *env) boolVar(key string, dst *bool) {
	s, ok := e.lookup(key)
	if !ok {
		return
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		e.fail(key, s, err)
		return
	}
	*dst = v
}
