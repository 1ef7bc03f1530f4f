package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	tpl "github.com/cloudcopper/misc/env/template"
	"github.com/cloudcopper/verity/adapters"
	"github.com/cloudcopper/verity/domain/vo"
	"github.com/cloudcopper/verity/lib"
	"github.com/cloudcopper/verity/ports"
	"github.com/go-playground/validator/v10"

	"gopkg.in/yaml.v3"
)

// Config of single verification run
type Config struct {
	Target     string             `yaml:"target" validate:"required"`
	Baseline   string             `yaml:"baseline" validate:"required"`
	Algo       string             `yaml:"algo" validate:"required,digestalgo"`
	Exclude    []string           `yaml:"exclude" validate:"dive,glob"`
	Workers    int                `yaml:"workers" validate:"min=1,max=256"`
	Unreadable vo.ReadErrorPolicy `yaml:"unreadable" validate:"oneof=report modified"`
	History    string             `yaml:"history"`
	Strict     bool               `yaml:"strict"`
}

func (c *Config) String() string {
	s := ""
	s += fmt.Sprintf("target: %v\n", c.Target)
	s += fmt.Sprintf("baseline: %v\n", c.Baseline)
	s += fmt.Sprintf("algo: %v\n", c.Algo)
	s += fmt.Sprintf("exclude: %v\n", c.Exclude)
	s += fmt.Sprintf("workers: %v\n", c.Workers)
	s += fmt.Sprintf("unreadable: %v\n", c.Unreadable)
	if c.History == "" {
		s += "#history: in memory\n"
	} else {
		s += fmt.Sprintf("history: %v\n", c.History)
	}
	s += fmt.Sprintf("strict: %v\n", c.Strict)
	return strings.TrimSuffix(s, "\n")
}

var (
	ConfigFileName        = "verity.yml"
	TopRootFileSystemPath = ""
)

// Default returns config with the values used
// when neither config file nor flags tell otherwise
func Default() *Config {
	return &Config{
		Target:     "files_to_monitor",
		Baseline:   "baseline.json",
		Algo:       adapters.DefaultDigestAlgo,
		Workers:    1,
		Unreadable: vo.ReportUnreadable,
	}
}

// LoadConfig reads config file over defaults.
// Missing config file is not an error.
func LoadConfig(log ports.Logger, f fs.ReadFileFS, fileName string) (*Config, error) {
	cfg := Default()
	err := loadConfigFile(log, f, fileName, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("no config file", slog.String("fileName", fileName))
		return cfg, nil
	}
	return cfg, err
}

// The loadConfigFile reads named config file from given fs,
// execute file as env template,
// and unmarshal result to the config
func loadConfigFile(log ports.Logger, f fs.ReadFileFS, fileName string, cfg *Config) error {
	log.Debug("loading config", slog.String("fileName", fileName))
	blob, err := os.ReadFile(fileName)
	if err != nil {
		blob, err = f.ReadFile(fileName)
		if err != nil {
			return err
		}
	}

	// parse config as template
	t, err := tpl.Parse(string(blob))
	if err != nil {
		return err
	}
	// execute template
	s, err := t.Execute()
	if err != nil {
		return err
	}

	return yaml.Unmarshal([]byte(s), cfg)
}

// Validate checks config and dumps effective one
func Validate(log ports.Logger, cfg *Config) error {
	if err := NewValidator().Struct(cfg); err != nil {
		return err
	}

	dump := strings.Split(cfg.String(), "\n")
	for _, s := range dump {
		log.Debug(s)
	}
	return nil
}

func NewValidator() *validator.Validate {
	v := lib.NewValidator()
	v.RegisterValidation("digestalgo", func(fl validator.FieldLevel) bool {
		return adapters.IsDigestAlgo(fl.Field().String())
	})
	return v
}
