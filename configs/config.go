package configs

import (
	"encoding/json"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type ConfigData struct {
	RulesPath    	string 	`json:"rules_path"`
	Language     	string 	`json:"language"`
	CatalogPath  	string 	`json:"catalog_path"`
	KeyLength    	int    	`json:"key_length" validate:"min=1,max=8"`
	CacheSize    	int    	`json:"cache_size" validate:"min=0,max=10000000"`
	WorkersCount 	int    	`json:"worker_count" validate:"min=1,max=1024"`
	TasksCount   	int    	`json:"task_count" validate:"min=1,max=100000"`
	HTTPPort     	int    	`json:"http_port" validate:"min=1,max=65535"`
	LogBuffer    	int    	`json:"log_buffer" validate:"min=1,max=1000000"`
	Debug 			bool 	`json:"debug"`
}

var envOverrides = []struct {
	key string
	set func(*ConfigData, string) error
}{
	{"LEMMAGEN_RULES", func(c *ConfigData, v string) error { c.RulesPath = v; return nil }},
	{"LEMMAGEN_LANGUAGE", func(c *ConfigData, v string) error { c.Language = v; return nil }},
	{"LEMMAGEN_CATALOG", func(c *ConfigData, v string) error { c.CatalogPath = v; return nil }},
	{"LEMMAGEN_KEY_LENGTH", intSetter(func(c *ConfigData, n int) { c.KeyLength = n })},
	{"LEMMAGEN_CACHE_SIZE", intSetter(func(c *ConfigData, n int) { c.CacheSize = n })},
	{"LEMMAGEN_WORKERS", intSetter(func(c *ConfigData, n int) { c.WorkersCount = n })},
	{"LEMMAGEN_PORT", intSetter(func(c *ConfigData, n int) { c.HTTPPort = n })},
	{"LEMMAGEN_DEBUG", func(c *ConfigData, v string) error {
		b, err := strconv.ParseBool(v)
		c.Debug = b
		return err
	}},
}

func intSetter(set func(*ConfigData, int)) func(*ConfigData, string) error {
	return func(c *ConfigData, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		set(c, n)
		return nil
	}
}

func Default() *ConfigData {
	return &ConfigData{
		KeyLength: 		2,
		CacheSize: 		0,
		WorkersCount: 	8,
		TasksCount: 	1024,
		HTTPPort: 		50051,
		LogBuffer: 		1000,
	}
}

func (cfg *ConfigData) Validate() error {
	return New("validate").Validate(*cfg)
}

// UploadLocalConfiguration reads fileName over the defaults. An empty name means defaults only.
func UploadLocalConfiguration(fileName string) (*ConfigData, error) {
	cfg := Default()
	if fileName == "" {
		return cfg, nil
	}

	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "decode %s", fileName)
	}
	return cfg, nil
}

// ApplyEnv loads envFile (if it exists) into the process environment and
// applies the LEMMAGEN_* variables on top of cfg. Variables already set in
// the environment win over the file.
func (cfg *ConfigData) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(err, "load %s", envFile)
		}
	}
	for _, o := range envOverrides {
		v, ok := os.LookupEnv(o.key)
		if !ok || v == "" {
			continue
		}
		if err := o.set(cfg, v); err != nil {
			return errors.Wrapf(err, "%s=%q", o.key, v)
		}
	}
	return nil
}

// Load is UploadLocalConfiguration followed by ApplyEnv and Validate.
func Load(fileName, envFile string) (*ConfigData, error) {
	cfg, err := UploadLocalConfiguration(fileName)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(envFile); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
