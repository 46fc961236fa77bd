package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Address         string
		ShutdownTimeout time.Duration
	}

	StorageConfig struct {
		Driver     string // file (default) | redis | memory
		GradesPath string
		PhonesPath string
	}

	RedisConfig struct {
		Address  string
		Password string
		DB       int
		Prefix   string
	}

	GradesConfig struct {
		Lenient     bool // coerce non-numeric grade tokens to 0 instead of rejecting them
		RecentCount int
	}

	Config struct {
		Env          string
		Debug        bool
		TestMode     bool
		AppName      string
		SecretKey    string
		RollbarToken string
		Server       ServerConfig
		Storage      StorageConfig
		Redis        RedisConfig
		Grades       GradesConfig
	}
)

func newViper() (*viper.Viper, string) {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Tally")
	v.SetDefault("secretKey", "ka9#-fj2)wpe$+31=dz&uoxh2(h!x)#*c2(#yg4h^$qwx7tzr")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.gradesPath", "grades.json")
	v.SetDefault("storage.phonesPath", "products.json")
	v.SetDefault("redis.address", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "tally:")
	v.SetDefault("grades.lenient", false)
	v.SetDefault("grades.recentCount", 5)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return v, env
}

// NewConfig reads the configuration from defaults, the optional dotenv file and the environment.
// Environment variables are prefixed with the current ENV, e.g. PROD_STORAGE_DRIVER=redis.
func NewConfig() *Config {
	v, env := newViper()
	return &Config{
		Env:          env,
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		AppName:      v.GetString("appName"),
		SecretKey:    v.GetString("secretKey"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Address:         v.GetString("server.address"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(v.GetString("storage.driver")),
			GradesPath: v.GetString("storage.gradesPath"),
			PhonesPath: v.GetString("storage.phonesPath"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			Prefix:   v.GetString("redis.prefix"),
		},
		Grades: GradesConfig{
			Lenient:     v.GetBool("grades.lenient"),
			RecentCount: v.GetInt("grades.recentCount"),
		},
	}
}
