package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// Secrets holds values that must never leave the server process.
type Secrets struct {
	WeatherAPIKey string `envconfig:"WEATHER_API_KEY"`
}

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

// initConfig reports its own problems on a bootstrap logger so that
// GetLogger can depend on it.
func initConfig() {
	once.Do(func() {
		boot := bootstrapLogger()
		defer func() { _ = boot.Sync() }()

		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		root, err := getProjectRoot()
		if err != nil {
			boot.Warnw("Project root not found, using defaults", "error", err)
			return
		}
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			boot.Warnw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			viper.AddConfigPath(root)
			if err = viper.MergeInConfig(); err != nil {
				boot.Warnw("Error merging test config file", "error", err)
			}
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// LoadSecrets reads the upstream credential from the environment, after
// loading a .env file if one exists.
func LoadSecrets() (Secrets, error) {
	_ = godotenv.Load()
	var s Secrets
	if err := envconfig.Process("", &s); err != nil {
		return Secrets{}, fmt.Errorf("error loading secrets: %w", err)
	}
	return s, nil
}

func GetUpstreamBaseURL() string {
	initConfig()
	u := viper.GetString("upstream.base_url")
	if u == "" {
		u = "https://api.weatherapi.com/v1"
	}
	return strings.TrimRight(u, "/")
}

// GetForecastDays returns the forecast window sent upstream, today included.
func GetForecastDays() int {
	initConfig()
	days := viper.GetInt("upstream.forecast_days")
	if days <= 0 {
		return 5
	}
	return days
}

func GetAirQuality() string {
	initConfig()
	aqi := viper.GetString("upstream.aqi")
	if aqi == "" {
		return "yes"
	}
	return aqi
}

func GetRedisAddr() string {
	initConfig()
	return viper.GetString("redis.addr")
}

func GetServerPort() string {
	initConfig()
	serverPort := viper.GetString("server.port")
	if serverPort == "" {
		serverPort = "8080"
	}
	return serverPort
}

// GetServerTimeout returns server.<key> as a duration, or def when unset or invalid.
func GetServerTimeout(key string, def time.Duration) time.Duration {
	initConfig()
	return parseDuration(viper.GetString("server."+key), def)
}

// GetUsageTTL returns how long per-day usage counters are kept.
func GetUsageTTL() time.Duration {
	initConfig()
	return parseDuration(viper.GetString("usage.ttl"), 48*time.Hour)
}

func GetLogFile() string {
	initConfig()
	return viper.GetString("log.file")
}

func GetDashboardProxyURL() string {
	initConfig()
	u := viper.GetString("dashboard.proxy_url")
	if u == "" {
		u = "http://localhost:8080"
	}
	return strings.TrimRight(u, "/")
}

func GetDashboardDefaultCity() string {
	initConfig()
	city := viper.GetString("dashboard.default_city")
	if city == "" {
		return "Nairobi"
	}
	return city
}

// GetDashboardPosition returns the configured device position. ok is false
// when either coordinate is missing, which the dashboard treats as
// geolocation being unsupported.
func GetDashboardPosition() (lat, lon float64, ok bool) {
	initConfig()
	if !viper.IsSet("dashboard.latitude") || !viper.IsSet("dashboard.longitude") {
		return 0, 0, false
	}
	return viper.GetFloat64("dashboard.latitude"), viper.GetFloat64("dashboard.longitude"), true
}

// GetDashboardFetchTimeout returns 0 when no timeout should be applied.
func GetDashboardFetchTimeout() time.Duration {
	initConfig()
	return parseDuration(viper.GetString("dashboard.fetch_timeout"), 0)
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return def
	}
	return d
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func bootstrapLogger() *zap.SugaredLogger {
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// GetLogger returns the process logger, teeing into log.file when set.
func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		path := GetLogFile()
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		if path != "" {
			l = l.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
				return zapcore.NewTee(core, newFileCore(path))
			}))
		}
		logger = l.Sugar()
	})
	return logger
}

func newFileCore(path string) zapcore.Core {
	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})
	return zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), sink, zapcore.InfoLevel)
}
