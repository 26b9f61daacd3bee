// internal/config/config.go
package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	CORS CORSConfig `mapstructure:"cors"`
	App  AppConfig  `mapstructure:"app"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type AppConfig struct {
	WordsPerPage    int `mapstructure:"words_per_page"`
	GroupsPerPage   int `mapstructure:"groups_per_page"`
	SessionsPerPage int `mapstructure:"sessions_per_page"`

	// 「マスター済み」判定のしきい値 (統計エンジンへの設定入力)
	MasteryMinCorrect int `mapstructure:"mastery_min_correct"`
	MasteryMaxWrong   int `mapstructure:"mastery_max_wrong"`

	// 連続学習日数の日付境界に使うタイムゾーン名 (例: "Asia/Tokyo", "UTC", "Local")
	StreakTimezone string `mapstructure:"streak_timezone"`

	// イベントの無いセッションの表示用終了時刻 = 開始時刻 + この分数
	SessionFallbackMinutes int `mapstructure:"session_fallback_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("server.port", "SERVER_PORT")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return nil, err
	}

	// --- デフォルト値の設定 ---
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.App.WordsPerPage <= 0 {
		cfg.App.WordsPerPage = 50
	}
	if cfg.App.GroupsPerPage <= 0 {
		cfg.App.GroupsPerPage = 10
	}
	if cfg.App.SessionsPerPage <= 0 {
		cfg.App.SessionsPerPage = 10
	}
	if cfg.App.MasteryMinCorrect <= 0 {
		cfg.App.MasteryMinCorrect = 5
	}
	if cfg.App.MasteryMaxWrong < 0 {
		cfg.App.MasteryMaxWrong = 2
	}
	if !viper.IsSet("app.mastery_max_wrong") {
		cfg.App.MasteryMaxWrong = 2
	}
	if cfg.App.StreakTimezone == "" {
		cfg.App.StreakTimezone = "Local"
	}
	if cfg.App.SessionFallbackMinutes <= 0 {
		cfg.App.SessionFallbackMinutes = 30
	}
	if cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}

	log.Println("Config loaded successfully")
	return &cfg, nil
}
