package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server    Server
	Database  Database
	LLM       LLM
	Auth      Auth
	Storage   Storage
	Log       Log
	TTS       TTS
	AssetsDir string
}

type Server struct {
	Port               string
	Mode               string
	CORSAllowedOrigins []string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// LLM selects and configures the completion provider used for dictation analysis.
type LLM struct {
	Provider      string
	OpenAIApiKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiApiKey  string
	GeminiModel   string
	// Timeout of zero means the model call is bounded only by the request context.
	Timeout time.Duration
}

type Auth struct {
	Secret              string
	ProfileCookieSecure bool
}

type Storage struct {
	Endpoint       string
	AccessKey      string
	SecretKey      string
	UseSSL         bool
	AvatarsBucket  string
	AudioBucket    string
	ImagesBucket   string
	AnalysesBucket string
	PresignTTL     time.Duration
}

type Log struct {
	Level string
	File  string
}

type TTS struct {
	Voice        string
	LanguageCode string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("LLM_PROVIDER", "openai")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("LLM_TIMEOUT_SECONDS", 0)
	viper.SetDefault("STORAGE_AVATARS_BUCKET", "avatars")
	viper.SetDefault("STORAGE_AUDIO_BUCKET", "audio")
	viper.SetDefault("STORAGE_IMAGES_BUCKET", "images")
	viper.SetDefault("STORAGE_ANALYSES_BUCKET", "analyses")
	viper.SetDefault("STORAGE_PRESIGN_TTL_MINUTES", 60)
	viper.SetDefault("ASSETS_DIR", "./public")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("TTS_VOICE", "fr-FR-Standard-A")
	viper.SetDefault("TTS_LANGUAGE_CODE", "fr-FR")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.Mode = viper.GetString("GIN_MODE")
	config.Server.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.LLM.Provider = strings.ToLower(viper.GetString("LLM_PROVIDER"))
	config.LLM.OpenAIApiKey = viper.GetString("OPENAI_API_KEY")
	config.LLM.OpenAIModel = viper.GetString("OPENAI_MODEL")
	config.LLM.OpenAIBaseURL = viper.GetString("OPENAI_BASE_URL")
	config.LLM.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.LLM.GeminiModel = viper.GetString("GEMINI_MODEL")
	config.LLM.Timeout = time.Duration(viper.GetInt("LLM_TIMEOUT_SECONDS")) * time.Second

	config.Auth.Secret = viper.GetString("AUTH_SECRET")
	config.Auth.ProfileCookieSecure = viper.GetBool("PROFILE_COOKIE_SECURE")

	config.Storage.Endpoint = viper.GetString("STORAGE_ENDPOINT")
	config.Storage.AccessKey = viper.GetString("STORAGE_ACCESS_KEY")
	config.Storage.SecretKey = viper.GetString("STORAGE_SECRET_KEY")
	config.Storage.UseSSL = viper.GetBool("STORAGE_USE_SSL")
	config.Storage.AvatarsBucket = viper.GetString("STORAGE_AVATARS_BUCKET")
	config.Storage.AudioBucket = viper.GetString("STORAGE_AUDIO_BUCKET")
	config.Storage.ImagesBucket = viper.GetString("STORAGE_IMAGES_BUCKET")
	config.Storage.AnalysesBucket = viper.GetString("STORAGE_ANALYSES_BUCKET")
	config.Storage.PresignTTL = time.Duration(viper.GetInt("STORAGE_PRESIGN_TTL_MINUTES")) * time.Minute

	config.AssetsDir = viper.GetString("ASSETS_DIR")

	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.File = viper.GetString("LOG_FILE")

	config.TTS.Voice = viper.GetString("TTS_VOICE")
	config.TTS.LanguageCode = viper.GetString("TTS_LANGUAGE_CODE")

	log.Info().Interface("config", config.Redacted()).Msg("Config loaded")
	return &config, nil
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	c.Database.Password = mask(c.Database.Password)
	c.LLM.OpenAIApiKey = mask(c.LLM.OpenAIApiKey)
	c.LLM.GeminiApiKey = mask(c.LLM.GeminiApiKey)
	c.Auth.Secret = mask(c.Auth.Secret)
	c.Storage.SecretKey = mask(c.Storage.SecretKey)
	return c
}

// DSN builds the postgres connection string for gorm.
func (d Database) DSN() string {
	return "host=" + d.Host +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" port=" + d.Port +
		" sslmode=" + d.SSLMode
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "****"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
