package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App      `mapstructure:",squash"`
	Server    Server   `mapstructure:",squash"`
	Database  Database `mapstructure:",squash"`
	Redis     Redis    `mapstructure:",squash"`
	Google    Google   `mapstructure:",squash"`
	GA4       GA4      `mapstructure:",squash"`
	GSC       GSC      `mapstructure:",squash"`
	Ads       Ads      `mapstructure:",squash"`
	Auth      Auth     `mapstructure:",squash"`
	Cors      Cors     `mapstructure:",squash"`
	Pipeline  Pipeline `mapstructure:",squash"`
	SecretKey string   `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Redis struct {
	Addr     string        `mapstructure:"redis_addr"`
	Password string        `mapstructure:"redis_password"`
	DB       int           `mapstructure:"redis_db"`
	TokenTTL time.Duration `mapstructure:"redis_token_max_ttl"`
}

// Google reúne o cliente OAuth compartilhado por GA4, GSC e Ads
type Google struct {
	ClientID     string        `mapstructure:"google_client_id"`
	ClientSecret string        `mapstructure:"google_client_secret"`
	RedirectURI  string        `mapstructure:"google_redirect_uri"`
	TokenURL     string        `mapstructure:"google_token_url"`
	ExpirySkew   time.Duration `mapstructure:"google_token_expiry_skew"`
}

type GA4 struct {
	BaseURL    string `mapstructure:"ga4_base_url"`
	PropertyID string `mapstructure:"ga4_property_id"`
	PageSize   int    `mapstructure:"ga4_page_size"`
}

type GSC struct {
	BaseURL           string `mapstructure:"gsc_base_url"`
	SiteURL           string `mapstructure:"gsc_site_url"`
	RowLimit          int    `mapstructure:"gsc_row_limit"`
	PositionAveraging string `mapstructure:"gsc_position_averaging"`
}

type Ads struct {
	BaseURL               string `mapstructure:"ads_base_url"`
	APIVersion            string `mapstructure:"ads_api_version"`
	DeveloperToken        string `mapstructure:"ads_developer_token"`
	CustomerID            string `mapstructure:"ads_customer_id"`
	LoginCustomerID       string `mapstructure:"ads_login_customer_id"`
	QualityScoreAveraging string `mapstructure:"ads_quality_score_averaging"`
	PageSize              int    `mapstructure:"ads_page_size"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// Pipeline controla janelas padrão do dashboard
type Pipeline struct {
	DefaultWindowDays    int `mapstructure:"default_window_days"`
	GSCDefaultWindowDays int `mapstructure:"gsc_default_window_days"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/dashboard?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_TOKEN_MAX_TTL", "55m")

	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URI", "")
	viper.SetDefault("GOOGLE_TOKEN_URL", "")
	viper.SetDefault("GOOGLE_TOKEN_EXPIRY_SKEW", "2m") // Renova um pouco antes de expirar

	viper.SetDefault("GA4_BASE_URL", "https://analyticsdata.googleapis.com/v1beta")
	viper.SetDefault("GA4_PROPERTY_ID", "")
	viper.SetDefault("GA4_PAGE_SIZE", 10000)

	viper.SetDefault("GSC_BASE_URL", "https://www.googleapis.com/webmasters/v3")
	viper.SetDefault("GSC_SITE_URL", "")
	viper.SetDefault("GSC_ROW_LIMIT", 25000)
	viper.SetDefault("GSC_POSITION_AVERAGING", "pairwise")

	viper.SetDefault("ADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("ADS_API_VERSION", "v17")
	viper.SetDefault("ADS_DEVELOPER_TOKEN", "")
	viper.SetDefault("ADS_CUSTOMER_ID", "")
	viper.SetDefault("ADS_LOGIN_CUSTOMER_ID", "")
	viper.SetDefault("ADS_QUALITY_SCORE_AVERAGING", "pairwise")
	viper.SetDefault("ADS_PAGE_SIZE", 10000)

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")
	viper.SetDefault("SECRET_KEY", "your_secret_key") // Chave de cifragem dos tokens OAuth

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DEFAULT_WINDOW_DAYS", 30)
	viper.SetDefault("GSC_DEFAULT_WINDOW_DAYS", 28)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// ValidateOAuthClient verifica se o cliente OAuth do Google está completo
func (c *Config) ValidateOAuthClient() error {
	missing := make([]string, 0, 3)
	if c.Google.ClientID == "" {
		missing = append(missing, "GOOGLE_CLIENT_ID")
	}
	if c.Google.ClientSecret == "" {
		missing = append(missing, "GOOGLE_CLIENT_SECRET")
	}
	if c.Google.RedirectURI == "" {
		missing = append(missing, "GOOGLE_REDIRECT_URI")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing OAuth configuration: %v", missing)
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
