package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Meta          Meta          `mapstructure:",squash"`
	GoogleAds     GoogleAds     `mapstructure:",squash"`
	GoogleChat    GoogleChat    `mapstructure:",squash"`
	BigQuery      BigQuery      `mapstructure:",squash"`
	Thresholds    Thresholds    `mapstructure:",squash"`
	BusinessHours BusinessHours `mapstructure:",squash"`
	BudgetMonitor BudgetMonitor `mapstructure:",squash"`
	AccountSync   AccountSync   `mapstructure:",squash"`
	SecretKey     string        `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL        string    `mapstructure:"meta_base_url"`
	URL            string    `mapstructure:"meta_url"`
	Version        string    `mapstructure:"meta_version"`
	AccessToken    string    `mapstructure:"meta_access_token"`
	AppID          string    `mapstructure:"meta_app_id"`
	AppSecret      string    `mapstructure:"meta_app_secret"`
	BusinessIDs    []string  `mapstructure:"meta_business_ids"`
	LongLivedToken string    `mapstructure:"meta_long_lived_token"`
	TokenExpiresAt time.Time `mapstructure:"-"`
	Enabled        bool      `mapstructure:"meta_enabled"`
	// RequestsPerSecond limita as chamadas à Graph API
	RequestsPerSecond float64 `mapstructure:"meta_requests_per_second"`
}

type GoogleAds struct {
	BaseURL           string  `mapstructure:"google_ads_base_url"`
	Version           string  `mapstructure:"google_ads_version"`
	DeveloperToken    string  `mapstructure:"google_ads_developer_token"`
	ClientID          string  `mapstructure:"google_ads_client_id"`
	ClientSecret      string  `mapstructure:"google_ads_client_secret"`
	RefreshToken      string  `mapstructure:"google_ads_refresh_token"`
	LoginCustomerID   string  `mapstructure:"google_ads_login_customer_id"`
	Enabled           bool    `mapstructure:"google_ads_enabled"`
	RequestsPerSecond float64 `mapstructure:"google_ads_requests_per_second"`
}

type GoogleChat struct {
	WebhookURL string `mapstructure:"google_chat_webhook_url"`
	// VerificationToken valida os callbacks dos botões dos cartões
	VerificationToken string        `mapstructure:"google_chat_verification_token"`
	Timeout           time.Duration `mapstructure:"google_chat_timeout"`
	MaxCriticalItems  int           `mapstructure:"google_chat_max_critical_items"`
	MaxNewItems       int           `mapstructure:"google_chat_max_new_items"`
}

type BigQuery struct {
	Enabled         bool   `mapstructure:"bigquery_enabled"`
	ProjectID       string `mapstructure:"bigquery_project_id"`
	Dataset         string `mapstructure:"bigquery_dataset"`
	CredentialsFile string `mapstructure:"google_application_credentials"`
	SnapshotsTable  string `mapstructure:"bigquery_snapshots_table"`
	AnomaliesTable  string `mapstructure:"bigquery_anomalies_table"`
}

// Thresholds ajusta os pisos usados na classificação. As tabelas de razão
// por faixa de orçamento são fixas no pacote thresholding.
type Thresholds struct {
	NewCampaignDailyFloor    float64 `mapstructure:"new_campaign_daily_floor"`
	NewCampaignLifetimeFloor float64 `mapstructure:"new_campaign_lifetime_floor"`
	DeliveryCheckFloor       float64 `mapstructure:"delivery_check_threshold"`
	ZombieRiskScore          float64 `mapstructure:"zombie_risk_score"`
}

type BusinessHours struct {
	Start    int    `mapstructure:"business_hours_start"`
	End      int    `mapstructure:"business_hours_end"`
	Timezone string `mapstructure:"timezone"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type BudgetMonitor struct {
	CronSchedule        string `mapstructure:"budget_monitor_cron"`
	Enabled             bool   `mapstructure:"budget_monitor_enabled"`
	DeliveryCheck       bool   `mapstructure:"budget_monitor_delivery_check"`
	NotifyEnabled       bool   `mapstructure:"budget_monitor_notify_enabled"`
	AccountTimeoutSecs  int    `mapstructure:"budget_monitor_account_timeout_seconds"`
	RequestDelaySeconds int    `mapstructure:"budget_monitor_request_delay_seconds"`
}

type AccountSync struct {
	CronSchedule string `mapstructure:"account_sync_cron"`
	Enabled      bool   `mapstructure:"account_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/budget_monitor?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_ACCESS_TOKEN", "") // ONLY LOCAL
	viper.SetDefault("META_BUSINESS_IDS", "")
	viper.SetDefault("META_ENABLED", true)
	viper.SetDefault("META_REQUESTS_PER_SECOND", 5)

	viper.SetDefault("GOOGLE_ADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_VERSION", "v18")
	viper.SetDefault("GOOGLE_ADS_DEVELOPER_TOKEN", "")
	viper.SetDefault("GOOGLE_ADS_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_ADS_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_ADS_REFRESH_TOKEN", "")
	viper.SetDefault("GOOGLE_ADS_LOGIN_CUSTOMER_ID", "")
	viper.SetDefault("GOOGLE_ADS_ENABLED", false)
	viper.SetDefault("GOOGLE_ADS_REQUESTS_PER_SECOND", 2)

	viper.SetDefault("GOOGLE_CHAT_WEBHOOK_URL", "")
	viper.SetDefault("GOOGLE_CHAT_VERIFICATION_TOKEN", "")
	viper.SetDefault("GOOGLE_CHAT_TIMEOUT", "30s")
	viper.SetDefault("GOOGLE_CHAT_MAX_CRITICAL_ITEMS", 3)
	viper.SetDefault("GOOGLE_CHAT_MAX_NEW_ITEMS", 3)

	viper.SetDefault("BIGQUERY_ENABLED", false)
	viper.SetDefault("BIGQUERY_PROJECT_ID", "")
	viper.SetDefault("BIGQUERY_DATASET", "budget_monitoring")
	viper.SetDefault("GOOGLE_APPLICATION_CREDENTIALS", "")
	viper.SetDefault("BIGQUERY_SNAPSHOTS_TABLE", "campaign_snapshots")
	viper.SetDefault("BIGQUERY_ANOMALIES_TABLE", "budget_anomalies")

	// Pisos de classificação
	viper.SetDefault("NEW_CAMPAIGN_DAILY_FLOOR", 165.0)     // ~5000/mês
	viper.SetDefault("NEW_CAMPAIGN_LIFETIME_FLOOR", 5000.0) // valor total
	viper.SetDefault("DELIVERY_CHECK_THRESHOLD", 5000.0)    // orçamento mínimo para checar veiculação
	viper.SetDefault("ZOMBIE_RISK_SCORE", 0.8)

	viper.SetDefault("BUSINESS_HOURS_START", 8)
	viper.SetDefault("BUSINESS_HOURS_END", 18)
	viper.SetDefault("TIMEZONE", "America/Toronto")

	viper.SetDefault("BUDGET_MONITOR_CRON", "*/30 * * * *")         // A cada 30 minutos
	viper.SetDefault("BUDGET_MONITOR_ENABLED", false)               // Habilitar monitoramento agendado
	viper.SetDefault("BUDGET_MONITOR_DELIVERY_CHECK", true)         // Verificar campanhas zumbis
	viper.SetDefault("BUDGET_MONITOR_NOTIFY_ENABLED", true)         // Enviar alertas no Google Chat
	viper.SetDefault("BUDGET_MONITOR_ACCOUNT_TIMEOUT_SECONDS", 120) // Tempo máximo por conta
	viper.SetDefault("BUDGET_MONITOR_REQUEST_DELAY_SECONDS", 0)     // Pausa entre contas

	viper.SetDefault("ACCOUNT_SYNC_CRON", "0 5 * * *") // Todos os dias às 5h da manhã
	viper.SetDefault("ACCOUNT_SYNC_ENABLED", false)

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
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

	config.finalize()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// finalize preenche os campos derivados
func (c *Config) finalize() {
	c.Meta.URL = fmt.Sprintf("%s/%s", c.Meta.BaseURL, c.Meta.Version)

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)

	// StringToSliceHookFunc transforma "" em [""]
	c.Meta.BusinessIDs = nonEmpty(c.Meta.BusinessIDs)
	c.Server.AllowedOrigins = nonEmpty(c.Server.AllowedOrigins)
}

func nonEmpty(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			result = append(result, value)
		}
	}
	return result
}

// Validate verifica combinações inválidas de configuração
func (c *Config) Validate() error {
	if c.BusinessHours.Start < 0 || c.BusinessHours.End > 24 || c.BusinessHours.Start >= c.BusinessHours.End {
		return fmt.Errorf("horário comercial inválido: %d-%d", c.BusinessHours.Start, c.BusinessHours.End)
	}

	if _, err := time.LoadLocation(c.BusinessHours.Timezone); err != nil {
		return fmt.Errorf("timezone inválido %q: %w", c.BusinessHours.Timezone, err)
	}

	if c.Thresholds.NewCampaignDailyFloor <= 0 || c.Thresholds.NewCampaignLifetimeFloor <= 0 {
		return fmt.Errorf("pisos de campanha nova devem ser positivos")
	}

	for name, expr := range map[string]string{
		"BUDGET_MONITOR_CRON": c.BudgetMonitor.CronSchedule,
		"ACCOUNT_SYNC_CRON":   c.AccountSync.CronSchedule,
	} {
		if _, err := cron.ParseStandard(expr); err != nil {
			return fmt.Errorf("%s inválido %q: %w", name, expr, err)
		}
	}

	if c.BigQuery.Enabled && c.BigQuery.ProjectID == "" {
		return fmt.Errorf("BIGQUERY_PROJECT_ID é obrigatório quando BIGQUERY_ENABLED=true")
	}

	return nil
}

// Location retorna o fuso usado para classificar horário comercial
func (b BusinessHours) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
