package config

import (
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Omnia    OmniaConfig
	Woo      WooConfig
	Mysql    MysqlConfig
	Telegram TelegramBotConfig
	Sync     SyncConfig
	Server   ServerConfig
}

type OmniaConfig struct {
	BaseUrl  string
	Username string
	Password string
	Timeout  time.Duration
	// PartnerCode and BranchCode identify this integration on orders and
	// clients created in the ERP.
	PartnerCode string
	BranchCode  string
	CarrierName string
}

type WooConfig struct {
	BaseUrl        string
	ConsumerKey    string
	ConsumerSecret string
	Timeout        time.Duration
	// OrderWebhookSecret signs the created-order webhook payloads.
	OrderWebhookSecret string
}

type MysqlConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
}

type TelegramBotConfig struct {
	ChatId string
	Token  string
}

type SyncConfig struct {
	PageSize         int
	FetchConcurrency int
	BatchConcurrency int
	RetryAttempts    int
	RetryBaseDelay   time.Duration
}

type ServerConfig struct {
	Port string
}

// Load reads the full configuration from the environment. A .env file is
// honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	omniaBase, err := requiredString("OMNIA_API_URL")
	if err != nil {
		return nil, err
	}
	omniaUser, err := requiredString("OMNIA_API_USERNAME")
	if err != nil {
		return nil, err
	}
	omniaPass, err := requiredString("OMNIA_API_PASSWORD")
	if err != nil {
		return nil, err
	}
	wooBase, err := requiredString("WC_URL")
	if err != nil {
		return nil, err
	}
	wooKey, err := requiredString("WC_CONSUMER_KEY")
	if err != nil {
		return nil, err
	}
	wooSecret, err := requiredString("WC_CONSUMER_SECRET")
	if err != nil {
		return nil, err
	}

	mysqlPort, err := intWithDefault("MYSQL_PORT", 3306)
	if err != nil {
		return nil, err
	}
	pageSize, err := intWithDefault("SYNC_PAGE_SIZE", 1000)
	if err != nil {
		return nil, err
	}
	fetchConcurrency, err := intWithDefault("SYNC_FETCH_CONCURRENCY", 5)
	if err != nil {
		return nil, err
	}
	batchConcurrency, err := intWithDefault("SYNC_BATCH_CONCURRENCY", 10)
	if err != nil {
		return nil, err
	}
	retryAttempts, err := intWithDefault("SYNC_RETRY_ATTEMPTS", 3)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Omnia: OmniaConfig{
			BaseUrl:     omniaBase,
			Username:    omniaUser,
			Password:    omniaPass,
			Timeout:     60 * time.Second,
			PartnerCode: stringWithDefault("OMNIA_PARTNER_CODE", "MIT-TECH"),
			BranchCode:  stringWithDefault("OMNIA_BRANCH_CODE", "4"),
			CarrierName: stringWithDefault("OMNIA_CARRIER_NAME", "CORREIOS SEDEX"),
		},
		Woo: WooConfig{
			BaseUrl:            wooBase,
			ConsumerKey:        wooKey,
			ConsumerSecret:     wooSecret,
			Timeout:            60 * time.Second,
			OrderWebhookSecret: stringWithDefault("WC_CREATED_ORDER_WEBHOOK_SECRET", ""),
		},
		Mysql: MysqlConfig{
			Host:     stringWithDefault("MYSQL_HOST", ""),
			Port:     mysqlPort,
			Username: stringWithDefault("MYSQL_USERNAME", ""),
			Password: stringWithDefault("MYSQL_PASSWORD", ""),
			Database: stringWithDefault("MYSQL_DATABASE", ""),
		},
		Telegram: TelegramBotConfig{
			ChatId: stringWithDefault("TELEGRAM_CHAT_ID", ""),
			Token:  stringWithDefault("TELEGRAM_BOT_TOKEN", ""),
		},
		Sync: SyncConfig{
			PageSize:         pageSize,
			FetchConcurrency: fetchConcurrency,
			BatchConcurrency: batchConcurrency,
			RetryAttempts:    retryAttempts,
			RetryBaseDelay:   time.Second,
		},
		Server: ServerConfig{
			Port: stringWithDefault("PORT", "3000"),
		},
	}
	return cfg, nil
}
