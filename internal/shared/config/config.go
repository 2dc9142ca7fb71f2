package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	LOPDivisorFixed    = "fixed"
	LOPDivisorCalendar = "calendar"

	MissingAttendanceFullPay = "full_pay"
	MissingAttendanceUnpaid  = "unpaid"

	StorageLocal = "local"
	StorageGCS   = "gcs"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Storage  StorageConfig  `mapstructure:"storage"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Auth     AuthConfig     `mapstructure:"auth"`
	RBAC     RBACConfig     `mapstructure:"rbac"`
	Log      LogConfig      `mapstructure:"log"`
	Payroll  PayrollConfig  `mapstructure:"payroll"`
}

type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	SSLMode    string `mapstructure:"sslmode"`
	MaxRetries int    `mapstructure:"max_retries"`
	Migrate    bool   `mapstructure:"migrate"`
}

type RedisConfig struct {
	Addr       string `mapstructure:"addr"`
	MaxRetries int    `mapstructure:"max_retries"`
}

type KafkaConfig struct {
	Broker        string        `mapstructure:"broker"`
	ConsumerGroup string        `mapstructure:"consumer_group"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
}

type StorageConfig struct {
	Driver          string `mapstructure:"driver"`
	LocalDir        string `mapstructure:"local_dir"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
	GCSBucket       string `mapstructure:"gcs_bucket"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// Enabled reports whether outbound mail is configured at all.
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type RBACConfig struct {
	ModelPath  string `mapstructure:"model_path"`
	PolicyPath string `mapstructure:"policy_path"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type PayrollConfig struct {
	MinBasicSalary          float64       `mapstructure:"min_basic_salary"`
	LOPDivisorMode          string        `mapstructure:"lop_divisor_mode"`
	LOPFixedDivisor         int           `mapstructure:"lop_fixed_divisor"`
	MissingAttendancePolicy string        `mapstructure:"missing_attendance_policy"`
	Currency                string        `mapstructure:"currency"`
	CompanyName             string        `mapstructure:"company_name"`
	BatchLockTTL            time.Duration `mapstructure:"batch_lock_ttl"`
}

// Load reads .env (if present), an optional YAML file named by CONFIG_FILE,
// then environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	bindEnvVars(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_retries", 5)
	v.SetDefault("database.migrate", true)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.max_retries", 5)

	v.SetDefault("kafka.consumer_group", "go-payroll-mailer")
	v.SetDefault("kafka.poll_interval", 3*time.Second)

	v.SetDefault("storage.driver", StorageLocal)
	v.SetDefault("storage.local_dir", "storage/payslips")
	v.SetDefault("storage.public_base_url", "/files/payslips")

	v.SetDefault("smtp.port", 587)

	v.SetDefault("rbac.model_path", "internal/rbac/infra/model.conf")
	v.SetDefault("rbac.policy_path", "internal/rbac/infra/policy.csv")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", true)

	v.SetDefault("payroll.min_basic_salary", 0)
	v.SetDefault("payroll.lop_divisor_mode", LOPDivisorFixed)
	v.SetDefault("payroll.lop_fixed_divisor", 30)
	v.SetDefault("payroll.missing_attendance_policy", MissingAttendanceFullPay)
	v.SetDefault("payroll.currency", "INR")
	v.SetDefault("payroll.company_name", "Go Payroll")
	v.SetDefault("payroll.batch_lock_ttl", 2*time.Minute)
}

// bindEnvVars keeps the flat variable names used by docker-compose files.
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("config_file", "CONFIG_FILE")
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("database.host", "DB_HOST")
	_ = v.BindEnv("database.port", "DB_PORT")
	_ = v.BindEnv("database.user", "DB_USER")
	_ = v.BindEnv("database.password", "DB_PASSWORD")
	_ = v.BindEnv("database.name", "DB_NAME")
	_ = v.BindEnv("database.sslmode", "DB_SSLMODE")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("kafka.broker", "KAFKA_BROKER")
	_ = v.BindEnv("storage.driver", "STORAGE_DRIVER")
	_ = v.BindEnv("storage.gcs_bucket", "GCS_BUCKET")
	_ = v.BindEnv("storage.credentials_file", "GOOGLE_APPLICATION_CREDENTIALS")
	_ = v.BindEnv("smtp.host", "SMTP_HOST")
	_ = v.BindEnv("smtp.port", "SMTP_PORT")
	_ = v.BindEnv("smtp.username", "SMTP_USERNAME")
	_ = v.BindEnv("smtp.password", "SMTP_PASSWORD")
	_ = v.BindEnv("smtp.from", "SMTP_FROM")
	_ = v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
}

func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Payroll.MinBasicSalary < 0 {
		return fmt.Errorf("payroll.min_basic_salary must not be negative")
	}
	switch c.Payroll.LOPDivisorMode {
	case LOPDivisorFixed:
		if c.Payroll.LOPFixedDivisor <= 0 {
			return fmt.Errorf("payroll.lop_fixed_divisor must be positive")
		}
	case LOPDivisorCalendar:
	default:
		return fmt.Errorf("unknown payroll.lop_divisor_mode %q", c.Payroll.LOPDivisorMode)
	}
	switch c.Payroll.MissingAttendancePolicy {
	case MissingAttendanceFullPay, MissingAttendanceUnpaid:
	default:
		return fmt.Errorf("unknown payroll.missing_attendance_policy %q", c.Payroll.MissingAttendancePolicy)
	}
	switch c.Storage.Driver {
	case StorageLocal:
	case StorageGCS:
		if c.Storage.GCSBucket == "" {
			return fmt.Errorf("storage.gcs_bucket is required for the gcs driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	return nil
}
