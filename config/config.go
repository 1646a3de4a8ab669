package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Log struct {
		Level     string `default:"info" env:"LOG_LEVEL"`
		HTTPLevel string `default:"debug" env:"LOG_HTTP_LEVEL"`
	}
	Database struct {
		Driver         string `default:"postgres" env:"DB_DRIVER"`
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"hr-pipeline" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		SqlitePath     string `default:"hr-pipeline.db" env:"DB_SQLITE_PATH"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret             string `default:"change-me" env:"JWT_SECRET"`
		JWTExpireInSec        int    `default:"3600" env:"JWT_EXPIRE_IN_SEC"`
		JWTRefreshExpireInSec int    `default:"604800" env:"JWT_REFRESH_EXPIRE_IN_SEC"`
	}
	Admin struct {
		Username  string `default:"" env:"ADMIN_USERNAME"`
		Password  string `default:"" env:"ADMIN_PASSWORD"`
		Email     string `default:"" env:"ADMIN_EMAIL"`
		FirstName string `default:"Admin" env:"ADMIN_FIRST_NAME"`
		LastName  string `default:"RH" env:"ADMIN_LAST_NAME"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		From       string `default:"" env:"SMTP_FROM"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"hr-pipeline" env:"S3_BUCKET_NAME"`
	}
	Redis struct {
		URL string `default:"" env:"REDIS_URL"`
	}
	Notifications struct {
		EmailCopy   *bool `default:"false" env:"NOTIFICATIONS_EMAIL_COPY"`
		Parallelism int   `default:"4" env:"NOTIFICATIONS_PARALLELISM"`
	}
	Reminder struct {
		CronSpec  string `default:"@every 30m" env:"REMINDER_CRON_SPEC"`
		LeadHours int    `default:"24" env:"REMINDER_LEAD_HOURS"`
	}
	Swagger struct {
		FilePath string `default:"./docs/swagger.json" env:"SWAGGER_FILE_PATH"`
	}
	Company struct {
		Name    string `default:"" env:"COMPANY_NAME"`
		Address string `default:"" env:"COMPANY_ADDRESS"`
		Contact string `default:"" env:"COMPANY_CONTACT"`
		LogoKey string `default:"" env:"COMPANY_LOGO_KEY"`
		SignKey string `default:"" env:"COMPANY_SIGN_KEY"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
