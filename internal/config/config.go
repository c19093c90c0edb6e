package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Everything a component needs is passed in
// explicitly through this struct; nothing reads ambient globals after startup.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign JWTs
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing

	// Payment gateway credentials.  The key ID is public and is echoed back
	// to clients so they can open the checkout widget; the secret never
	// leaves the server.
	RazorpayKeyID     string
	RazorpayKeySecret string

	// Outbound mail.  MailDriver selects the strategy: "smtp" sends real
	// mail, "mock" records messages in memory (used in dev and tests).
	MailDriver string
	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	MailFrom   string

	// File uploads.  UploadDriver selects "s3" or "local"; the S3 fields are
	// only required when the s3 driver is active.
	UploadDriver string
	S3Bucket     string
	S3Region     string
	S3AccessKey  string
	S3SecretKey  string
	S3Endpoint   string // optional, for MinIO-style deployments
	LocalDir     string // root directory for the local driver
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Driver-specific
// variables are validated here as well so a misconfigured deployment fails
// at startup instead of on the first request.
func Load() Config {
	cfg := Config{
		Env:               must("APP_ENV"),
		Port:              must("APP_PORT"),
		DBUser:            must("DB_USER"),
		DBPass:            os.Getenv("DB_PASS"), // empty allowed
		DBHost:            must("DB_HOST"),
		DBPort:            must("DB_PORT"),
		DBName:            must("DB_NAME"),
		JWTSecret:         must("JWT_SECRET"),
		AccessTTLMin:      mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:        mustInt("BCRYPT_COST"),
		RazorpayKeyID:     must("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: must("RAZORPAY_KEY_SECRET"),
		MailDriver:        getenv("MAIL_DRIVER", "smtp"),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          atoi(getenv("SMTP_PORT", "587")),
		SMTPUser:          os.Getenv("SMTP_USERNAME"),
		SMTPPass:          os.Getenv("SMTP_PASSWORD"),
		MailFrom:          os.Getenv("MAIL_FROM"),
		UploadDriver:      getenv("UPLOAD_DRIVER", "local"),
		S3Bucket:          os.Getenv("S3_BUCKET_NAME"),
		S3Region:          getenv("AWS_REGION", "us-east-1"),
		S3AccessKey:       os.Getenv("AWS_ACCESS_KEY_ID"),
		S3SecretKey:       os.Getenv("AWS_SECRET_ACCESS_KEY"),
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		LocalDir:          getenv("UPLOAD_DIR", "uploads"),
	}
	if cfg.MailDriver == "smtp" && (cfg.SMTPHost == "" || cfg.MailFrom == "") {
		log.Fatal("MAIL_DRIVER=smtp requires SMTP_HOST and MAIL_FROM")
	}
	if cfg.UploadDriver == "s3" && cfg.S3Bucket == "" {
		log.Fatal("UPLOAD_DRIVER=s3 requires S3_BUCKET_NAME")
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
