package config

import "os"

type Config struct {
	Addr        string
	DBPath      string
	JWTSecret   string
	UploadDir   string
	EmailDomain string
}

// Load reads configuration from the environment with sensible defaults.
func Load() Config {
	return Config{
		Addr:        getenv("ADDR", ":8088"),
		DBPath:      getenv("DB_PATH", "./campusnet.db"),
		JWTSecret:   getenv("JWT_SECRET", "change-me-in-prod"),
		UploadDir:   getenv("UPLOAD_DIR", "uploads"),
		EmailDomain: getenv("ALLOWED_EMAIL_DOMAIN", "@aimsr.edu"),
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
