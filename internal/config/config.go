package config

import "os"

type Config struct {
	ProjectID         string
	Region            string
	LogLevel          string
	Port              string
	CacheDir          string
	AdminPasswordHash string
	JWTSecret         string
}

func New() *Config {
	return &Config{
		ProjectID:         os.Getenv("PROJECTID"),
		Region:            os.Getenv("REGION"),
		LogLevel:          os.Getenv("LOGLEVEL"),
		Port:              getPort(os.Getenv("PORT")),
		CacheDir:          getCacheDir(os.Getenv("CACHEDIR")),
		AdminPasswordHash: os.Getenv("ADMINPASSWORDHASH"),
		JWTSecret:         os.Getenv("JWTSECRET"),
	}
}

func getPort(port string) string {
	if port == "" {
		return "8080"
	}
	return port
}

func getCacheDir(dir string) string {
	if dir == "" {
		return "/var/cache/newsletter"
	}
	return dir
}
