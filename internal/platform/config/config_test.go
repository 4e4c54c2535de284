package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	Load()

	if AppConfig.APIPort != "3000" {
		t.Errorf("APIPort = %q, want 3000", AppConfig.APIPort)
	}
	if AppConfig.JWTExp != 72*time.Hour {
		t.Errorf("JWTExp = %v, want 72h", AppConfig.JWTExp)
	}
	if AppConfig.DBConnStr == "" {
		t.Error("DBConnStr not assembled")
	}
	if AppConfig.ContactsFile != "contacts.json" {
		t.Errorf("ContactsFile = %q", AppConfig.ContactsFile)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("API_PORT", "8081")
	t.Setenv("DB_NAME", "elibrary_test")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("JWT_EXPIRATION_HOURS", "1")
	t.Setenv("REDIS_DB", "3")

	Load()

	if AppConfig.APIPort != "8081" {
		t.Errorf("APIPort = %q", AppConfig.APIPort)
	}
	if AppConfig.JWTExp != time.Hour {
		t.Errorf("JWTExp = %v", AppConfig.JWTExp)
	}
	if AppConfig.RedisDB != 3 {
		t.Errorf("RedisDB = %d", AppConfig.RedisDB)
	}
	want := "host=localhost port=5432 user=user password=password dbname=elibrary_test sslmode=require"
	if AppConfig.DBConnStr != want {
		t.Errorf("DBConnStr = %q, want %q", AppConfig.DBConnStr, want)
	}
}

func TestGetEnvAsIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_HOURS", "not-a-number")

	Load()

	if AppConfig.JWTExp != 72*time.Hour {
		t.Errorf("JWTExp = %v, want fallback 72h", AppConfig.JWTExp)
	}
}
