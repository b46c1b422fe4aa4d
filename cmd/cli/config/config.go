package config

import (
	"os"
	"path/filepath"
)

const (
	defaultAPIURL = "http://localhost:8080"
	tokenFileName = ".inventario_token"
)

// APIURL returns the base URL for the Inventario API. It can be overridden
// with the INVENTARIO_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("INVENTARIO_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

//
// ==========================
// Token Storage
// ==========================
//

func tokenPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, tokenFileName)
}

func SaveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0600)
}

func LoadToken() (string, error) {
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func RemoveToken() error {
	if _, err := os.Stat(tokenPath()); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(tokenPath())
}
