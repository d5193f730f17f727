package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// TokenKey is the variable holding the GitHub access token.
const TokenKey = "GITHUB_TOKEN"

// LoadToken returns GITHUB_TOKEN from the dotenv file at path, falling back
// to the process environment. The file is parsed without touching the
// environment: '#' comments and blank lines are skipped and quoted values are
// unwrapped. A missing file is not an error; an empty result means no token.
func LoadToken(path string) (string, error) {
	if path == "" {
		path = ".env"
	}
	vars, err := godotenv.Read(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if tok := vars[TokenKey]; tok != "" {
		return tok, nil
	}
	return os.Getenv(TokenKey), nil
}
