package internal

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Host       string `env:"HOST,default=0.0.0.0"`
	Port       int    `env:"PORT,default=3000"`
	SQLitePath string `env:"SQLITE_PATH,default=./chat.db"`
	LogLevel   string `env:"LOG_LEVEL,default=INFO"`

	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`

	// Comma separated list of words masked by the moderator. Empty disables censoring.
	CensoredWords   string `env:"CENSORED_WORDS"`
	CharReplacement string `env:"CHARACTER_REPLACEMENT,default=*"`

	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=256"`
	MaxMessageSize       int64         `env:"MAX_MESSAGE_SIZE,default=4096"`
	PingInterval         time.Duration `env:"PING_INTERVAL,default=30s"`
	ReadTimeout          time.Duration `env:"READ_TIMEOUT,default=60s"`
	WriteTimeout         time.Duration `env:"WRITE_TIMEOUT,default=10s"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// CharacterRune validates that the replacement setting is a single character.
func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf("CHARACTER_REPLACEMENT must be a single character, got %q", str)
	}
	return r[0], nil
}

func (c Config) CensoredWordList() []string {
	if c.CensoredWords == "" {
		return nil
	}
	var words []string
	for _, w := range strings.Split(c.CensoredWords, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}
