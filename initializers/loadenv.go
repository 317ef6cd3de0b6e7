package initializers

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// LoadEnv loads variables from .env into the process environment. A missing
// file is not an error; variables already set are kept.
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().Msg("[LoadEnv] No .env file, using process environment")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Msg("[LoadEnv] Env loaded successfully")
	return nil
}
