package config

import "os"

func IsDebug() bool {
	return os.Getenv("LORO_DEBUG") == "1"
}
