package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Configuration variables. These aren't user facing but useful for tuning the
// details of engine performance.
var (
	MaxOpenConns = getEnvInt("MAX_OPEN_CONNS", 20)
	MaxIdleConns = getEnvInt("MAX_IDLE_CONNS", 20)
	MaxAPIConns  = getEnvInt("API_MAX_CONNS", 256)
	SubmitRate   = rate.Limit(getEnvInt("SUBMIT_RPS", 5))
	SubmitBurst  = getEnvInt("SUBMIT_BURST", 10)
	StreamBuffer = getEnvInt("STREAM_BUFFER", 16)
	SQLTimeout   = getEnvDuration("SQL_TIMEOUT", 3*time.Second)
)

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return defaults
	}
	return int(intVal)
}

func getEnvDuration(varName string, defaults time.Duration) time.Duration {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaults
	}
	return d
}
