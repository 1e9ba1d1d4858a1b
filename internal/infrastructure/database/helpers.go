package database

import (
	"fmt"
	"time"
)

// PoolStats là snapshot của connection pool, exposed by the /health endpoint
type PoolStats struct {
	TotalConns      int32         `json:"total_conns"`
	AcquiredConns   int32         `json:"acquired_conns"`
	IdleConns       int32         `json:"idle_conns"`
	MaxConns        int32         `json:"max_conns"`
	AcquireCount    int64         `json:"acquire_count"`
	AcquireDuration time.Duration `json:"acquire_duration"`
}

// Stats trả về snapshot của connection pool statistics
func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		TotalConns:      raw.TotalConns(),
		AcquiredConns:   raw.AcquiredConns(),
		IdleConns:       raw.IdleConns(),
		MaxConns:        raw.MaxConns(),
		AcquireCount:    raw.AcquireCount(),
		AcquireDuration: raw.AcquireDuration(),
	}, nil
}
