package config

import "time"

// Config holds the application configuration
type Config struct {
	Node     NodeConfig     `mapstructure:"node"`
	Database DatabaseConfig `mapstructure:"database"`
	InfluxDB InfluxDBConfig `mapstructure:"influxdb"`
	Spool    SpoolConfig    `mapstructure:"spool"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// NodeConfig points at the state gateway serving decoded storage reads.
type NodeConfig struct {
	RPC RPCConfig `mapstructure:"rpc"`
}

type RPCConfig struct {
	URLs           []string      `mapstructure:"urls"`
	MaxConnections int           `mapstructure:"maxConnections"`
	ChunkSize      int           `mapstructure:"chunkSize"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type DatabaseConfig struct {
	Engine string       `mapstructure:"engine"`
	Sqlite SqliteConfig `mapstructure:"sqlite"`
	Pgsql  PgsqlConfig  `mapstructure:"pgsql"`
}

type SqliteConfig struct {
	File         string `mapstructure:"file"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
}

type PgsqlConfig struct {
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
}

type InfluxDBConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	Token   string `mapstructure:"token"`
	Org     string `mapstructure:"org"`
	Bucket  string `mapstructure:"bucket"`
}

// SpoolConfig is the directory the event decoder drops batch files into.
type SpoolConfig struct {
	Dir     string        `mapstructure:"dir"`
	DoneDir string        `mapstructure:"doneDir"`
	Pattern string        `mapstructure:"pattern"`
	Poll    time.Duration `mapstructure:"poll"`
}

type CacheConfig struct {
	// Retain is the number of clean entities kept between batches, 0 disables it.
	Retain int `mapstructure:"retain"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}
