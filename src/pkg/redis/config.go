package redis

import (
	"strings"
)

type CfgRedis struct {
	UseCluster           bool
	EnableTLS            bool
	RedisHost            string
	RedisPort            string
	RedisPassword        string
	RedisDB              int
	RedisClusterNode     string
	RedisClusterPassword string
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	EnableTLS bool
}

type RedisClusterConfig struct {
	Hosts     []string
	Username  string
	Password  string
	EnableTLS bool
}

var (
	useCluster             bool
	RedisConfigData        RedisConfig
	RedisClusterConfigData RedisClusterConfig
)

func LoadConfig(config *CfgRedis) {
	useCluster = config.UseCluster

	RedisConfigData = RedisConfig{
		Host:      config.RedisHost,
		Port:      config.RedisPort,
		Password:  config.RedisPassword,
		DB:        config.RedisDB,
		EnableTLS: config.EnableTLS,
	}

	RedisClusterConfigData = RedisClusterConfig{
		Hosts:     strings.Split(config.RedisClusterNode, ";"),
		Password:  config.RedisClusterPassword,
		EnableTLS: config.EnableTLS,
	}
}
