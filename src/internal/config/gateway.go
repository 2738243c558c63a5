package config

import (
	"wallet-service/src/internal/gateway/vtu"
	"wallet-service/src/pkg/log"

	"github.com/spf13/viper"
)

func NewVTUClient(viper *viper.Viper, log log.Log) *vtu.Client {
	return vtu.NewClient(viper, log)
}
