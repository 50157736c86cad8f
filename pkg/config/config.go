// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and aznvme contributors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type GlobalConfig struct {
	NatsURL        string `mapstructure:"nats_url"`
	NatsSubject    string `mapstructure:"nats_subject"`
	PushgatewayURL string `mapstructure:"pushgateway_url"`
	NodeName       string `mapstructure:"node_name"`
	InstanceID     string `mapstructure:"instance_id"`
}

type Config struct {
	Global GlobalConfig `mapstructure:"global"`
}

func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &config, nil
}
