package config

import "errors"

type AppConfig struct {
	Server ServerConfig
	Log    LogConfig
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{}, err
	}
	if serverCfg.DrawInterval <= 0 {
		return AppConfig{}, errors.New("DRAW_INTERVAL must be positive")
	}
	if serverCfg.MaxSeats < 2 {
		return AppConfig{}, errors.New("MAX_SEATS must allow at least two players")
	}
	if serverCfg.DefaultSeats < 2 || serverCfg.DefaultSeats > serverCfg.MaxSeats {
		return AppConfig{}, errors.New("DEFAULT_SEATS must be between 2 and MAX_SEATS")
	}
	return AppConfig{
		Server: serverCfg,
		Log:    logCfg,
	}, nil
}
