package config

import "path/filepath"

type Config struct {
	DataPath string
}

var globalConfig = &Config{
	DataPath: "/mediaflow-iptv/data/",
}

func GetConfig() *Config {
	return globalConfig
}

func SetConfig(c *Config) {
	globalConfig = c
}

func GetProxyConfigPath() string {
	return filepath.Join(globalConfig.DataPath, "config.json")
}

func GetGenreMapPath() string {
	return filepath.Join(globalConfig.DataPath, "genres.json")
}

func GetLogoMapPath() string {
	return filepath.Join(globalConfig.DataPath, "channel_icons.json")
}

func GetTransportHeadersPath() string {
	return filepath.Join(globalConfig.DataPath, "headers.json")
}

func GetChannelSourcePath() string {
	return filepath.Join(globalConfig.DataPath, "channels_source.json")
}

func GetSnapshotPath() string {
	return filepath.Join(globalConfig.DataPath, "channels_data.json")
}

func GetChannelFiltersPath() string {
	return filepath.Join(globalConfig.DataPath, "channel_filters.json")
}

func GetChannelExcludesPath() string {
	return filepath.Join(globalConfig.DataPath, "channel_remove.json")
}

func GetCategoryKeywordsPath() string {
	return filepath.Join(globalConfig.DataPath, "category_keywords.json")
}
