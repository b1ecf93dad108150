package main

// Flag names for viper binding
const (
	FlagConfig         = "config"
	FlagRows           = "rows"
	FlagCols           = "cols"
	FlagMines          = "mines"
	FlagPlacement      = "placement"
	FlagSeed           = "seed"
	FlagAddr           = "addr"
	FlagDevelopment    = "development"
	FlagAllowedOrigins = "allowed-origins"
	FlagLogLevel       = "log-level"
	FlagLogFile        = "log-file"
)

// flag name -> config key
var flagKeys = map[string]string{
	FlagConfig:         "config",
	FlagRows:           "rows",
	FlagCols:           "cols",
	FlagMines:          "mines",
	FlagPlacement:      "placement",
	FlagSeed:           "seed",
	FlagAddr:           "addr",
	FlagDevelopment:    "development",
	FlagAllowedOrigins: "allowed_origins",
	FlagLogLevel:       "log.level",
	FlagLogFile:        "log.file",
}
