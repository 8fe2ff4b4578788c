package config

import (
	"github.com/spf13/pflag"
)

type CliConfig struct {
	ConfigFile string
	Debug      bool
	Help       bool
	Version    bool

	flags *pflag.FlagSet
}

// ParseArgs parses the command line (without the program name).
func ParseArgs(args []string) (*CliConfig, error) {
	cli := &CliConfig{}
	fs := pflag.NewFlagSet("rpmdiag", pflag.ContinueOnError)
	fs.StringVar(&cli.ConfigFile, "config", "", "Path to an optional YAML config file")
	fs.BoolVarP(&cli.Debug, "debug", "d", false, "Enable debug mode")
	fs.BoolVarP(&cli.Version, "version", "v", false, "Print version and exit")
	fs.BoolVarP(&cli.Help, "help", "h", false, "Show this help")
	fs.IntP("port", "p", 0, "Port to listen on (overrides PORT)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cli.flags = fs
	return cli, nil
}

// Usage prints the flag defaults to stderr.
func (c *CliConfig) Usage() {
	c.flags.PrintDefaults()
}
