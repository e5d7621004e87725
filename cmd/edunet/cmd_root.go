package main

import (
	"context"

	"github.com/davidkroell/edunet"
	"github.com/juju/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var ErrTooFewArguments = errors.New("edunet: too few arguments")

// session is the state shared by the shell commands while serve runs.
type session struct {
	ctx    context.Context
	stack  *edunet.NetworkStack
	device edunet.Device
	pinger *pinger
}

var current *session

type appFlags struct {
	iface      string
	configPath string
	logLevel   string
}

// appCommand is the command line entry point. shellCommand serves the interactive prompt.
func appCommand() *cobra.Command {
	var flags appFlags

	rootCmd := &cobra.Command{
		Use:               "edunet",
		Short:             "a user space Ethernet, ARP and IPv4 stack",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(flags.logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.iface, "interface", "i", "", "interface to serve, "+edunet.InterfaceConfigFormatString)
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", zerolog.Disabled.String(), "log level")

	rootCmd.AddCommand(serveCommand(&flags))
	rootCmd.AddCommand(versionCommand())

	return rootCmd
}

func shellCommand() *cobra.Command {
	shellCmd := &cobra.Command{
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:      true,
	}

	shellCmd.AddCommand(arpCommands())
	shellCmd.AddCommand(pingCommand())
	shellCmd.AddCommand(logCommand())
	shellCmd.AddCommand(versionCommand())

	return shellCmd
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return errors.Annotatef(err, "invalid log level %q", level)
	}

	// module loggers are derived from log.Logger, the global level applies to all of them
	log.Logger = log.Output(zerolog.NewConsoleWriter())
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// loadConfig merges the config file and the command line flags.
func loadConfig(flags *appFlags) (edunet.Config, *edunet.InterfaceConfig, error) {
	config := edunet.DefaultConfig()

	if flags.configPath != "" {
		var err error
		if config, err = edunet.LoadConfig(flags.configPath); err != nil {
			return config, nil, err
		}
	}

	if flags.iface != "" {
		config.Interface = flags.iface
	}

	ifconfig, err := edunet.ParseInterfaceConfig(config.Interface)
	if err != nil {
		return config, nil, errors.Annotatef(err, "interface %q, expected %s", config.Interface, edunet.InterfaceConfigFormatString)
	}

	if config.Arp.SenderAddress == edunet.UnspecifiedIp4Address {
		config.Arp.SenderAddress = ifconfig.Ip4Address()
	}

	return config, ifconfig, nil
}
