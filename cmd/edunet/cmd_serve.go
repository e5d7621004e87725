package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/davidkroell/edunet"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/net/ipv4"
)

func serveCommand(flags *appFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "attach the stack to an interface and open the shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, ifconfig, err := loadConfig(flags)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			stack := edunet.NewNetworkStack(config)

			device, err := edunet.OpenRawDevice(ifconfig, stack.Ethernet().SupportedEtherTypes())
			if err != nil {
				return err
			}

			// requests for the own address are answered from the cache
			stack.Arp().SetEntry(ifconfig.Ip4Address(), device.HardwareAddr())

			p := newPinger()
			stack.Icmp().RegisterNextLayerModule(uint16(ipv4.ICMPTypeEchoReply), p)

			current = &session{ctx: ctx, stack: stack, device: device, pinger: p}

			done := make(chan struct{})
			go func() {
				device.ListenAndServe(ctx, stack.Ethernet())
				log.Info().Msg("edunet closed")
				close(done)
			}()

			log.Info().
				Str("interface", device.Name()).
				Str("hwAddr", device.HardwareAddr().String()).
				Str("ip", ifconfig.Ip4Address().String()).
				Msg("serving")

			runPrompt()

			cancel()
			<-done
			return nil
		},
	}
}
