package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/davidkroell/edunet"
	"github.com/spf13/cobra"
)

func arpCommands() *cobra.Command {
	arpCmds := &cobra.Command{
		Use:   "arp",
		Short: "show or modify the ARP cache",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list all cache entries",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 1, 2, 4, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\n", "IP ADDR", "HW ADDR")
			for _, entry := range current.stack.Arp().Entries() {
				fmt.Fprintf(w, "%s\t%s\n", entry.ProtocolAddress, entry.HardwareAddress)
			}
			w.Flush()
		},
	}

	resolveCmd := &cobra.Command{
		Use:   "resolve ip",
		Short: "resolve the hardware address of a host",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return ErrTooFewArguments
			}

			ip, err := edunet.ParseIp4Address(args[0])
			if err != nil {
				return err
			}

			mac, found := current.stack.Arp().ResolveAddress(cmd.Context(), ip, current.device)
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no reply\n", ip)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is at %s\n", ip, mac)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set ip mac",
		Short: "add or overwrite a cache entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return ErrTooFewArguments
			}

			ip, err := edunet.ParseIp4Address(args[0])
			if err != nil {
				return err
			}

			mac, err := edunet.ParseMacAddress(args[1])
			if err != nil {
				return err
			}

			current.stack.Arp().SetEntry(ip, mac)
			return nil
		},
	}

	arpCmds.AddCommand(listCmd, resolveCmd, setCmd)
	return arpCmds
}
