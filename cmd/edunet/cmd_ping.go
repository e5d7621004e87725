package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/davidkroell/edunet"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const pingTimeout = 2 * time.Second

// pinger matches echo replies to the requests it sent.
type pinger struct {
	id int

	mu      sync.Mutex
	waiting map[int]chan time.Time
}

func newPinger() *pinger {
	return &pinger{
		id:      os.Getpid() & 0xffff,
		waiting: map[int]chan time.Time{},
	}
}

// ReadPacket is registered for ICMP echo replies.
func (p *pinger) ReadPacket(stream *bytes.Reader, _ edunet.Device) {
	echo, err := edunet.ReadEcho(stream)
	if err != nil {
		log.Warn().Err(err).Msg("discarding malformed echo reply")
		return
	}

	if echo.ID != p.id {
		return
	}

	p.mu.Lock()
	ch, ok := p.waiting[echo.Seq]
	delete(p.waiting, echo.Seq)
	p.mu.Unlock()

	if ok {
		ch <- time.Now()
	}
}

func (p *pinger) RegisterNextLayerModule(uint16, edunet.Module) {}

// ping sends one echo request and waits for the matching reply.
func (p *pinger) ping(ctx context.Context, icmpModule *edunet.IcmpModule, dst edunet.Ip4Address, seq int, device edunet.Device) (time.Duration, error) {
	ch := make(chan time.Time, 1)
	p.mu.Lock()
	p.waiting[seq] = ch
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		delete(p.waiting, seq)
		p.mu.Unlock()
	}()

	start := time.Now()
	if err := icmpModule.SendEchoRequest(ctx, dst, p.id, seq, []byte("edunet"), device); err != nil {
		return 0, err
	}

	select {
	case received := <-ch:
		return received.Sub(start), nil
	case <-time.After(pingTimeout):
		return 0, context.DeadlineExceeded
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

var _ edunet.Module = (*pinger)(nil)

func pingCommand() *cobra.Command {
	var numPings uint16
	cmd := &cobra.Command{
		Use:   "ping host [-n <num pings>]",
		Short: "ping a host",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return ErrTooFewArguments
			}

			ip, err := edunet.ParseIp4Address(args[0])
			if err != nil {
				return err
			}

			for seq := 1; seq <= int(numPings); seq++ {
				rtt, err := current.pinger.ping(cmd.Context(), current.stack.Icmp(), ip, seq, current.device)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: icmp_seq=%d %v\n", ip, seq, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reply from %s: icmp_seq=%d time=%s\n", ip, seq, rtt)
			}
			return nil
		},
	}

	cmd.Flags().Uint16VarP(&numPings, "number", "n", 4, "number of pings")
	return cmd
}
