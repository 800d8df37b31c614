package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ducatlabs/nummus/config"
	"github.com/ducatlabs/nummus/core"
	"github.com/ducatlabs/nummus/epoch"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := run(&log); err != nil {
		log.Error().Err(err).Msg("nummus run failed")
		os.Exit(1)
	}
}

func run(log *zerolog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	n := core.NewNetwork(log)
	rng := core.CryptoRNG{}

	for i := uint(0); i < cfg.OrgCount; i++ {
		id := fmt.Sprintf("org-%d", i)
		addresses := make([]core.Address, cfg.AddressesPerOrganization)
		for j := range addresses {
			addresses[j] = core.NewAddress(rng.FieldElement())
		}
		n.Register(core.NewOrganization(id, addresses, 0, log))
	}

	log.Info().Uint("orgs", cfg.OrgCount).Msg("network initialized")

	if err := epoch.Run(n); err != nil {
		return fmt.Errorf("running epoch: %w", err)
	}

	for _, line := range n.DumpNetworkInfo() {
		log.Info().Msg(line)
	}
	return nil
}
