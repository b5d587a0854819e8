// Command rdkit runs RDKit operations from the shell.
package main

import (
	"os"

	"github.com/turtacn/rdkit-go/internal/application/molecule"
	"github.com/turtacn/rdkit-go/internal/bootstrap"
	"github.com/turtacn/rdkit-go/internal/config"
	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/rdkit-go/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func openService(cfg *config.Config, logger logging.Logger) (molecule.Service, func(), error) {
	infra, err := bootstrap.Init(cfg, logger, nil)
	if err != nil {
		return nil, nil, err
	}
	return infra.Service, infra.Close, nil
}

func main() {
	if err := cli.Execute(openService); err != nil {
		os.Exit(1)
	}
}

//Personal.AI order the ending
