package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hookledger/hookledger/config"
	"github.com/hookledger/hookledger/integration"
	integrationpg "github.com/hookledger/hookledger/integration/postgres"
	"github.com/hookledger/hookledger/provisioning"
)

/* seed creates the integrations declared in the integrations YAML file.
 * Intended for operators provisioning inbound webhook bindings.
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	loader := provisioning.NewLoader()
	if err := loader.Load(cfg.SeedFile); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	ctx := context.Background()

	repo, err := integrationpg.NewRepository(cfg.PostgresDSN)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer repo.Close(ctx)

	if err := repo.CreateTable(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	service := integration.NewService(repo, nil)

	for _, seed := range loader.List() {
		in, err := service.Create(ctx, seed.ProjectID, seed.Type, seed.ProviderData)
		if err != nil {
			fmt.Printf("skipping %s/%s: %v\n", seed.ProjectID, seed.Type, err)
			continue
		}
		fmt.Printf("created %s integration %s for project %s\n", in.Type, in.ID, in.ProjectID)
	}
}
