package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Skotchmaster/bookshop/internal/db"
	"github.com/Skotchmaster/bookshop/internal/hash"
	"github.com/Skotchmaster/bookshop/internal/models"
	"github.com/Skotchmaster/bookshop/internal/repo"
)

type seedFile struct {
	Categories []string   `yaml:"categories"`
	Admin      *seedAdmin `yaml:"admin"`
}

type seedAdmin struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type seedResult struct {
	Categories int
	Admin      bool
}

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load categories and an admin account from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := loadSeedFile(file)
			if err != nil {
				return err
			}

			gdb, err := openMigrated(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(gdb) }()

			res, err := seed(cmd.Context(), repo.New(gdb), sf)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %d categories, admin created: %t\n", res.Categories, res.Admin)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "seed.yaml", "path to the seed file")
	return cmd
}

func loadSeedFile(path string) (seedFile, error) {
	var sf seedFile

	data, err := os.ReadFile(path)
	if err != nil {
		return sf, fmt.Errorf("reading seed file: %w", err)
	}
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return sf, fmt.Errorf("parsing seed file: %w", err)
	}
	if sf.Admin != nil && (sf.Admin.Username == "" || sf.Admin.Password == "") {
		return sf, errors.New("seed file: admin needs a username and a password")
	}
	return sf, nil
}

// seed is idempotent: rows that already exist are left untouched.
func seed(ctx context.Context, r *repo.GormRepo, sf seedFile) (seedResult, error) {
	var res seedResult

	for _, name := range sf.Categories {
		err := r.CreateCategoryIfNotExists(ctx, &models.Category{Name: name})
		switch {
		case err == nil:
			res.Categories++
		case errors.Is(err, repo.ErrAlreadyExists):
		default:
			return res, fmt.Errorf("seeding category %q: %w", name, err)
		}
	}

	if sf.Admin == nil {
		return res, nil
	}

	pwHash, err := hash.HashPassword(sf.Admin.Password)
	if err != nil {
		return res, fmt.Errorf("hashing admin password: %w", err)
	}
	admin := models.Customer{
		Username:     sf.Admin.Username,
		Email:        sf.Admin.Email,
		PasswordHash: pwHash,
		Role:         models.RoleAdmin,
	}
	err = r.CreateCustomerIfNotExists(ctx, &admin)
	switch {
	case err == nil:
		res.Admin = true
	case errors.Is(err, repo.ErrAlreadyExists):
	default:
		return res, fmt.Errorf("seeding admin: %w", err)
	}
	return res, nil
}
