package seeder

import "job-portal/internal/config"

// Defaults seeds the admin account everywhere and demo data outside production.
func Defaults(cfg config.Config) []Seeder {
	seeders := []Seeder{AdminSeeder{Admin: cfg.Admin}}
	if cfg.App.Environment != "production" {
		seeders = append(seeders, DemoUsersSeeder{}, DemoJobsSeeder{})
	}
	return seeders
}
