package main

import (
	"fmt"
	"os"

	"chore-rooms/internal/config"
	"chore-rooms/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env Environment
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment) *RepositoryFactory {
	return &RepositoryFactory{env: env}
}

// CreateRepository creates a repository instance based on the current environment
func (rf *RepositoryFactory) CreateRepository(cfg *config.Config) (sqlite.Repository, error) {
	switch rf.env {
	case Development:
		return rf.createDevelopmentRepository(cfg)
	case Testing:
		return rf.createTestingRepository()
	default:
		return rf.createProductionRepository(cfg) // Default to production
	}
}

// createDevelopmentRepository uses a database file in the working directory
func (rf *RepositoryFactory) createDevelopmentRepository(cfg *config.Config) (sqlite.Repository, error) {
	repo, err := sqlite.NewWithOptions(cfg.Database.Filename, sqlite.Options{
		QueryTimeout: cfg.GetQueryTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize development database: %w", err)
	}
	return repo, nil
}

// createTestingRepository uses an in-memory database
func (rf *RepositoryFactory) createTestingRepository() (sqlite.Repository, error) {
	return config.CreateTestRepository()
}

// createProductionRepository uses the configured database location
func (rf *RepositoryFactory) createProductionRepository(cfg *config.Config) (sqlite.Repository, error) {
	return config.CreateRepository(cfg)
}

// getEnvironment determines the current environment
func getEnvironment() Environment {
	switch os.Getenv("ROOMS_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	case "production":
		return Production
	default:
		// Default to production for safety
		return Production
	}
}
