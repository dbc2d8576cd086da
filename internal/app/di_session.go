package app

import (
	"context"
	"fmt"

	"github.com/allisson/storefront/internal/database"
	sessionRepository "github.com/allisson/storefront/internal/session/repository"
	sessionService "github.com/allisson/storefront/internal/session/service"
	sessionUseCase "github.com/allisson/storefront/internal/session/usecase"
)

// KVStore returns the durable session backend selected by SESSION_STORE_DRIVER.
func (c *Container) KVStore() (sessionRepository.Store, error) {
	var err error
	c.kvStoreInit.Do(func() {
		c.kvStore, err = c.initKVStore()
		if err != nil {
			c.setInitError("kvStore", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("kvStore"); storedErr != nil {
		return nil, storedErr
	}
	return c.kvStore, nil
}

// Sealer returns the sealer used to protect persisted session values.
func (c *Container) Sealer() (sessionService.Sealer, error) {
	var err error
	c.sealerInit.Do(func() {
		c.sealer, err = c.initSealer()
		if err != nil {
			c.setInitError("sealer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("sealer"); storedErr != nil {
		return nil, storedErr
	}
	return c.sealer, nil
}

// SessionStore returns the session store shared by the transport and the auth flows.
func (c *Container) SessionStore() (sessionUseCase.SessionStore, error) {
	var err error
	c.sessionStoreInit.Do(func() {
		c.sessionStore, err = c.initSessionStore()
		if err != nil {
			c.setInitError("sessionStore", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("sessionStore"); storedErr != nil {
		return nil, storedErr
	}
	return c.sessionStore, nil
}

// SessionDatabaseConfig returns the SQL settings of the postgres and mysql session backends.
func (c *Container) SessionDatabaseConfig() database.Config {
	return database.Config{
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	}
}

func (c *Container) initKVStore() (sessionRepository.Store, error) {
	store, err := sessionRepository.Open(context.Background(), sessionRepository.Options{
		Driver:  c.config.SessionStoreDriver,
		Path:    c.config.SessionStorePath,
		Profile: c.config.SessionProfile,
		DB:      c.SessionDatabaseConfig(),
		Redis: sessionRepository.RedisConfig{
			Addr:     c.config.RedisAddr,
			Password: c.config.RedisPassword,
			DB:       c.config.RedisDB,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %q session store: %w", c.config.SessionStoreDriver, err)
	}
	return store, nil
}

func (c *Container) initSealer() (sessionService.Sealer, error) {
	sealer, err := sessionService.OpenSealer(context.Background(), c.config.SessionSealKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open session sealer: %w", err)
	}
	return sealer, nil
}

func (c *Container) initSessionStore() (sessionUseCase.SessionStore, error) {
	kvStore, err := c.KVStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get kv store for session store: %w", err)
	}

	sealer, err := c.Sealer()
	if err != nil {
		return nil, fmt.Errorf("failed to get sealer for session store: %w", err)
	}

	return sessionUseCase.NewSessionStore(kvStore, sealer, c.Logger()), nil
}
