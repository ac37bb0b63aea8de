// Package pgdb implements the persistence layer on Postgres via GORM.
// Repositories enforce the soft-delete invariant: every read filters
// is_deleted, so a deleted row is invisible everywhere without being
// physically removed.
package pgdb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	debuglog "github.com/luxaris/luxaris/internal/log"
)

const connectAttempts = 10

// Client wraps the GORM handle and exposes typed repositories.
type Client struct {
	db *gorm.DB
}

// NewClient connects to Postgres, retrying while the database comes up.
func NewClient(dsn string) (*Client, error) {
	var db *gorm.DB
	var err error
	for i := 0; i < connectAttempts; i++ {
		db, err = gorm.Open(postgres.Open(dsn))
		if err == nil {
			break
		}
		debuglog.Basicf("postgres connection attempt %d failed: %v", i+1, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, errors.Wrap(err, "connect postgres")
	}
	return &Client{db: db}, nil
}

// NewClientWithDB wraps an existing GORM handle, primarily for tests.
func NewClientWithDB(db *gorm.DB) *Client {
	return &Client{db: db}
}

// Migrate creates or updates the subsystem's tables.
func (c *Client) Migrate() error {
	return c.db.AutoMigrate(
		&Session{},
		&Suggestion{},
		&Template{},
		&Post{},
		&Variant{},
		&Channel{},
		&Event{},
	)
}

// Ping verifies the connection.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.db == nil {
		return errors.New("database client not initialized")
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (c *Client) Sessions() *SessionRepository       { return &SessionRepository{db: c.db} }
func (c *Client) Suggestions() *SuggestionRepository { return &SuggestionRepository{db: c.db} }
func (c *Client) Templates() *TemplateRepository     { return &TemplateRepository{db: c.db} }
func (c *Client) Posts() *PostRepository             { return &PostRepository{db: c.db} }
func (c *Client) Variants() *VariantRepository       { return &VariantRepository{db: c.db} }
func (c *Client) Channels() *ChannelRepository       { return &ChannelRepository{db: c.db} }
func (c *Client) Events() *EventRepository           { return &EventRepository{db: c.db} }
