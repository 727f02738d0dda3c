// Package persistence serializes dataset catalogs to durable storage and
// reads them back. Two stores are provided: JSON lines files, one per
// (family, split) pair, and a single SQLite database.
package persistence

import (
	"context"
	"sort"

	"github.com/kevinmastascusa/symbolic-math-ai/pkg/datasets"
	"github.com/kevinmastascusa/symbolic-math-ai/pkg/logging"
)

// Store persists normalized dataset tables. Both implementations satisfy
// the round-trip law: LoadTable after SaveTable returns a table equal
// field-for-field, canonical and extra fields included. The one declared
// lossy conversion: numeric extras come back as float64 (JSON numbers),
// and reader skip accounting is load-time metadata that is not persisted.
type Store interface {
	SaveTable(ctx context.Context, t *datasets.Table) error
	LoadTable(ctx context.Context, family datasets.Family, split datasets.Split) (*datasets.Table, error)
	Close() error
}

// SaveCatalog writes every table in the catalog through the store, in
// stable key order.
func SaveCatalog(ctx context.Context, s Store, c *datasets.Catalog) error {
	keys := make([]string, 0, len(c.Tables))
	for k := range c.Tables {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	logger := logging.GetLogger()
	for _, key := range keys {
		table := c.Tables[key]
		if err := s.SaveTable(ctx, table); err != nil {
			return err
		}
		logger.Info(ctx, "saved %s (%d records)", key, len(table.Problems))
	}
	return nil
}
