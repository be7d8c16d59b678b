package checker

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/dak2/methodray/rbs"
)

// signatureRecords resolves the signature catalog once per Checker, in probe
// order: a valid cache, then a fresh harvest (persisted back to the cache),
// then the built-in fallback core. Cache failures are never fatal.
func (c *Checker) signatureRecords(ctx context.Context) []rbs.Record {
	c.loadOnce.Do(func() {
		c.records = c.loadRecords(ctx)
	})
	return c.records
}

func (c *Checker) loadRecords(ctx context.Context) []rbs.Record {
	rbsVersion := c.upstreamVersion()

	cache, err := c.cacheStore.Load(ctx)
	if err == nil {
		// With no harvester and no pinned version there is nothing to
		// regenerate from, so the cache's own upstream version stands.
		if rbsVersion == "" && c.harvester == nil {
			rbsVersion = cache.RBSVersion
		}
		if cache.Valid(c.version, rbsVersion) {
			return cache.Records
		}
		c.logger.Printf("signature cache is stale (cache %s/%s, tool %s/%s); regenerating",
			cache.Version, cache.RBSVersion, c.version, rbsVersion)
	} else if !errors.Is(err, os.ErrNotExist) {
		c.logger.Printf("signature cache unreadable: %v; regenerating", err)
	}

	records, err := c.harvest()
	if err != nil {
		if !errors.Is(err, rbs.ErrNoHarvester) {
			c.logger.Printf("signature harvest failed: %v", err)
		}
		c.logger.Printf("no signature catalog available; using built-in core (undefined-method findings may be over-reported)")
		return rbs.BuiltinRecords()
	}

	fresh := &rbs.Cache{
		Version:    c.version,
		RBSVersion: rbsVersion,
		Timestamp:  time.Now(),
		Records:    records,
	}
	if err := c.cacheStore.Save(ctx, fresh); err != nil {
		c.logger.Printf("saving signature cache: %v", err)
	}
	return records
}

func (c *Checker) upstreamVersion() string {
	if c.cfg.RBSVersion != "" {
		return c.cfg.RBSVersion
	}
	if c.harvester == nil {
		return ""
	}
	v, err := c.harvester.Version()
	if err != nil {
		c.logger.Printf("querying upstream signature version: %v", err)
		return ""
	}
	return v
}

func (c *Checker) harvest() ([]rbs.Record, error) {
	if c.harvester == nil {
		return nil, rbs.ErrNoHarvester
	}
	return c.harvester.Harvest()
}

// ClearCache deletes the per-user signature cache.
func (c *Checker) ClearCache(ctx context.Context) error {
	return c.cacheStore.Clear(ctx)
}
