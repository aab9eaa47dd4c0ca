// Package cache provides the shared keyed cache that holds response envelopes.
//
// A Store maps request keys to shared values. Each store is built with an
// Expiry, which it asks exactly once per insertion how long the value may
// live; a Policy bounds that TTL. MemoryCache keeps entries in process,
// RedisCache shares them across processes, and Janitor sweeps expired
// in-memory entries on a cron schedule. DefaultKeyer derives deterministic
// keys from an endpoint and its request parameters.
package cache
