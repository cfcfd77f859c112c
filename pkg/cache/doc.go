// Package cache provides a generic, thread-safe LRU cache. The tenant
// resolution layer builds its TTL'd domain→tenant cache on top of it.
package cache
