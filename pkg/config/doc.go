// Package config loads typed configuration structs from environment
// variables (with optional .env autoloading), memoizing each configuration
// type for the process lifetime.
package config
