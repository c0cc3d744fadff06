// Package config provides configuration management for topicscan.
//
// Configuration comes from three places, assembled once at startup:
//   - CLI flags, which populate the Config struct (highest priority)
//   - An optional .topicscan YAML file in the current or home directory
//   - Environment variables (optionally via a .env file) for credentials
//
// Design decision: No component reads environment state directly. Credentials
// are loaded exactly once into a Credentials struct and passed into component
// constructors. This keeps credential resolution in one place and makes every
// component testable without environment manipulation.
package config
