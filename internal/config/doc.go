// Package config defines runtime settings for the alarm-clock server and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the HTTP listen address, upload limits, the
// simulated conversion/search delays and an optional catalog override.
// Validate fills defaults for absent fields, so a missing or partial
// settings file still yields a runnable configuration.
package config
