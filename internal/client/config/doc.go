// Package config handles configuration for the deskmate client, including
// defaults, an optional JSON file overlay, and command-line flags.
//
// Precedence, lowest to highest: defaults, JSON file (-c/-config), flags.
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "15s" or plain numbers of seconds.
package config
