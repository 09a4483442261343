// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses the command line for the bluedash binary.
//
// The surface is deliberately small: bluedash is a TUI, so nearly all
// interaction happens after launch. Flags exist only for things that must
// be known before the program starts, like the password-reset token from
// an emailed deep link.
package cli

import (
	"fmt"
	"strings"
)

// Args holds the parsed command line.
type Args struct {
	// ResetToken, when set, launches directly into the password-reset
	// screen ("bluedash --reset-token <token>").
	ResetToken string

	// BaseURL overrides the configured API base URL.
	BaseURL string

	// ConfigPath overrides the default config file location.
	ConfigPath string

	// Version prints version information and exits.
	Version bool

	// Help prints usage and exits.
	Help bool
}

// Parse reads raw arguments (without the program name). Flags accept both
// "--flag value" and "--flag=value" forms.
func Parse(raw []string) (Args, error) {
	var args Args

	i := 0
	for i < len(raw) {
		arg := raw[i]
		if !strings.HasPrefix(arg, "-") {
			return args, fmt.Errorf("unexpected argument %q", arg)
		}

		name := strings.TrimLeft(arg, "-")
		value := ""
		hasValue := false
		if eq := strings.Index(name, "="); eq >= 0 {
			value = name[eq+1:]
			name = name[:eq]
			hasValue = true
		}

		// takeValue consumes the inline or following token as the
		// flag's value.
		takeValue := func() (string, error) {
			if hasValue {
				return value, nil
			}
			if i+1 >= len(raw) {
				return "", fmt.Errorf("--%s requires a value", name)
			}
			i++
			return raw[i], nil
		}

		switch name {
		case "reset-token":
			v, err := takeValue()
			if err != nil {
				return args, err
			}
			args.ResetToken = v
		case "base-url":
			v, err := takeValue()
			if err != nil {
				return args, err
			}
			args.BaseURL = v
		case "config":
			v, err := takeValue()
			if err != nil {
				return args, err
			}
			args.ConfigPath = v
		case "version", "v":
			args.Version = true
		case "help", "h":
			args.Help = true
		default:
			return args, fmt.Errorf("unknown flag %q", arg)
		}
		i++
	}

	return args, nil
}

// Usage returns the help text.
func Usage() string {
	return `bluedash - Expert AI chat in your terminal

Usage:
  bluedash [flags]

Flags:
  --reset-token <token>   Open the password-reset screen for an emailed token
  --base-url <url>        Override the API base URL
  --config <path>         Use an alternate config file
  --version, -v           Print version and exit
  --help, -h              Show this help
`
}
