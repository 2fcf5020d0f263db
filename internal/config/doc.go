// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the broker and its command-line client.
//
// Server configuration is assembled from multiple sources in the following
// priority order (earlier sources win for non-zero fields):
//  1. Command-line flags
//  2. Environment variables
//  3. JSON config file
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the client, which reads environment variables and
// the JSON file only since its command line belongs to cobra.
package config
