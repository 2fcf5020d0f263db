// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command line client of the auth broker.
//
// [AuthClient] composes the broker calls a user makes (register and receive
// a base token, log in, authenticate another client) on top of an
// [adapter.AuthService]. [NewRootCommand] exposes them as cobra commands and
// [App] wires configuration, transport and commands into one process.
package client
