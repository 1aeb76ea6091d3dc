// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware provides HTTP request handling functionality for Inkwell.

Route definitions are centralized in the DefineRoutes function, which sets up all paths
and their corresponding handlers on the router.
*/
package middleware
