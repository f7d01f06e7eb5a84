// SPDX-License-Identifier: MPL-2.0

// Package tui implements the interactive terminal prompts used by the
// freight commands. Prompts degrade to plain line-oriented stdin reads when
// stdin is not a terminal, so piped and scripted invocations keep working.
package tui
