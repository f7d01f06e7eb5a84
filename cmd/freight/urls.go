// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"
)

// webHost derives the registry's web host from its API host. The production
// API lives on a "registry." subdomain of the web site; hosts without that
// prefix (self-hosted registries, test servers) are used as-is.
func webHost(apiHost string) string {
	return strings.TrimPrefix(apiHost, "registry.")
}

// docsHost returns the host serving rendered documentation.
func docsHost(apiHost string) string {
	return "docs." + webHost(apiHost)
}

// packageURL returns the package page shown after a successful publish.
func packageURL(apiHost, name, version string) string {
	return fmt.Sprintf("https://%s/pkg/%s/%s", webHost(apiHost), name, version)
}

// docsURL returns the hosted documentation page for one version.
func docsURL(apiHost, name, version string) string {
	return fmt.Sprintf("https://%s/%s/%s", docsHost(apiHost), name, version)
}

// canonicalDocsURL returns the version-independent documentation URL passed
// to the generator so every build links search engines at the latest release.
func canonicalDocsURL(apiHost, name string) string {
	return fmt.Sprintf("https://%s/%s", docsHost(apiHost), name)
}

// conductURL returns the registry's code-of-conduct notice shown in the
// publish summary.
func conductURL(apiHost string) string {
	return fmt.Sprintf("https://%s/policies/conduct", webHost(apiHost))
}
