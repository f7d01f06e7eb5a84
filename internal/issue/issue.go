// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ManifestNotFoundId Id = iota + 1
	ManifestParseErrorId
	GeneratorNotFoundId
	DocsOutputMissingId
	APIKeyMissingId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No freight.toml found!

Publishing requires a freight.toml manifest in the current directory.

## Things you can try:
- Create a starter manifest:
~~~
$ freight init
~~~

- Or run freight from your package root:
~~~
$ cd /path/to/your/package
$ freight publish
~~~

## Example freight.toml structure:
~~~toml
name = "my_package"
version = "0.1.0"
description = "What this package does"

[package]
files = ["src/**", "README*", "LICENSE*"]
licenses = ["Apache-2.0"]

[dependencies]
tabular = "~> 1.4"
~~~`,
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse freight.toml!

Your manifest contains syntax errors or invalid values.

## Common issues:
- Invalid TOML syntax (missing quotes, brackets, etc.)
- A version that is not valid semver (e.g. "1.0" instead of "1.0.0")
- A package name with uppercase letters or dashes
- A dependency entry that is neither a string nor a table

## Things you can try:
- Check the error message above for the specific key
- Validate the version with: major.minor.patch
- Run with verbose mode for more details:
~~~
$ freight --verbose publish
~~~

## Example of a valid dependency section:
~~~toml
[dependencies]
tabular = "~> 1.4"
quantum = { version = ">= 2.0.0 < 3.0.0", optional = true }
~~~`,
	}

	generatorNotFoundIssue = &Issue{
		id: GeneratorNotFoundId,
		mdMsg: `
# Docs generator not found!

Publishing documentation requires a docs generator on your PATH.

## Things you can try:
- Install the default generator:
~~~
$ freight-docs --version
~~~
  If this fails, install it from https://freightpkg.dev/docs/generator

- Or configure a custom generator in freight.toml:
~~~toml
[docs]
command = "mkdocs build --site-dir doc"
~~~

- Publish only the package for now:
~~~
$ freight publish package
~~~`,
	}

	docsOutputMissingIssue = &Issue{
		id: DocsOutputMissingId,
		mdMsg: `
# Docs output not found!

The docs generator ran, but no usable output directory was found.

## What we look for (in order):
1. ` + "`doc/`" + ` containing an index.html
2. ` + "`docs/`" + ` containing an index.html

## Things you can try:
- Check where your generator writes its output
- Point the generator at the expected directory:
~~~toml
[docs]
command = "mkdocs build --site-dir doc"
~~~

- Verify an index.html exists at the output root`,
	}

	apiKeyMissingIssue = &Issue{
		id: APIKeyMissingId,
		mdMsg: `
# No registry API key configured!

Publishing and reverting require an API key for the registry.

## Things you can try:
- Set the key in your environment:
~~~
$ export FREIGHT_API_KEY=fk_...
~~~

- Or store it in your config file:
~~~cue
registry: {
    api_key: "fk_..."
}
~~~

Keys are issued at https://freightpkg.dev/settings/keys`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the freight configuration file.

## Configuration file locations:
- Linux: ~/.config/freight/config.cue
- macOS: ~/Library/Application Support/freight/config.cue
- Windows: %APPDATA%\freight\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ freight config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/freight/config.cue
~~~

## Example configuration:
~~~cue
registry: {
    url: "https://registry.freightpkg.dev"
}

ui: {
    progress: true
    verbose: false
}
~~~`,
	}

	issues = map[Id]*Issue{
		manifestNotFoundIssue.Id():   manifestNotFoundIssue,
		manifestParseErrorIssue.Id(): manifestParseErrorIssue,
		generatorNotFoundIssue.Id():  generatorNotFoundIssue,
		docsOutputMissingIssue.Id():  docsOutputMissingIssue,
		apiKeyMissingIssue.Id():      apiKeyMissingIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
