// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"

	"github.com/charmbracelet/glamour"
)

// Id identifies a known issue in the catalog.
type Id int

const (
	EngineNotFoundId Id = iota + 1
	ManifestNotFoundId
	ManifestInvalidId
	AppFileNotFoundId
	InterpreterUnknownId
	BuildFailedId
	SnapshotNotFoundId
)

// MarkdownMsg is markdown text that will be rendered to the terminal.
type MarkdownMsg string

// HttpLink is a documentation or reference URL attached to an issue.
type HttpLink string

// Issue is a known failure mode with rendered guidance for the user.
type Issue struct {
	id       Id          // ID used to look up the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue's markdown guidance with the given glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.extLinks {
			extraMd += "- " + string(link) + "\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	engineNotFoundIssue = &Issue{
		id: EngineNotFoundId,
		mdMsg: `
# No container engine found

appcrate needs Docker or Podman on the PATH to build and run snapshots.

## Things you can try
- Install Podman:
~~~
$ sudo apt install podman
~~~
- Or install Docker and make sure the daemon is running:
~~~
$ docker version
~~~
- If an engine is installed but not detected, set it explicitly:
~~~
$ appcrate build --engine docker ...
~~~`,
		extLinks: []HttpLink{
			"https://podman.io/docs/installation",
			"https://docs.docker.com/engine/install/",
		},
	}

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No dependency manifest found

appcrate expects a manifest file (one package specifier per line) next to the
application file.

## Things you can try
- Scaffold one:
~~~
$ appcrate init yourapp.py
~~~
- Or point at an existing manifest:
~~~
$ appcrate build yourapp.py --manifest path/to/requirements.txt
~~~`,
	}

	manifestInvalidIssue = &Issue{
		id: ManifestInvalidId,
		mdMsg: `
# Dependency manifest could not be parsed

Manifest files hold one package specifier per line: a package name optionally
followed by a version constraint (` + "`==`, `>=`, `<=`, `~=`, `!=`, `<`, `>`" + `).

## Things you can try
- Check the line named in the error for typos
- Use ` + "`#`" + ` for comments; blank lines are ignored
- Remove duplicate package entries`,
	}

	appFileNotFoundIssue = &Issue{
		id: AppFileNotFoundId,
		mdMsg: `
# Application file not found

The build aborts before the copy step when the named application file is
missing from the build inputs.

## Things you can try
- Check the application file path passed on the command line
- Make sure the file is a regular file, not a directory`,
	}

	interpreterUnknownIssue = &Issue{
		id: InterpreterUnknownId,
		mdMsg: `
# Cannot determine the interpreter

The application file has no shebang line and its extension does not map to a
known runtime flavor.

## Things you can try
- Add a shebang line, e.g. ` + "`#!/usr/bin/env python3`" + `
- Rename the file with a recognized extension (.py, .js, .rb, .sh)
- Set the interpreter explicitly:
~~~
$ appcrate build yourapp --interpreter python3
~~~`,
	}

	snapshotNotFoundIssue = &Issue{
		id: SnapshotNotFoundId,
		mdMsg: `
# Snapshot not built yet

No snapshot image exists for this application with the current inputs. Any
change to the app file, manifest, or base image produces a new snapshot.

## Things you can try
- Build it first:
~~~
$ appcrate build yourapp.py
~~~
- Or build and run in one step:
~~~
$ appcrate up yourapp.py
~~~`,
	}

	buildFailedIssue = &Issue{
		id: BuildFailedId,
		mdMsg: `
# Snapshot build failed

The image build aborted. No usable snapshot was produced; partial installs are
never kept.

## Things you can try
- Re-run with ` + "`--verbose`" + ` to see the full engine output
- Check that every package in the manifest resolves for the chosen base image
- Pull the base image manually to rule out network issues`,
	}
)

// Lookup returns the catalog issue for the given id, or nil if unknown.
func Lookup(id Id) *Issue {
	switch id {
	case EngineNotFoundId:
		return engineNotFoundIssue
	case ManifestNotFoundId:
		return manifestNotFoundIssue
	case ManifestInvalidId:
		return manifestInvalidIssue
	case AppFileNotFoundId:
		return appFileNotFoundIssue
	case InterpreterUnknownId:
		return interpreterUnknownIssue
	case BuildFailedId:
		return buildFailedIssue
	case SnapshotNotFoundId:
		return snapshotNotFoundIssue
	default:
		return nil
	}
}
