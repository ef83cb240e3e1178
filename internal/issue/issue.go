// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

const (
	PlaysetLoadFailedId Id = iota + 1
	ModsMissingId
	PathTooLongId
	CopyFailedId
	DescriptorUnreadableId
	ArchiveExtractFailedId
	ConfigLoadFailedId
	DestinationExistsId
	PermissionDeniedId
)

type (
	// Id identifies an issue in the catalog.
	Id int

	// MarkdownMsg is the Markdown body of an issue.
	MarkdownMsg string

	// HttpLink is a documentation link shown under an issue.
	HttpLink string

	// Issue is a catalog entry explaining a failure and what to try.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

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

// Render renders the issue with the glamour style at stylePath, e.g. "dark".
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	playsetLoadFailedIssue = &Issue{
		id: PlaysetLoadFailedId,
		mdMsg: `
# The playset export could not be read

ck3pp reads playsets exported as JSON, CUE or TOML. Every mod needs a
` + "`displayName`" + ` and a location: ` + "`dirPath`" + `, ` + "`archivePath`" + ` or ` + "`steamId`" + `.

## Things you can try:
- Export the playset again from the launcher or your mod manager.
- Check the field named in the error message.
- Inspect what ck3pp understands of the file:
~~~
$ ck3pp inspect playset.json
~~~`,
	}

	modsMissingIssue = &Issue{
		id: ModsMissingId,
		mdMsg: `
# Some mods cannot be found on disk

These mods show a red error sign in the launcher. They are usually
unsubscribed Workshop items or local mods that were moved.

## Things you can try:
- Resubscribe to the mods, wait for Steam to download them, then retry.
- Continue without them. The preserved playset will not contain them.`,
	}

	pathTooLongIssue = &Issue{
		id: PathTooLongId,
		mdMsg: `
# A file path is too long for Windows

Windows refuses to create paths of 260 characters or more unless long paths
are enabled. The name of the preserved mod folder is part of every path.

## Things you can try:
- Run again and enter a shorter folder name when asked. Files already
  copied are kept.
- Enable long paths in Windows (` + "`LongPathsEnabled`" + ` registry value) and
  raise ` + "`max_path`" + ` in the ck3pp config.`,
		extLinks: []HttpLink{"https://learn.microsoft.com/windows/win32/fileio/maximum-file-path-limitation"},
	}

	copyFailedIssue = &Issue{
		id: CopyFailedId,
		mdMsg: `
# Copying a mod failed

The preserved mod folder was left as it is so nothing already copied is
lost. Delete it before retrying with the same name.

## Things you can try:
- Close the game and the launcher, which may hold files open.
- Check the free space on the drive.
- Run again with ` + "`--verbose`" + ` to see every failed file.`,
	}

	descriptorUnreadableIssue = &Issue{
		id: DescriptorUnreadableId,
		mdMsg: `
# A mod's descriptor could not be read

ck3pp reads each mod's own ` + "`.mod`" + ` file to collect its tags and
` + "`replace_path`" + ` lines.

## Things you can try:
- Verify the mod is fully downloaded.
- Check ` + "`content_root`" + ` in the ck3pp config points at the game's user directory.`,
	}

	archiveExtractFailedIssue = &Issue{
		id: ArchiveExtractFailedId,
		mdMsg: `
# A Paradox Mods archive could not be extracted

## Things you can try:
- Let the launcher download the mod again.
- Check there is enough room in the temp directory.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

The config file is CUE. Unknown keys and values of the wrong type are
rejected.

## Things you can try:
- Print the path of the config file:
~~~
$ ck3pp config path
~~~
- Write a fresh default config:
~~~
$ ck3pp config init --force
~~~`,
	}

	destinationExistsIssue = &Issue{
		id: DestinationExistsId,
		mdMsg: `
# The preserved mod already exists

A folder or ` + "`.mod`" + ` file with this name is already in the mod directory.

## Things you can try:
- Pick another name with ` + "`--name`" + `.
- Delete the old preserved playset if you no longer need it.`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied

## Things you can try:
- Make sure the mod directory is writable by your user.
- Close programs that may lock mod files, such as the game or an archiver.`,
	}

	issues = map[Id]*Issue{
		playsetLoadFailedIssue.Id():    playsetLoadFailedIssue,
		modsMissingIssue.Id():          modsMissingIssue,
		pathTooLongIssue.Id():          pathTooLongIssue,
		copyFailedIssue.Id():           copyFailedIssue,
		descriptorUnreadableIssue.Id(): descriptorUnreadableIssue,
		archiveExtractFailedIssue.Id(): archiveExtractFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		destinationExistsIssue.Id():    destinationExistsIssue,
		permissionDeniedIssue.Id():     permissionDeniedIssue,
	}
)

// Values returns every issue ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, id := range slices.Sorted(maps.Keys(issues)) {
		out = append(out, issues[id])
	}
	return out
}

// Get returns the issue with id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
