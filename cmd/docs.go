package cmd

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const rootDoc = `---
layout: default
title: %s
nav_order: %d
has_children: true
permalink: /
---
`

// child command without children
const childDoc = `---
layout: default
title: %s
parent: %s
nav_order: %d
---
`

// child with children
const childParentDoc = `---
layout: default
title: %s
parent: %s
nav_order: %d
has_children: true
---
`

// grandchildren
const grandchildDoc = `---
layout: default
title: %s
parent: %s
grand_parent: %s
nav_order: %d
---
`

// docsCmd writes Markdown documentation for every command.
var docsCmd = &cobra.Command{
	Use:    "docs [dir]",
	Short:  "Write Markdown docs for each command",
	Args:   cobra.MaximumNArgs(1),
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "docs"
		if len(args) > 0 {
			dir = args[0]
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}

		// doc.GenMarkdownTreeCustom only hands over file names, the
		// front matter comes from the command tree
		prepender := filePrepender(docMeta(RootCmd))
		return doc.GenMarkdownTreeCustom(RootCmd, dir, prepender, linkHandler)
	},
}

// meta is the position of a command's doc page in the navigation.
type meta struct {
	title       string
	navOrder    int
	parent      string
	grandParent string
	hasChildren bool
}

// docMeta maps the base Markdown file name of every command to its meta.
func docMeta(root *cobra.Command) map[string]meta {
	metas := map[string]meta{
		root.Name(): {title: root.Name(), hasChildren: true},
	}

	for i, child := range root.Commands() {
		metas[baseName(child)] = meta{
			title:       child.Name(),
			navOrder:    i,
			parent:      root.Name(),
			hasChildren: child.HasAvailableSubCommands(),
		}
		for j, grandchild := range child.Commands() {
			metas[baseName(grandchild)] = meta{
				title:       grandchild.Name(),
				navOrder:    j,
				parent:      child.Name(),
				grandParent: root.Name(),
			}
		}
	}
	return metas
}

// baseName is the file name cobra/doc gives the command, without ".md".
func baseName(c *cobra.Command) string {
	return strings.ReplaceAll(c.CommandPath(), " ", "_")
}

// filePrepender adds YAML headings that are required by the just-the-docs theme
// https://github.com/spf13/cobra/blob/master/doc/md_docs.md
func filePrepender(metas map[string]meta) func(string) string {
	return func(filename string) string {
		name := filepath.Base(filename)
		m, ok := metas[strings.TrimSuffix(name, path.Ext(name))]
		if !ok {
			return ""
		}

		switch {
		case m.parent == "":
			return fmt.Sprintf(rootDoc, m.title, m.navOrder)
		case m.grandParent != "":
			return fmt.Sprintf(grandchildDoc, m.title, m.parent, m.grandParent, m.navOrder)
		case m.hasChildren:
			return fmt.Sprintf(childParentDoc, m.title, m.parent, m.navOrder)
		default:
			return fmt.Sprintf(childDoc, m.title, m.parent, m.navOrder)
		}
	}
}

// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))

	if base == RootCmd.Name() {
		return "/"
	}
	return base
}

func init() {
	RootCmd.AddCommand(docsCmd)
}
