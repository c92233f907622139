package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/promptpack/promptpack/internal/config"
	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
)

// BuildTree rebuilds the complete directory tree beneath the root, including
// excluded entries, with inclusion flags consistent with the walker's
// included-file set. Directory inclusion is the OR of child inclusion except
// for name-excluded directories, whose whole subtree is forced to excluded
// without consulting the set.
func BuildTree(scanConfig *config.ScanConfig, includedSet map[string]struct{}, statsByPath map[string]*types.FileStats) *types.TreeNode {
	rootNode := &types.TreeNode{
		Name:         filepath.Base(scanConfig.Root),
		RelativePath: ".",
		IsDirectory:  true,
	}
	rootNode.Children = buildChildren(scanConfig, scanConfig.Root, includedSet, statsByPath, false)
	rootNode.Included = anyChildIncluded(rootNode.Children)
	return rootNode
}

// buildChildren lists one directory and recurses. forceExcluded implements
// cascade exclusion: beneath a name-excluded directory the included-file set
// is not consulted at all.
func buildChildren(scanConfig *config.ScanConfig, directoryPath string, includedSet map[string]struct{}, statsByPath map[string]*types.FileStats, forceExcluded bool) []*types.TreeNode {
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		return []*types.TreeNode{newErrorNode(scanConfig, directoryPath, readError)}
	}

	var childNodes []*types.TreeNode
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.Type()&os.ModeSymlink != 0 {
			continue
		}
		childPath := filepath.Join(directoryPath, directoryEntry.Name())
		relativePath, relativeOK := utils.RelativeSlashPath(scanConfig.Root, childPath)
		if !relativeOK {
			continue
		}

		childNode := &types.TreeNode{
			Name:         directoryEntry.Name(),
			RelativePath: relativePath,
			IsDirectory:  directoryEntry.IsDir(),
		}

		if directoryEntry.IsDir() {
			_, nameExcluded := scanConfig.ExcludedDirNames[directoryEntry.Name()]
			childExcluded := forceExcluded || nameExcluded
			childNode.Children = buildChildren(scanConfig, childPath, includedSet, statsByPath, childExcluded)
			if childExcluded {
				childNode.Included = false
			} else {
				childNode.Included = anyChildIncluded(childNode.Children)
			}
		} else if !forceExcluded {
			if _, included := includedSet[relativePath]; included {
				childNode.Included = true
				childNode.Stats = statsByPath[relativePath]
			}
		}

		childNodes = append(childNodes, childNode)
	}

	sortChildrenStructural(childNodes)
	return childNodes
}

// newErrorNode represents an unreadable directory as a single placeholder so
// the walk continues with siblings instead of aborting.
func newErrorNode(scanConfig *config.ScanConfig, directoryPath string, readError error) *types.TreeNode {
	relativePath, relativeOK := utils.RelativeSlashPath(scanConfig.Root, directoryPath)
	if !relativeOK {
		relativePath = directoryPath
	}
	return &types.TreeNode{
		Name:         filepath.Base(directoryPath),
		RelativePath: relativePath,
		IsDirectory:  true,
		ErrorMessage: readError.Error(),
	}
}

func anyChildIncluded(children []*types.TreeNode) bool {
	for _, child := range children {
		if child.Included {
			return true
		}
	}
	return false
}

// sortChildrenStructural orders directories before files, then by
// case-insensitive name. This is the stable structural ordering; the
// statistics-driven ordering is a separate presentation pass.
func sortChildrenStructural(children []*types.TreeNode) {
	sort.SliceStable(children, func(firstIndex, secondIndex int) bool {
		first, second := children[firstIndex], children[secondIndex]
		if first.IsDirectory != second.IsDirectory {
			return first.IsDirectory
		}
		return strings.ToLower(first.Name) < strings.ToLower(second.Name)
	})
}

// SortTreeByStats reorders every directory's children so that subtrees with
// larger line counts come first, ties broken by case-insensitive name. It
// mutates child order only; inclusion flags and stats are left untouched.
func SortTreeByStats(node *types.TreeNode) {
	if node == nil || !node.IsDirectory {
		return
	}
	for _, child := range node.Children {
		SortTreeByStats(child)
	}
	sort.SliceStable(node.Children, func(firstIndex, secondIndex int) bool {
		first, second := node.Children[firstIndex], node.Children[secondIndex]
		firstLines, secondLines := subtreeLineCount(first), subtreeLineCount(second)
		if firstLines != secondLines {
			return firstLines > secondLines
		}
		return strings.ToLower(first.Name) < strings.ToLower(second.Name)
	})
}

func subtreeLineCount(node *types.TreeNode) int {
	if !node.IsDirectory {
		if node.Stats != nil {
			return node.Stats.LineCount
		}
		return 0
	}
	total := 0
	for _, child := range node.Children {
		total += subtreeLineCount(child)
	}
	return total
}
