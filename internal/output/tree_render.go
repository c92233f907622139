package output

import (
	"bytes"
	"fmt"
	"math"

	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
)

const (
	glyphChild       = "├──"
	glyphLast        = "└──"
	glyphIndentChild = "│"
	glyphIndentLast  = " "
)

// renderTree draws the annotated tree. withBlocks adds the size-percentage
// block row used by the summary view; the plain view instead drops excluded
// leaf entries to keep the structure readable.
func renderTree(rootNode *types.TreeNode, withBlocks bool) string {
	var buffer bytes.Buffer
	buffer.WriteString(". " + includedMarker + "\n")
	if rootNode != nil {
		renderNodes(&buffer, rootNode.Children, "", withBlocks)
	}
	return buffer.String()
}

func renderNodes(buffer *bytes.Buffer, nodes []*types.TreeNode, indent string, withBlocks bool) {
	for nodeIndex, node := range nodes {
		isLast := nodeIndex == len(nodes)-1
		marker := glyphChild
		if isLast {
			marker = glyphLast
		}

		if !withBlocks && !node.Included && len(node.Children) == 0 && node.ErrorMessage == "" {
			continue
		}

		status := excludedMarker
		if node.Included {
			status = includedMarker
		}

		line := fmt.Sprintf("%s%s %s %s", indent, marker, node.Name, status)
		if node.ErrorMessage != "" {
			line = fmt.Sprintf("%s%s %s %s (unreadable: %s)", indent, marker, node.Name, excludedMarker, node.ErrorMessage)
		}

		if !node.IsDirectory && node.Stats != nil {
			line += fmt.Sprintf(" (%sL, %sC) [~%.2f%%]", utils.GroupDigits(node.Stats.LineCount), utils.GroupDigits(node.Stats.CharCount), node.Stats.Percentage)
			if withBlocks && node.Stats.Percentage > 0.1 {
				blockCount := int(math.Round(node.Stats.Percentage / 100 * maximumBlocks))
				if blockCount < 1 {
					blockCount = 1
				}
				line += " "
				for blockIndex := 0; blockIndex < blockCount; blockIndex++ {
					line += blockCharacter
				}
			}
		}

		buffer.WriteString(line + "\n")

		if len(node.Children) > 0 {
			childIndent := indent + glyphIndentChild + " "
			if isLast {
				childIndent = indent + glyphIndentLast + " "
			}
			renderNodes(buffer, node.Children, childIndent, withBlocks)
		}
	}
}
