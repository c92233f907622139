package utils

import "path/filepath"

// languageHintsByExtension maps lower-cased extensions to fenced code block
// language hints.
var languageHintsByExtension = map[string]string{
	".py": "python", ".js": "javascript", ".ts": "typescript",
	".jsx": "jsx", ".tsx": "tsx", ".java": "java", ".kt": "kotlin",
	".cs": "csharp", ".go": "go", ".rs": "rust", ".c": "c", ".cpp": "cpp",
	".h": "c", ".hpp": "cpp", ".rb": "ruby", ".php": "php",
	".swift": "swift", ".scala": "scala", ".html": "html", ".htm": "html",
	".css": "css", ".scss": "scss", ".sass": "sass", ".json": "json",
	".jsonc": "jsonc", ".yaml": "yaml", ".yml": "yaml", ".xml": "xml",
	".sh": "bash", ".bash": "bash", ".zsh": "zsh", ".fish": "fish",
	".sql": "sql", ".md": "markdown", ".markdown": "markdown", ".rst": "rst",
	".toml": "toml", ".ini": "ini", ".cfg": "ini", ".conf": "ini",
	".env": "env", ".tf": "terraform", ".tfvars": "terraform",
}

// languageHintsByName maps exact filenames without meaningful extensions.
var languageHintsByName = map[string]string{
	"Dockerfile": "dockerfile",
	"Makefile":   "makefile",
}

// LanguageHintFor returns the syntax-highlighting hint for a filename, or an
// empty string when none is known.
func LanguageHintFor(fileName string) string {
	baseName := filepath.Base(fileName)
	if hint, known := languageHintsByName[baseName]; known {
		return hint
	}
	return languageHintsByExtension[ExtensionLower(baseName)]
}
