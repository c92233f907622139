// Package config builds the immutable scan configuration and loads
// application defaults from configuration files.
package config

// defaultExcludedDirectoryNames lists bare directory names excluded from the
// scan wherever they appear in a path. Matching is by segment, not by glob.
var defaultExcludedDirectoryNames = []string{
	".git", ".svn", ".hg", ".bzr", "node_modules", "vendor", ".tap",
	"venv", "env", ".venv", "ENV", "virtualenv",
	"build", "dist", "target", "out", "bin", "obj",
	"__pycache__", ".cache", "cache",
	".pytest_cache", ".mypy_cache", ".tox",
	".idea", ".vscode", "logs", "log", "coverage", "htmlcov",
	".terraform", ".next", ".nuxt", "public", "static",
	"assets", "images", "img", "icons", "fonts", "media", "uploads",
	"downloads", "resources", "screenshots", "thumbnails", "previews",
	"demos", "examples", "tests", "__tests__", "test", "docs", "documentation",
}

// DefaultDenylistPatterns lists the built-in glob patterns excluded unless a
// type override, explicit include, or always-include name rescues the file.
var DefaultDenylistPatterns = []string{
	// Compiled and object files
	"*.pyc", "*.pyo", "*.pyd", "*.so", "*.o", "*.a", "*.lib", "*.dylib",
	"*.bundle", "*.dll", "*.exe", "*.class", "*.jar", "*.war", "*.ear", ".tap",
	// Logs and build info
	"*.log", "*.tsbuildinfo",
	// Editor backups and swaps
	"*.swp", "*.swo", "*~", "#*#", ".DS_Store", "Thumbs.db",
	// Patches and diffs
	"*.patch", "*.diff",
	// Lock files
	"*.lock", "pnpm-lock.yaml", "yarn.lock", "package-lock.json",
	"poetry.lock", "composer.lock", "Gemfile.lock",
	// State files
	"*.tfstate", "*.tfstate.backup",
	// Backups and temps
	"*.bak", "*.tmp", "*.temp",
	// Minified files and source maps
	"*.min.*", "*.map",
	// Asset files
	"*.svg", "*.png", "*.jpg", "*.jpeg", "*.gif", "*.ico", "*.webp", "*.bmp",
	"*.tiff", "*.tif", "*.woff", "*.woff2", "*.ttf", "*.eot", "*.otf",
	"*.mp3", "*.mp4", "*.avi", "*.mov", "*.wmv", "*.flv", "*.webm",
	"*.zip", "*.tar", "*.gz", "*.rar", "*.7z",
	"*.psd", "*.ai", "*.eps", "*.sketch", "*.fig", "*.xd",
	"*.blend", "*.obj", "*.fbx", "*.dae", "*.3ds",
	"*.pdf", "*.doc", "*.docx", "*.xls", "*.xlsx", "*.ppt", "*.pptx",
	// Structured and markup data formats
	"*.spec.*", "*.test.*", "*.csv", "*.tsv", "*.xml", "*.yaml", "*.yml",
	"*.htm", "*.html", "*.css", "*.sql", "*.md", "*.markdown", "*.rst",
	"*.json", "*.jsonc", "package.json",
	// Common config files
	".editorconfig", ".gitattributes", ".gitmodules",
	"tsconfig.json", "tsconfig.*.json",
}

// defaultAlwaysIncludeNames lists exact filenames included even when the
// default denylist or git tracking would drop them.
var defaultAlwaysIncludeNames = []string{
	"README.md", ".env.example", "docker-compose.yml", "docker-compose.yaml",
	"Dockerfile", "requirements.txt", "pyproject.toml", "go.mod", "go.sum",
	"Cargo.toml",
}

// defaultAlwaysSkipNames lists exact filenames excluded unconditionally.
var defaultAlwaysSkipNames = []string{
	".gitignore", "pnpm-lock.yaml", "package.json", "tsconfig.json",
	".eslintrc.js", ".prettierrc.js", ".env", ".tap", "bun.lock", "LICENSE",
	"eslint.config.js", ".prettierrc", ".prettierignore", "package-lock.json",
	"worker-configuration.d.ts",
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// DefaultExcludedDirectoryNames returns a fresh copy of the built-in
// directory-name exclusion set.
func DefaultExcludedDirectoryNames() map[string]struct{} {
	return nameSet(defaultExcludedDirectoryNames)
}

// DefaultAlwaysIncludeNames returns a fresh copy of the always-include set.
func DefaultAlwaysIncludeNames() map[string]struct{} {
	return nameSet(defaultAlwaysIncludeNames)
}

// DefaultAlwaysSkipNames returns a fresh copy of the always-skip set.
func DefaultAlwaysSkipNames() map[string]struct{} {
	return nameSet(defaultAlwaysSkipNames)
}
