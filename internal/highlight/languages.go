package highlight

import (
	"path"
	"strings"
)

// None is Prism's no-op language, used for files with unknown extensions.
const None = "none"

var builtinExtensions = map[string]string{
	".cu":    "cuda",
	".cuh":   "cuda",
	".c":     "c",
	".h":     "c",
	".cl":    "c",
	".cpp":   "cpp",
	".cc":    "cpp",
	".cxx":   "cpp",
	".hpp":   "cpp",
	".hh":    "cpp",
	".hip":   "cpp",
	".py":    "python",
	".md":    "markdown",
	".go":    "go",
	".rs":    "rust",
	".sh":    "bash",
	".bash":  "bash",
	".js":    "javascript",
	".ts":    "typescript",
	".java":  "java",
	".jl":    "julia",
	".lua":   "lua",
	".json":  "json",
	".yaml":  "yaml",
	".yml":   "yaml",
	".toml":  "toml",
	".html":  "markup",
	".xml":   "markup",
	".css":   "css",
	".sql":   "sql",
	".cmake": "cmake",
	".txt":   None,
}

var builtinFilenames = map[string]string{
	"makefile":       "makefile",
	"cmakelists.txt": "cmake",
	"dockerfile":     "docker",
}

// Languages resolves language hints from file names.
type Languages struct {
	byExt map[string]string
}

// NewLanguages returns the built-in extension table extended by overrides.
// Override keys are extensions with a leading dot.
func NewLanguages(overrides map[string]string) *Languages {
	byExt := make(map[string]string, len(builtinExtensions)+len(overrides))
	for ext, lang := range builtinExtensions {
		byExt[ext] = lang
	}
	for ext, lang := range overrides {
		if lang = strings.TrimSpace(lang); lang != "" {
			byExt[strings.ToLower(ext)] = lang
		}
	}
	return &Languages{byExt: byExt}
}

// For returns the language hint for name. Unrecognized files get None.
func (l *Languages) For(name string) string {
	base := strings.ToLower(path.Base(strings.ReplaceAll(name, "\\", "/")))
	if lang, ok := builtinFilenames[base]; ok {
		return lang
	}
	if lang, ok := l.byExt[path.Ext(base)]; ok {
		return lang
	}
	return None
}

var defaultLanguages = NewLanguages(nil)

// LanguageFor resolves name against the built-in table.
func LanguageFor(name string) string {
	return defaultLanguages.For(name)
}
