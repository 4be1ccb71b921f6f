package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/doeshing/recspec/internal/domain"
)

var defaultNames = map[domain.FileRole]string{
	domain.RolePageObject: "page",
	domain.RoleTestSpec:   "recording.spec",
	domain.RoleTestData:   "test-data",
}

// sanitizeBundle keeps generated files inside the output directory and fills in
// missing or clashing names.
func sanitizeBundle(b domain.CodeBundle, typescript bool) domain.CodeBundle {
	ext := ".js"
	if typescript {
		ext = ".ts"
	}

	seen := map[string]bool{}
	fix := func(role domain.FileRole, f domain.GeneratedFile) domain.GeneratedFile {
		name := filepath.Base(filepath.Clean("/" + strings.TrimSpace(f.Filename)))
		if name == "/" || name == "." || seen[name] {
			name = defaultNames[role] + ext
		}
		for n := 2; seen[name]; n++ {
			name = fmt.Sprintf("%s-%d%s", defaultNames[role], n, ext)
		}
		seen[name] = true
		f.Filename = name
		return f
	}

	b.PageObject = fix(domain.RolePageObject, b.PageObject)
	b.TestSpec = fix(domain.RoleTestSpec, b.TestSpec)
	b.TestData = fix(domain.RoleTestData, b.TestData)
	return b
}
