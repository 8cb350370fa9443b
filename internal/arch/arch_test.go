// internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

// listPackages runs `go list -json ./...` in dir (relative to this package).
func listPackages(t *testing.T, dir string) []pkg {
	t.Helper()
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go tool not in PATH")
	}
	cmd := exec.Command("go", "list", "-json", "./...")
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list in %s: %v", dir, err)
	}
	var pkgs []pkg
	dec := json.NewDecoder(&out)
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		pkgs = append(pkgs, p)
	}
	return pkgs
}

// isPkg matches dep against ban as a package path or a path prefix ending in "/".
func isPkg(dep, ban string) bool {
	if strings.HasSuffix(ban, "/") {
		return strings.HasPrefix(dep, ban)
	}
	return dep == ban || strings.HasPrefix(dep, ban+"/")
}

func violations(pkgs []pkg, bans map[string][]string) []string {
	var out []string
	for _, p := range pkgs {
		for prefix, forbidden := range bans {
			if !isPkg(p.ImportPath, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				for _, ban := range forbidden {
					if isPkg(dep, ban) {
						out = append(out, p.ImportPath+" → "+dep)
					}
				}
			}
		}
	}
	return out
}

func TestImportBoundaries(t *testing.T) {
	bans := map[string][]string{
		"enigma/internal/session": {
			"enigma/internal/app", "enigma/internal/appshell", "enigma/internal/cli",
			"enigma/internal/writers", "enigma/cmd/",
		},
		"enigma/internal/setting": {
			"enigma/internal/app", "enigma/internal/cli", "enigma/internal/config",
			"enigma/internal/session", "enigma/internal/writers", "enigma/cmd/",
		},
		"enigma/internal/config": {
			"enigma/internal/app", "enigma/internal/cli", "enigma/internal/session",
			"enigma/internal/writers", "enigma/cmd/",
		},
		"enigma/internal/writers": {
			"enigma/internal/app", "enigma/internal/cli", "enigma/internal/config",
			"enigma/cmd/",
		},
		"enigma/pkg": {"enigma/internal/", "enigma-core/"},
	}

	if v := violations(listPackages(t, "../.."), bans); len(v) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(v, "\n  "))
	}
}

// The core module stays free of I/O, logging, and the outer module.
func TestCoreIsPure(t *testing.T) {
	bans := map[string][]string{
		"enigma-core": {"enigma/", "os", "log", "log/slog"},
	}
	if v := violations(listPackages(t, "../../core"), bans); len(v) > 0 {
		t.Fatalf("core import violations:\n  %s", strings.Join(v, "\n  "))
	}
}
