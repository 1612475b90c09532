// The staticlint command bundles the project's static analysis into a
// single multichecker binary: a selection of standard Go analyzers,
// third-party analyzers, and the project-specific noosexit analyzer.
//
// The staticcheck analyzer set can be configured through a config.json
// file placed next to the binary, listing the enabled check names. With
// no config file the SA analyzers run by default.
package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"

	"github.com/gordonklaus/ineffassign/pkg/ineffassign"
	"github.com/gostaticanalysis/nilerr"
	"honnef.co/go/tools/staticcheck"

	"github.com/giftlink/giftlink-backend/cmd/staticlint/noosexit"
)

// configFileName is the JSON file listing enabled staticcheck analyzers.
const configFileName = "config.json"

type configData struct {
	Staticcheck []string
}

func enabledStaticcheck() map[string]bool {
	appFile, err := os.Executable()
	if err != nil {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(filepath.Dir(appFile), configFileName))
	if err != nil {
		return nil
	}

	var cfg configData
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil
	}

	checks := make(map[string]bool, len(cfg.Staticcheck))
	for _, name := range cfg.Staticcheck {
		checks[name] = true
	}

	return checks
}

func main() {
	checks := []*analysis.Analyzer{
		copylock.Analyzer,
		loopclosure.Analyzer,
		lostcancel.Analyzer,
		printf.Analyzer,
		structtag.Analyzer,
		unmarshal.Analyzer,
		unreachable.Analyzer,

		ineffassign.Analyzer,
		nilerr.Analyzer,

		noosexit.Analyzer,
	}

	enabled := enabledStaticcheck()

	for _, v := range staticcheck.Analyzers {
		if enabled == nil && strings.HasPrefix(v.Analyzer.Name, "SA") {
			checks = append(checks, v.Analyzer)
			continue
		}

		if enabled[v.Analyzer.Name] {
			checks = append(checks, v.Analyzer)
		}
	}

	multichecker.Main(checks...)
}
