package testkit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ConfigEntry is one endpoint in a master suite file. Its scenarios inherit
// the URL, method and caller unless they set their own.
type ConfigEntry struct {
	ServiceName       string `json:"serviceName"`
	FilePath          string `json:"filePath"`
	ScenariosFileName string `json:"scenariosFileName"`
	ServiceURL        string `json:"serviceUrl"`
	HTTPMethodType    string `json:"httpMethodType"`
	As                string `json:"as,omitempty"`
}

// RunSuite runs every entry of the master config at masterConfigPath
// against env, one subtest per entry and per scenario.
func RunSuite(t *testing.T, env *Env, masterConfigPath string) {
	t.Helper()

	absMasterPath, err := filepath.Abs(masterConfigPath)
	if err != nil {
		t.Fatalf("testkit: resolve master config path %q: %v", masterConfigPath, err)
	}
	data, err := os.ReadFile(absMasterPath)
	if err != nil {
		t.Fatalf("testkit: read master config %q: %v", absMasterPath, err)
	}

	var entries []ConfigEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("testkit: parse master config %q: %v", absMasterPath, err)
	}

	baseDir := filepath.Dir(absMasterPath)

	for _, entry := range entries {
		t.Run(entry.ServiceName, func(t *testing.T) {
			url := entry.ServiceURL
			if url != "" && url[0] != '/' {
				url = "/" + url
			}

			scenarioPath := filepath.Join(baseDir, entry.FilePath, entry.ScenariosFileName)
			scenarios, err := LoadScenarioArray(scenarioPath)
			if err != nil {
				t.Fatalf("testkit: load scenario array %q: %v", scenarioPath, err)
			}

			for _, s := range scenarios {
				if s.RequestURL == "" {
					s.RequestURL = url
				}
				if s.RequestMethod == "" {
					s.RequestMethod = entry.HTTPMethodType
				}
				s.RequestMethod = strings.ToUpper(s.RequestMethod)
				if s.As == "" {
					s.As = entry.As
				}

				t.Run(s.Name, func(t *testing.T) {
					runScenario(t, env, s)
				})
			}
		})
	}
}
