package cmd

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// ConfigFileName is the name of the optional per-project build
// configuration file, looked up next to the root source file.
const ConfigFileName = "axenc.toml"

// tomlConfigFile represents the configuration file as it is encoded in TOML.
type tomlConfigFile struct {
	Build *tomlBuild `toml:"build"`
}

// tomlBuild represents the build section as it is encoded in TOML.
type tomlBuild struct {
	Output     string `toml:"output,omitempty"`
	CPU        string `toml:"cpu,omitempty"`
	Features   string `toml:"features,omitempty"`
	RelocModel string `toml:"reloc-model,omitempty"`
	Emitter    string `toml:"emitter,omitempty"`
}

// BuildConfig is the resolved build configuration.  Command-line flags
// override values loaded from the file.
type BuildConfig struct {
	// Output is the default object output path.  Empty means textual IR on
	// standard output unless `-o` is passed.
	Output string

	// CPU and Features select the target processor for object emission.
	CPU      string
	Features string

	// RelocModel is the relocation model passed to the emitter.
	RelocModel string

	// Emitter is the external tool the object sink invokes.
	Emitter string
}

// LoadConfig loads `axenc.toml` from the given directory.  A missing file
// yields the default configuration.
func LoadConfig(dir string) (*BuildConfig, error) {
	config := &BuildConfig{
		CPU:        "generic",
		RelocModel: "pic",
		Emitter:    "llc",
	}

	buff, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}

		return nil, err
	}

	tcf := &tomlConfigFile{}
	if err := toml.Unmarshal(buff, tcf); err != nil {
		return nil, err
	}

	if tcf.Build != nil {
		if tcf.Build.Output != "" {
			config.Output = tcf.Build.Output
		}
		if tcf.Build.CPU != "" {
			config.CPU = tcf.Build.CPU
		}
		if tcf.Build.Features != "" {
			config.Features = tcf.Build.Features
		}
		if tcf.Build.RelocModel != "" {
			config.RelocModel = tcf.Build.RelocModel
		}
		if tcf.Build.Emitter != "" {
			config.Emitter = tcf.Build.Emitter
		}
	}

	return config, nil
}
