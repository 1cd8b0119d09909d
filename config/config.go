// Package config loads the options that shape a run of the core: the
// target SPIR-V environment and its associated version ceiling, the
// validator's leniency toggles, and ADCE's allow-list extensions.
// Modeled on how vovakirdan-surge's internal/project package loads
// surge.toml with BurntSushi/toml.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// TargetEnv names a SPIR-V consumption environment, which pins the
// maximum module version the binary reader will accept and the
// capability/extension baseline the validator assumes.
type TargetEnv string

const (
	EnvVulkan1_0 TargetEnv = "vulkan1.0"
	EnvVulkan1_1 TargetEnv = "vulkan1.1"
	EnvVulkan1_2 TargetEnv = "vulkan1.2"
	EnvVulkan1_3 TargetEnv = "vulkan1.3"
	EnvOpenGL4_5 TargetEnv = "opengl4.5"
	EnvUniversal TargetEnv = "universal1.5"
)

// MaxVersion returns the highest SPIR-V module version (major<<16 |
// minor<<8) this environment accepts, or 0 for EnvUniversal which
// imposes no ceiling.
func (e TargetEnv) MaxVersion() uint32 {
	switch e {
	case EnvVulkan1_0:
		return 0x00010000
	case EnvVulkan1_1:
		return 0x00010300
	case EnvVulkan1_2:
		return 0x00010500
	case EnvVulkan1_3:
		return 0x00010600
	case EnvOpenGL4_5:
		return 0x00010000
	default:
		return 0
	}
}

// ValidatorOptions toggles the validator's leniency per §6/§9.
type ValidatorOptions struct {
	// RelaxLogicalPointer permits pointer-typed OpFunctionParameters,
	// a logical addressing relaxation some consumers accept outside
	// strict Logical addressing mode.
	RelaxLogicalPointer bool `toml:"relax_logical_pointer"`
	// SkipBlockLayout disables the check that structured merge and
	// continue targets name blocks of their function,
	// useful for modules already known to be well-formed (e.g. ones
	// this toolchain itself just emitted).
	SkipBlockLayout bool `toml:"skip_block_layout"`
}

// ADCEOptions configures the aggressive-dead-code-elimination pass.
type ADCEOptions struct {
	// ExtensionsAllowList overrides the pass's built-in extension
	// allow-list (see adce/extensions.go) when non-empty.
	ExtensionsAllowList []string `toml:"extensions_allow_list"`
}

// Config is the toolchain's full configuration, typically loaded from
// a TOML file via Load (cmd/spvadce's --config flag).
type Config struct {
	TargetEnv TargetEnv         `toml:"target_env"`
	Validator ValidatorOptions  `toml:"validator"`
	ADCE      ADCEOptions       `toml:"adce"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{TargetEnv: EnvUniversal}
}

// Load reads and parses a TOML configuration file at path.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		return Config{}, fmt.Errorf("%s: unknown configuration key %q", path, key.String())
	}
	return cfg, nil
}
