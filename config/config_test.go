package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spvadce.toml")
	body := `
target_env = "vulkan1.2"

[validator]
relax_logical_pointer = true

[adce]
extensions_allow_list = ["SPV_KHR_non_semantic_info"]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TargetEnv != EnvVulkan1_2 {
		t.Errorf("TargetEnv = %q, want %q", cfg.TargetEnv, EnvVulkan1_2)
	}
	if !cfg.Validator.RelaxLogicalPointer {
		t.Error("RelaxLogicalPointer = false, want true")
	}
	if len(cfg.ADCE.ExtensionsAllowList) != 1 || cfg.ADCE.ExtensionsAllowList[0] != "SPV_KHR_non_semantic_info" {
		t.Errorf("ExtensionsAllowList = %v", cfg.ADCE.ExtensionsAllowList)
	}
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spvadce.toml")
	if err := os.WriteFile(path, []byte("bogus_key = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unknown configuration key")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.TargetEnv != EnvUniversal {
		t.Errorf("Default().TargetEnv = %q, want %q", cfg.TargetEnv, EnvUniversal)
	}
}

func TestTargetEnv_MaxVersion(t *testing.T) {
	cases := map[TargetEnv]uint32{
		EnvVulkan1_0: 0x00010000,
		EnvVulkan1_3: 0x00010600,
		EnvUniversal: 0,
	}
	for env, want := range cases {
		if got := env.MaxVersion(); got != want {
			t.Errorf("%s.MaxVersion() = 0x%08x, want 0x%08x", env, got, want)
		}
	}
}
