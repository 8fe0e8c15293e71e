package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sdx/internal/sderr"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

const fullTOML = `
sd_cli_path = "/usr/local/bin/sd-cli"
default_model = "sd15"

[server]
port = 9090
cors_origins = ["http://localhost:3000"]

[models.sd15]
model = "/models/sd15.safetensors"
width = 512
height = 512
steps = 20
cfg_scale = 7.0
sampling_method = "euler_a"
scheduler = "discrete"

[models.flux]
diffusion_model = "/models/flux-dev-q8_0.gguf"
clip_l = "/models/clip_l.safetensors"
t5xxl = "/models/t5xxl_fp16.safetensors"
vae = "/models/ae.safetensors"
width = 1024
height = 1024
guidance = 3.5
sampling_method = "euler"
scheduler = "simple"
`

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "config.toml", fullTOML)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SDCLIPath != "/usr/local/bin/sd-cli" || cfg.DefaultModel != "sd15" || cfg.Server.Port != 9090 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.Server.CORSOrigins) != 1 {
		t.Fatalf("cors origins: %v", cfg.Server.CORSOrigins)
	}
	sd15 := cfg.Models["sd15"]
	if sd15.Model != "/models/sd15.safetensors" || sd15.Width == nil || *sd15.Width != 512 || sd15.Steps == nil || *sd15.Steps != 20 {
		t.Fatalf("sd15: %+v", sd15)
	}
	if sd15.HasComponentPaths() {
		t.Fatalf("sd15 should not be a component model")
	}
	flux := cfg.Models["flux"]
	if !flux.HasComponentPaths() || flux.Guidance == nil || *flux.Guidance != 3.5 || flux.Steps != nil {
		t.Fatalf("flux: %+v", flux)
	}
	if got := cfg.ModelNames(); len(got) != 2 || got[0] != "flux" || got[1] != "sd15" {
		t.Fatalf("names not sorted: %v", got)
	}
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "default_model: m1\nmodels:\n  m1:\n    model: /x/m1.safetensors\n    steps: 8\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultModel != "m1" || cfg.Models["m1"].Model != "/x/m1.safetensors" || *cfg.Models["m1"].Steps != 8 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"default_model":"m2","models":{"m2":{"diffusion_model":"/d.gguf","seed":42}}}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m := cfg.Models["m2"]; m.DiffusionModel != "/d.gguf" || m.Seed == nil || *m.Seed != 42 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadEmptyIsValid(t *testing.T) {
	cfg, err := Parse([]byte(""), ".toml")
	if err != nil {
		t.Fatalf("empty config should parse: %v", err)
	}
	if len(cfg.Models) != 0 {
		t.Fatalf("expected no models")
	}
}

func TestLoadExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	cfg, err := Parse([]byte("[models.a]\nmodel = \"~/w/a.safetensors\"\n"), ".toml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if want := filepath.Join(home, "w", "a.safetensors"); cfg.Models["a"].Model != want {
		t.Fatalf("got %q want %q", cfg.Models["a"].Model, want)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	if got := DefaultPath(); got != filepath.Join("/cfg", "sdx", "config.toml") {
		t.Fatalf("got %q", got)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"SDX_SD_CLI_PATH": "/opt/sd-cli",
		"SDX_LOG_LEVEL":   "debug",
		"SDX_HOST":        "0.0.0.0",
		"SDX_PORT":        "7000",
	}
	var cfg Config
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.SDCLIPath != "/opt/sd-cli" || cfg.LogLevel != "debug" || cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 7000 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	env["SDX_PORT"] = "nope"
	err := cfg.ApplyEnv(func(k string) string { return env[k] })
	if sderr.KindOf(err) != sderr.KindInvalidConfig {
		t.Fatalf("expected invalid config, got %v", err)
	}
}

func TestExecutablePathPrefersConfig(t *testing.T) {
	cfg := Config{SDCLIPath: "/custom/sd-cli"}
	if got := cfg.ExecutablePath(); got != "/custom/sd-cli" {
		t.Fatalf("got %q", got)
	}
	t.Setenv("PATH", t.TempDir())
	if got := (Config{}).ExecutablePath(); got != DefaultExecutable {
		t.Fatalf("expected bare fallback, got %q", got)
	}
}

func TestValidateRejectsCombinedPaths(t *testing.T) {
	_, err := Parse([]byte("[models.mix]\nmodel = \"/a\"\nvae = \"/v\"\n"), ".toml")
	if sderr.KindOf(err) != sderr.KindInvalidConfig || !strings.Contains(err.Error(), "mix") {
		t.Fatalf("expected invalid config naming model, got %v", err)
	}
}
