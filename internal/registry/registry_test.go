package registry

import (
	"testing"

	"sdx/internal/config"
	"sdx/internal/sderr"
	"sdx/pkg/types"
)

func intp(v int) *int { return &v }

func testConfig(defaultModel string) config.Config {
	return config.Config{
		DefaultModel: defaultModel,
		Models: map[string]config.ModelConfig{
			"sd15": {Model: "/m/sd15.st", Steps: intp(25)},
			"flux": {DiffusionModel: "/m/flux.gguf", ClipL: "/m/clip_l.st", T5XXL: "/m/t5.st", VAE: "/m/ae.st"},
		},
	}
}

func TestFromConfigAndResolve(t *testing.T) {
	r := FromConfig(testConfig(""))
	if r.Len() != 2 {
		t.Fatalf("len=%d", r.Len())
	}
	m, err := r.Resolve("sd15")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if m.Paths.Model != "/m/sd15.st" || m.Defaults.Steps == nil || *m.Defaults.Steps != 25 {
		t.Fatalf("unexpected model: %+v", m)
	}
	if names := r.Names(); names[0] != "flux" || names[1] != "sd15" {
		t.Fatalf("names not sorted: %v", names)
	}
}

func TestResolveUnknownIsExact(t *testing.T) {
	r := FromConfig(testConfig(""))
	for _, name := range []string{"missing", "SD15", "sd1", ""} {
		_, err := r.Resolve(name)
		if !sderr.IsModelNotFound(err) {
			t.Fatalf("%q: expected model not found, got %v", name, err)
		}
	}
}

func TestResolveNameDefaultPolicy(t *testing.T) {
	r := FromConfig(testConfig(""))
	if got, err := r.ResolveName("sd15", FallbackDefault); err != nil || got != "sd15" {
		t.Fatalf("explicit: got %q err=%v", got, err)
	}
	// explicit names are not validated here
	if got, _ := r.ResolveName("nope", FallbackDefault); got != "nope" {
		t.Fatalf("got %q", got)
	}
	if _, err := r.ResolveName("", FallbackDefault); !sderr.IsNoDefaultModel(err) {
		t.Fatalf("CLI policy must not pick an arbitrary model, got %v", err)
	}
	r = FromConfig(testConfig("sd15"))
	if got, err := r.ResolveName("", FallbackDefault); err != nil || got != "sd15" {
		t.Fatalf("default: got %q err=%v", got, err)
	}
}

func TestResolveNameFirstPolicy(t *testing.T) {
	r := FromConfig(testConfig(""))
	if got, err := r.ResolveName("", FallbackFirst); err != nil || got != "flux" {
		t.Fatalf("expected first sorted name, got %q err=%v", got, err)
	}
	r = FromConfig(testConfig("sd15"))
	if got, _ := r.ResolveName("", FallbackFirst); got != "sd15" {
		t.Fatalf("configured default should win, got %q", got)
	}
	empty := New(nil, "")
	if _, err := empty.ResolveName("", FallbackFirst); !sderr.IsNoDefaultModel(err) {
		t.Fatalf("expected no default model, got %v", err)
	}
}

func TestModelsSortedAndPaths(t *testing.T) {
	r := New([]types.Model{{Name: "b", Paths: types.ModelPaths{Model: "/b"}}, {Name: "a", Paths: types.ModelPaths{DiffusionModel: "/a", VAE: "/v"}}}, "")
	ms := r.Models()
	if ms[0].Name != "a" || ms[1].Name != "b" {
		t.Fatalf("unexpected order: %+v", ms)
	}
	ps := ms[0].Paths.List()
	if len(ps) != 2 || ps[0].Label != "diffusion_model" || ps[1].Label != "vae" {
		t.Fatalf("unexpected paths: %+v", ps)
	}
}
