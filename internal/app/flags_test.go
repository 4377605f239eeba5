package app

import (
	"flag"
	"testing"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-sim", "sandpile-torus", "-w", "31", "-grains", "500", "-p", "0.75", "-sps", "5", "-max-topples", "900"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Sim != "sandpile-torus" || cfg.Width != 31 || cfg.Grains != 500 || cfg.SPS != 5 {
		t.Fatalf("flags not applied: %+v", cfg)
	}

	m := cfg.SimConfig()
	want := map[string]string{"w": "31", "h": "175", "grains": "500", "p": "0.75", "seed": "1337", "max_topples": "900"}
	for k, v := range want {
		if m[k] != v {
			t.Fatalf("SimConfig[%q] = %q, expected %q", k, m[k], v)
		}
	}
}
