package config

import "testing"

func TestLoad_DefaultsAreValid(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") = %v, want no error", err)
	}
	if cfg.Engine.ParticleCount <= 0 {
		t.Errorf("default particle_count = %d, want positive", cfg.Engine.ParticleCount)
	}
	if cfg.Derived.OilProperties.Kind == "" {
		t.Error("expected derived oil properties to be populated")
	}
}

func TestValidate_RejectsNonPositiveParticleCount(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Engine.ParticleCount = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for particle_count=0")
	}
}

func TestValidate_RejectsUnknownOilType(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Spill.OilType = "bitumen"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown oil_type")
	}
}

func TestValidate_RejectsContinuousWithoutDuration(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Spill.Mode = "continuous"
	cfg.Spill.DurationHour = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for continuous spill without duration")
	}
}

func TestMustInit_PanicsOnInvalidConfig(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected MustInit to panic on invalid config path")
		}
	}()
	MustInit("/nonexistent/path/to/config.yaml")
}
