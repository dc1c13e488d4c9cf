package validation

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestConfigValidator_Required(t *testing.T) {
	cv := NewConfigValidator("CLIConfig")
	cv.Required("Source", "")

	if !cv.HasErrors() {
		t.Error("Expected error for empty required field")
	}
	if !strings.Contains(cv.Validate().Error(), "CLIConfig.Source") {
		t.Errorf("Expected field path in error, got %v", cv.Validate())
	}

	cv2 := NewConfigValidator("CLIConfig")
	cv2.Required("Source", "graph.json")

	if cv2.HasErrors() {
		t.Error("Expected no error for non-empty required field")
	}
}

func TestConfigValidator_IntBounds(t *testing.T) {
	tests := []struct {
		name      string
		apply     func(*ConfigValidator)
		expectErr bool
	}{
		{"min below", func(cv *ConfigValidator) { cv.MinInt("Workers", 0, 1) }, true},
		{"min ok", func(cv *ConfigValidator) { cv.MinInt("Workers", 1, 1) }, false},
		{"max above", func(cv *ConfigValidator) { cv.MaxInt("Workers", 2000, 1024) }, true},
		{"max ok", func(cv *ConfigValidator) { cv.MaxInt("Workers", 8, 1024) }, false},
		{"range below", func(cv *ConfigValidator) { cv.RangeInt("Top", -1, 0, 100) }, true},
		{"range above", func(cv *ConfigValidator) { cv.RangeInt("Top", 101, 0, 100) }, true},
		{"range at max", func(cv *ConfigValidator) { cv.RangeInt("Top", 100, 0, 100) }, false},
		{"negative", func(cv *ConfigValidator) { cv.NonNegative("Sample", -1) }, true},
		{"zero", func(cv *ConfigValidator) { cv.NonNegative("Sample", 0) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := NewConfigValidator("Options")
			tt.apply(cv)

			if tt.expectErr != cv.HasErrors() {
				t.Errorf("HasErrors() = %v, want %v (%v)", cv.HasErrors(), tt.expectErr, cv.Errors())
			}
		})
	}
}

func TestConfigValidator_RangeFloat(t *testing.T) {
	tests := []struct {
		value     float64
		expectErr bool
	}{
		{-0.01, true},
		{0, false},
		{0.85, false},
		{1, false},
		{1.5, true},
	}

	for _, tt := range tests {
		cv := NewConfigValidator("Options").RangeFloat("DampingFactor", tt.value, 0, 1)
		if tt.expectErr != cv.HasErrors() {
			t.Errorf("RangeFloat(%v) HasErrors() = %v, want %v", tt.value, cv.HasErrors(), tt.expectErr)
		}
	}
}

func TestConfigValidator_MinDuration(t *testing.T) {
	cv := NewConfigValidator("CLIConfig")
	cv.MinDuration("Timeout", 500*time.Millisecond, time.Second)

	if !cv.HasErrors() {
		t.Error("Expected error for duration below minimum")
	}

	cv2 := NewConfigValidator("CLIConfig")
	cv2.MinDuration("Timeout", 2*time.Second, time.Second)

	if cv2.HasErrors() {
		t.Error("Expected no error for duration at or above minimum")
	}
}

func TestConfigValidator_OneOf(t *testing.T) {
	allowed := []string{"json", "text"}

	cv := NewConfigValidator("CLIConfig")
	cv.OneOf("Format", "yaml", allowed)

	if !cv.HasErrors() {
		t.Error("Expected error for value not in allowed list")
	}

	cv2 := NewConfigValidator("CLIConfig")
	cv2.OneOf("Format", "text", allowed)

	if cv2.HasErrors() {
		t.Error("Expected no error for allowed value")
	}
}

// TestConfigValidator_CustomWraps tests that sentinel errors survive wrapping
func TestConfigValidator_CustomWraps(t *testing.T) {
	sentinel := errors.New("bad options")

	err := NewConfigValidator("Options").
		Custom("Bridges", func() error { return sentinel }).
		Validate()

	if !errors.Is(err, sentinel) {
		t.Errorf("Expected wrapped sentinel, got %v", err)
	}

	if NewConfigValidator("Options").Custom("Bridges", func() error { return nil }).HasErrors() {
		t.Error("Expected no error from passing custom validation")
	}
}

func TestConfigValidator_When(t *testing.T) {
	cv := NewConfigValidator("CLIConfig")
	cv.When(true, func(v *ConfigValidator) {
		v.MinInt("Workers", 0, 1)
	})

	if !cv.HasErrors() {
		t.Error("Expected error when condition is true")
	}

	cv2 := NewConfigValidator("CLIConfig")
	cv2.When(false, func(v *ConfigValidator) {
		v.MinInt("Workers", 0, 1)
	})

	if cv2.HasErrors() {
		t.Error("Expected no error when condition is false")
	}
}

func TestConfigValidator_MultipleErrors(t *testing.T) {
	sentinel := errors.New("bad threshold")

	cv := NewConfigValidator("Options")
	cv.Required("Seed", "").
		NonNegative("TopN", -1).
		Custom("Orbits", func() error { return sentinel })

	if len(cv.Errors()) != 3 {
		t.Fatalf("Expected 3 errors, got %d", len(cv.Errors()))
	}

	err := cv.Validate()
	if !errors.Is(err, sentinel) {
		t.Errorf("Joined error should still match sentinel, got %v", err)
	}
	if !strings.Contains(err.Error(), "Options.TopN") {
		t.Errorf("Joined error should mention every field, got %v", err)
	}
}

func TestConfigValidator_Chaining(t *testing.T) {
	err := NewConfigValidator("CLIConfig").
		Required("Source", "s3://bucket/graph.json").
		OneOf("Format", "json", []string{"json", "text"}).
		RangeInt("Workers", 4, 1, 1024).
		MinDuration("Timeout", 30*time.Second, time.Second).
		Validate()

	if err != nil {
		t.Errorf("Expected no errors for valid config, got: %v", err)
	}
}

func TestDefaultOr(t *testing.T) {
	if DefaultOr("", "json") != "json" {
		t.Error("Expected default for empty string")
	}
	if DefaultOr("text", "json") != "text" {
		t.Error("Expected value for non-empty string")
	}
}

func TestDefaultOrInt(t *testing.T) {
	if DefaultOrInt(0, 10) != 10 {
		t.Error("Expected default for zero")
	}
	if DefaultOrInt(-5, 10) != 10 {
		t.Error("Expected default for negative")
	}
	if DefaultOrInt(5, 10) != 5 {
		t.Error("Expected value for positive")
	}
}

func TestDefaultOrDuration(t *testing.T) {
	if DefaultOrDuration(0, 5*time.Second) != 5*time.Second {
		t.Error("Expected default for zero duration")
	}
	if DefaultOrDuration(10*time.Second, 5*time.Second) != 10*time.Second {
		t.Error("Expected value for positive duration")
	}
}

func TestClampInt(t *testing.T) {
	tests := []struct {
		value, min, max, expected int
	}{
		{5, 1, 10, 5},   // in range
		{0, 1, 10, 1},   // below min
		{15, 1, 10, 10}, // above max
		{1, 1, 10, 1},   // at min
		{10, 1, 10, 10}, // at max
	}

	for _, tt := range tests {
		result := ClampInt(tt.value, tt.min, tt.max)
		if result != tt.expected {
			t.Errorf("ClampInt(%d, %d, %d) = %d, want %d", tt.value, tt.min, tt.max, result, tt.expected)
		}
	}
}
