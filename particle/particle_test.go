package particle

import "testing"

func TestDeactivated_NotYetReleased(t *testing.T) {
	p := Particle{}
	if p.Deactivated() {
		t.Error("an unreleased particle must not report Deactivated")
	}
}

func TestDeactivated_ActiveParticle(t *testing.T) {
	p := Particle{Released: true, Active: true}
	if p.Deactivated() {
		t.Error("an active particle must not report Deactivated")
	}
}

func TestDeactivated_Beached(t *testing.T) {
	p := Particle{Released: true, Beached: true}
	if p.Deactivated() {
		t.Error("a beached particle must not report Deactivated")
	}
}

func TestDeactivated_LowMass(t *testing.T) {
	p := Particle{Released: true, Active: false, Beached: false}
	if !p.Deactivated() {
		t.Error("a released, inactive, unbeached particle must report Deactivated")
	}
}
